package repl

import (
	ucjs "github.com/lunixbochs/ucjs/go"
	"github.com/lunixbochs/ucjs/go/cmd"
	"github.com/lunixbochs/ucjs/go/ui"
)

func Main(args []string) int {
	c := cmd.NewUcCmd("")
	c.RunMachine = func(m *ucjs.Machine, args []string) error {
		r, err := ui.NewRepl(m)
		if err != nil {
			return err
		}
		return r.Run()
	}
	return c.Run(args)
}

func init() {
	cmd.Register("repl", "line assembler; lines starting with '.' are commands", Main)
}
