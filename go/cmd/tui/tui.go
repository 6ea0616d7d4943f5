package tui

import (
	ucjs "github.com/lunixbochs/ucjs/go"
	"github.com/lunixbochs/ucjs/go/cmd"
	"github.com/lunixbochs/ucjs/go/ui"
)

func Main(args []string) int {
	c := cmd.NewUcCmd("")
	c.RunMachine = func(m *ucjs.Machine, args []string) error {
		t, err := ui.NewTui(m)
		if err != nil {
			return err
		}
		return t.Run()
	}
	return c.Run(args)
}

func init() { cmd.Register("tui", "interactive assembler with register and memory panes", Main) }
