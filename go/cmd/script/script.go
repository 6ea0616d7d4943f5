package script

import (
	"github.com/pkg/errors"

	ucjs "github.com/lunixbochs/ucjs/go"
	"github.com/lunixbochs/ucjs/go/cmd"
	"github.com/lunixbochs/ucjs/go/script"
)

func Main(args []string) int {
	c := cmd.NewUcCmd("<script.star>")
	c.RunMachine = func(m *ucjs.Machine, args []string) error {
		if len(args) != 1 {
			c.Flags.Usage()
			return errors.New("expected one script")
		}
		m.SetOutput(c.Stdout)
		_, err := script.Exec(m, args[0], nil)
		return err
	}
	return c.Run(args)
}

func init() { cmd.Register("script", "run a starlark script against a fresh machine", Main) }
