package dis

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/lunixbochs/ucjs/go/cmd"
	"github.com/lunixbochs/ucjs/go/models"
)

// Print disassembles hex encoded code based at addr.
func Print(w io.Writer, a *models.Arch, addr uint64, hexs string) error {
	code, err := models.ParseHex(hexs)
	if err != nil {
		return errors.Wrap(err, "invalid hex")
	}
	if len(code) == 0 {
		return errors.New("no code given")
	}
	dis, err := a.Disassemble(code, addr)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, models.Disas(dis, true))
	return nil
}

func Main(args []string) int {
	c := cmd.NewUcCmd("<hex>...")
	c.NoMachine = true
	c.RunArch = func(a *models.Arch, args []string) error {
		return Print(c.Stdout, a, c.Config.Addr, strings.Join(args, " "))
	}
	return c.Run(args)
}

func init() { cmd.Register("dis", "disassemble hex", Main) }
