package asm

import (
	"fmt"
	"io"
	"strings"

	"github.com/lunixbochs/ucjs/go/cmd"
	"github.com/lunixbochs/ucjs/go/models"
	"github.com/lunixbochs/ucjs/go/ui"
)

// Print assembles src at addr, one instruction per line or ';' separated,
// and prints each instruction followed by the joined hex.
func Print(w io.Writer, a *models.Arch, addr uint64, src string) error {
	src = strings.Replace(src, ";", "\n", -1)
	ins, code, err := ui.AssembleLines(a, addr, src)
	if err != nil {
		return err
	}
	for _, i := range ins {
		fmt.Fprintln(w, i)
	}
	fmt.Fprintln(w, models.SpacedHex(code))
	return nil
}

func Main(args []string) int {
	c := cmd.NewUcCmd("<asm>...")
	c.NoMachine = true
	c.RunArch = func(a *models.Arch, args []string) error {
		return Print(c.Stdout, a, c.Config.Addr, strings.Join(args, " "))
	}
	return c.Run(args)
}

func init() { cmd.Register("asm", "assemble instructions to hex", Main) }
