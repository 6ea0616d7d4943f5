package repl

import (
	"fmt"
	"strings"

	"github.com/lunixbochs/ucjs/go/models"
)

var DisCmd = cmd(&Command{
	Name:  "dis",
	Usage: "<addr> [len]",
	Desc:  "Disassemble memory.",
	Run: func(c *Context, args ...string) error {
		if len(args) < 1 || len(args) > 2 {
			return usage("dis")
		}
		addr, err := parseNum(args[0])
		if err != nil {
			return err
		}
		size, err := optNum(args, 1, 32)
		if err != nil {
			return err
		}
		dis, err := c.M.Disassemble(addr, size)
		if err != nil {
			return err
		}
		if len(dis) > 0 {
			c.Printf("%s\n", models.Disas(dis, true))
		}
		return nil
	},
})

var AsmCmd = cmd(&Command{
	Name:  "asm",
	Usage: "<text>",
	Desc:  "Assemble at pc and print the encoding without writing it.",
	Run: func(c *Context, args ...string) error {
		if len(args) == 0 {
			return usage("asm")
		}
		pc, err := c.M.PC()
		if err != nil {
			return err
		}
		text := strings.Join(args, " ")
		code, err := c.M.Assemble(text, pc)
		if err != nil {
			return err
		}
		c.Printf("%s\n", models.SpacedHex(code))
		return nil
	},
})

var HexCmd = cmd(&Command{
	Name:  "hex",
	Usage: "<bytes>",
	Desc:  "Disassemble hex bytes at pc without writing them.",
	Run: func(c *Context, args ...string) error {
		if len(args) == 0 {
			return usage("hex")
		}
		pc, err := c.M.PC()
		if err != nil {
			return err
		}
		arch := c.M.Arch()
		ins := models.NewInstruction(pc, arch.Asm, arch.Dis)
		if err := ins.SetHex(strings.Join(args, " ")); err != nil {
			return err
		}
		c.Printf("%s\n", ins)
		return nil
	},
})

var RunCmd = cmd(&Command{
	Name:  "run",
	Usage: "[addr [until]]",
	Desc:  "Run from addr (default pc) until the end of its mapping or until.",
	Run: func(c *Context, args ...string) error {
		if len(args) > 2 {
			return usage("run")
		}
		pc, err := c.M.PC()
		if err != nil {
			return err
		}
		begin, err := optNum(args, 0, pc)
		if err != nil {
			return err
		}
		var until uint64
		if len(args) == 2 {
			until, err = parseNum(args[1])
		} else {
			until, err = c.M.MappingEnd(begin)
		}
		if err != nil {
			return err
		}
		return c.M.Run(begin, until)
	},
})

var StepCmd = cmd(&Command{
	Name: "step",
	Desc: "Execute one instruction.",
	Run: func(c *Context) error {
		if err := c.M.Step(); err != nil {
			return err
		}
		pc, err := c.M.PC()
		if err != nil {
			return err
		}
		c.Printf("pc = %#x\n", pc)
		return nil
	},
})

var HelpCmd = cmd(&Command{
	Name: "help",
	Desc: "List commands.",
	Run: func(c *Context) error {
		for _, name := range Names() {
			cmd := Commands[name]
			c.Printf("  %-24s %s\n", fmt.Sprintf("%s %s", cmd.Name, cmd.Usage), cmd.Desc)
		}
		return nil
	},
})
