package repl

import (
	"regexp"
	"strings"

	"github.com/lunixbochs/ucjs/go/models"
)

var strEqNumRe = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9]*)=(-?(0x[0-9a-fA-F]+|0b[01]+|0o[0-7]+|\d+))$`)

var RegCmd = cmd(&Command{
	Name:  "reg",
	Usage: "[name[=val]...]",
	Desc:  "Read/write regs.",
	Run: func(c *Context, args ...string) error {
		arch := c.M.Arch()
		if len(args) == 0 {
			regs, err := c.M.Registers()
			if err != nil {
				return err
			}
			for _, reg := range regs {
				c.Printf("%8s %s\n", reg.Name, reg.Value)
			}
			return nil
		}
		for _, v := range args {
			name := v
			match := strEqNumRe.FindStringSubmatch(v)
			if len(match) > 0 {
				name = match[1]
			}
			reg, ok := arch.Reg(name)
			if !ok {
				if strings.Contains(v, "=") && len(match) == 0 {
					c.Printf("invalid assignment: %s\n", v)
				} else {
					c.Printf("reg %s not found\n", name)
				}
				continue
			}
			if reg.Type.Size() > 8 {
				c.Printf("%s: %s registers are display-only\n", reg.Name, reg.Type)
				continue
			}
			if len(match) > 0 {
				value, err := parseNum(match[2])
				if err != nil {
					c.Printf("error parsing %s value: %v\n", name, err)
					continue
				}
				if err := c.M.RegWrite(reg.Enum, value); err != nil {
					c.Printf("%s: %v\n", v, err)
				}
			} else {
				val, err := c.M.RegRead(reg.Enum)
				if err != nil {
					c.Printf("%s: %v\n", v, err)
					continue
				}
				c.Printf("%s %s\n", reg.Name, models.FormatReg(reg.Type, val))
			}
		}
		return nil
	},
})
