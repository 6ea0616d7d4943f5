package repl

import (
	"os"

	"github.com/pkg/errors"

	"github.com/lunixbochs/ucjs/go/models"
	"github.com/lunixbochs/ucjs/go/models/cpu"
)

var MapsCmd = cmd(&Command{
	Name: "maps",
	Desc: "Display memory mappings.",
	Run: func(c *Context) error {
		for _, m := range c.M.Mappings() {
			c.Printf("  %v\n", m.String())
		}
		return nil
	},
})

var MapCmd = cmd(&Command{
	Name:  "map",
	Usage: "<addr> <size> [prot]",
	Desc:  "Map memory (prot defaults to rwx).",
	Run: func(c *Context, args ...string) error {
		if len(args) < 2 || len(args) > 3 {
			return usage("map")
		}
		addr, err := parseNum(args[0])
		if err != nil {
			return err
		}
		size, err := parseNum(args[1])
		if err != nil {
			return err
		}
		prot := cpu.PROT_ALL
		if len(args) == 3 {
			if prot, err = cpu.ParseProt(args[2]); err != nil {
				return err
			}
		}
		mm, err := c.M.Mmap(addr, size, prot, "user")
		if err != nil {
			return err
		}
		c.Printf("  %v\n", mm)
		return nil
	},
})

var MemCmd = cmd(&Command{
	Name:  "mem",
	Usage: "<addr> [len]",
	Desc:  "Hexdump memory.",
	Run: func(c *Context, args ...string) error {
		if len(args) < 1 || len(args) > 2 {
			return usage("mem")
		}
		addr, err := parseNum(args[0])
		if err != nil {
			return err
		}
		size, err := optNum(args, 1, 64)
		if err != nil {
			return err
		}
		mem, err := c.M.MemRead(addr, size)
		if err != nil {
			return err
		}
		for _, line := range models.HexDump(addr, mem, int(c.M.Bits()), 80) {
			c.Printf("  %s\n", line)
		}
		return nil
	},
})

var StrCmd = cmd(&Command{
	Name:  "str",
	Usage: "<addr> [max]",
	Desc:  "Print the NUL-terminated string at addr.",
	Run: func(c *Context, args ...string) error {
		if len(args) < 1 || len(args) > 2 {
			return usage("str")
		}
		addr, err := parseNum(args[0])
		if err != nil {
			return err
		}
		max, err := optNum(args, 1, 256)
		if err != nil {
			return err
		}
		var out []byte
		for i := uint64(0); i < max; i++ {
			b, err := c.M.MemRead(addr+i, 1)
			if err != nil {
				if i == 0 {
					return err
				}
				break
			}
			if b[0] == 0 {
				break
			}
			out = append(out, b[0])
		}
		c.Printf("%s\n", models.Repr(out, 80))
		return nil
	},
})

var SaveCmd = cmd(&Command{
	Name:  "save",
	Usage: "<file>",
	Desc:  "Snapshot registers and memory to a file.",
	Run: func(c *Context, path string) error {
		data, err := c.M.Save()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return errors.Wrap(err, "writing snapshot")
		}
		c.Printf("saved %d bytes to %s\n", len(data), path)
		return nil
	},
})

var LoadCmd = cmd(&Command{
	Name:  "load",
	Usage: "<file>",
	Desc:  "Restore a snapshot written by save.",
	Run: func(c *Context, path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(err, "reading snapshot")
		}
		return c.M.Load(data)
	},
})
