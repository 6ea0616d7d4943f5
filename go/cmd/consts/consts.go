package consts

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lunixbochs/ucjs/go/cmd"
	"github.com/lunixbochs/ucjs/go/models"
	"github.com/lunixbochs/ucjs/go/models/cpu"
)

type regEntry struct {
	Name string `yaml:"name"`
	Enum int    `yaml:"enum"`
	Type string `yaml:"type"`
}

type archEntry struct {
	Name string     `yaml:"arch"`
	Bits int        `yaml:"bits"`
	Regs []regEntry `yaml:"regs"`
}

// Dump writes the named constant groups as YAML, or every group when names is empty.
func Dump(w io.Writer, names []string) error {
	groups := cpu.ConstTable()
	if len(names) > 0 {
		groups = make([]cpu.ConstGroup, 0, len(names))
		for _, name := range names {
			g := cpu.Group(name)
			if len(g.Consts) == 0 {
				return errors.Errorf("unknown constant group %q", name)
			}
			groups = append(groups, g)
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(groups); err != nil {
		return err
	}
	return enc.Close()
}

// DumpRegs writes the register table of a as YAML.
func DumpRegs(w io.Writer, a *models.Arch) error {
	entry := archEntry{Name: a.Name, Bits: a.Bits}
	for _, r := range a.Regs {
		entry.Regs = append(entry.Regs, regEntry{r.Name, r.Enum, r.Type.String()})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&entry); err != nil {
		return err
	}
	return enc.Close()
}

func Main(args []string) int {
	c := cmd.NewUcCmd("[group...]")
	c.NoMachine = true
	var regs bool
	c.SetupFlags = func() error {
		c.Flags.BoolVar(&regs, "regs", false, "dump the register table of -arch instead")
		return nil
	}
	c.RunArch = func(a *models.Arch, args []string) error {
		if regs {
			return DumpRegs(c.Stdout, a)
		}
		return Dump(c.Stdout, args)
	}
	return c.Run(args)
}

func init() { cmd.Register("consts", "dump engine constants as yaml", Main) }

