package arch

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/lunixbochs/ucjs/go/arch/arm"
	"github.com/lunixbochs/ucjs/go/arch/arm64"
	"github.com/lunixbochs/ucjs/go/arch/m68k"
	"github.com/lunixbochs/ucjs/go/arch/mips"
	"github.com/lunixbochs/ucjs/go/arch/sparc"
	"github.com/lunixbochs/ucjs/go/arch/x86"
	"github.com/lunixbochs/ucjs/go/models"
	"github.com/lunixbochs/ucjs/go/models/cpu"
)

var archMap = map[string]*models.Arch{
	"arm":    arm.Arch,
	"thumb":  arm.Thumb,
	"arm64":  arm64.Arch,
	"m68k":   m68k.Arch,
	"mips":   mips.Arch,
	"mipsel": mips.Mipsel,
	"sparc":  sparc.Arch,
	"x86_16": x86.X86_16,
	"x86":    x86.X86,
	"x86_64": x86.X86_64,
}

var aliases = map[string]string{
	"i386":    "x86",
	"amd64":   "x86_64",
	"x64":     "x86_64",
	"aarch64": "arm64",
}

func GetArch(name string) (*models.Arch, error) {
	name = strings.ToLower(name)
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	a, ok := archMap[name]
	if !ok {
		return nil, errors.Wrapf(cpu.Errno(cpu.ERR_ARCH), "arch %q not found", name)
	}
	return a, nil
}

// Names lists the canonical arch names, sorted.
func Names() []string {
	names := make([]string, 0, len(archMap))
	for name := range archMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
