package cpu

import (
	"fmt"
	"strings"
)

type Const struct {
	Name  string `yaml:"name"`
	Value int    `yaml:"value"`
}

type ConstGroup struct {
	Name   string  `yaml:"group"`
	Consts []Const `yaml:"consts"`
}

var constTable = []ConstGroup{
	{"err", []Const{
		{"ERR_OK", ERR_OK},
		{"ERR_NOMEM", ERR_NOMEM},
		{"ERR_ARCH", ERR_ARCH},
		{"ERR_HANDLE", ERR_HANDLE},
		{"ERR_MODE", ERR_MODE},
		{"ERR_VERSION", ERR_VERSION},
		{"ERR_READ_UNMAPPED", ERR_READ_UNMAPPED},
		{"ERR_WRITE_UNMAPPED", ERR_WRITE_UNMAPPED},
		{"ERR_FETCH_UNMAPPED", ERR_FETCH_UNMAPPED},
		{"ERR_HOOK", ERR_HOOK},
		{"ERR_INSN_INVALID", ERR_INSN_INVALID},
		{"ERR_MAP", ERR_MAP},
		{"ERR_WRITE_PROT", ERR_WRITE_PROT},
		{"ERR_READ_PROT", ERR_READ_PROT},
		{"ERR_FETCH_PROT", ERR_FETCH_PROT},
		{"ERR_ARG", ERR_ARG},
		{"ERR_READ_UNALIGNED", ERR_READ_UNALIGNED},
		{"ERR_WRITE_UNALIGNED", ERR_WRITE_UNALIGNED},
		{"ERR_FETCH_UNALIGNED", ERR_FETCH_UNALIGNED},
		{"ERR_HOOK_EXIST", ERR_HOOK_EXIST},
		{"ERR_RESOURCE", ERR_RESOURCE},
		{"ERR_EXCEPTION", ERR_EXCEPTION},
	}},
	{"arch", []Const{
		{"ARCH_ARM", ARCH_ARM},
		{"ARCH_ARM64", ARCH_ARM64},
		{"ARCH_MIPS", ARCH_MIPS},
		{"ARCH_X86", ARCH_X86},
		{"ARCH_PPC", ARCH_PPC},
		{"ARCH_SPARC", ARCH_SPARC},
		{"ARCH_M68K", ARCH_M68K},
		{"ARCH_MAX", ARCH_MAX},
	}},
	{"mode", []Const{
		{"MODE_LITTLE_ENDIAN", MODE_LITTLE_ENDIAN},
		{"MODE_BIG_ENDIAN", MODE_BIG_ENDIAN},
		{"MODE_ARM", MODE_ARM},
		{"MODE_THUMB", MODE_THUMB},
		{"MODE_MCLASS", MODE_MCLASS},
		{"MODE_V8", MODE_V8},
		{"MODE_MICRO", MODE_MICRO},
		{"MODE_MIPS3", MODE_MIPS3},
		{"MODE_MIPS32R6", MODE_MIPS32R6},
		{"MODE_MIPS32", MODE_MIPS32},
		{"MODE_MIPS64", MODE_MIPS64},
		{"MODE_16", MODE_16},
		{"MODE_32", MODE_32},
		{"MODE_64", MODE_64},
		{"MODE_PPC32", MODE_PPC32},
		{"MODE_PPC64", MODE_PPC64},
		{"MODE_QPX", MODE_QPX},
		{"MODE_SPARC32", MODE_SPARC32},
		{"MODE_SPARC64", MODE_SPARC64},
		{"MODE_V9", MODE_V9},
	}},
	{"mem", []Const{
		{"MEM_READ", MEM_READ},
		{"MEM_WRITE", MEM_WRITE},
		{"MEM_FETCH", MEM_FETCH},
		{"MEM_READ_UNMAPPED", MEM_READ_UNMAPPED},
		{"MEM_WRITE_UNMAPPED", MEM_WRITE_UNMAPPED},
		{"MEM_FETCH_UNMAPPED", MEM_FETCH_UNMAPPED},
		{"MEM_WRITE_PROT", MEM_WRITE_PROT},
		{"MEM_READ_PROT", MEM_READ_PROT},
		{"MEM_FETCH_PROT", MEM_FETCH_PROT},
		{"MEM_READ_AFTER", MEM_READ_AFTER},
	}},
	{"prot", []Const{
		{"PROT_NONE", PROT_NONE},
		{"PROT_READ", PROT_READ},
		{"PROT_WRITE", PROT_WRITE},
		{"PROT_EXEC", PROT_EXEC},
		{"PROT_ALL", PROT_ALL},
	}},
	{"hook", []Const{
		{"HOOK_INTR", HOOK_INTR},
		{"HOOK_INSN", HOOK_INSN},
		{"HOOK_CODE", HOOK_CODE},
		{"HOOK_BLOCK", HOOK_BLOCK},
		{"HOOK_MEM_READ_UNMAPPED", HOOK_MEM_READ_UNMAPPED},
		{"HOOK_MEM_WRITE_UNMAPPED", HOOK_MEM_WRITE_UNMAPPED},
		{"HOOK_MEM_FETCH_UNMAPPED", HOOK_MEM_FETCH_UNMAPPED},
		{"HOOK_MEM_READ_PROT", HOOK_MEM_READ_PROT},
		{"HOOK_MEM_WRITE_PROT", HOOK_MEM_WRITE_PROT},
		{"HOOK_MEM_FETCH_PROT", HOOK_MEM_FETCH_PROT},
		{"HOOK_MEM_READ", HOOK_MEM_READ},
		{"HOOK_MEM_WRITE", HOOK_MEM_WRITE},
		{"HOOK_MEM_FETCH", HOOK_MEM_FETCH},
		{"HOOK_MEM_READ_AFTER", HOOK_MEM_READ_AFTER},
	}},
	{"hook_shorthand", []Const{
		{"HOOK_MEM_UNMAPPED", HOOK_MEM_UNMAPPED},
		{"HOOK_MEM_PROT", HOOK_MEM_PROT},
		{"HOOK_MEM_READ_INVALID", HOOK_MEM_READ_INVALID},
		{"HOOK_MEM_WRITE_INVALID", HOOK_MEM_WRITE_INVALID},
		{"HOOK_MEM_FETCH_INVALID", HOOK_MEM_FETCH_INVALID},
		{"HOOK_MEM_INVALID", HOOK_MEM_INVALID},
		{"HOOK_MEM_VALID", HOOK_MEM_VALID},
	}},
	{"query", []Const{
		{"QUERY_MODE", QUERY_MODE},
		{"QUERY_PAGE_SIZE", QUERY_PAGE_SIZE},
	}},
	{"version", []Const{
		{"API_MAJOR", API_MAJOR},
		{"API_MINOR", API_MINOR},
	}},
}

// ConstTable returns every named ABI constant, grouped by kind.
// The returned slice is shared and must not be modified.
func ConstTable() []ConstGroup {
	return constTable
}

// Group returns the named constant group, or an empty group.
func Group(name string) ConstGroup {
	for _, g := range constTable {
		if g.Name == name {
			return g
		}
	}
	return ConstGroup{Name: name}
}

// LookupConst finds a constant by name across all groups.
func LookupConst(name string) (int, bool) {
	for _, g := range constTable {
		for _, c := range g.Consts {
			if c.Name == name {
				return c.Value, true
			}
		}
	}
	return 0, false
}

var archNames = map[int]string{
	ARCH_ARM:   "arm",
	ARCH_ARM64: "arm64",
	ARCH_MIPS:  "mips",
	ARCH_X86:   "x86",
	ARCH_PPC:   "ppc",
	ARCH_SPARC: "sparc",
	ARCH_M68K:  "m68k",
}

func ArchName(arch int) string {
	if name, ok := archNames[arch]; ok {
		return name
	}
	return fmt.Sprintf("arch(%d)", arch)
}

// ProtString renders a protection mask as "rwx", with "-" for missing bits.
func ProtString(prot int) string {
	prots := []int{PROT_READ, PROT_WRITE, PROT_EXEC}
	chars := []string{"r", "w", "x"}
	out := ""
	for i := range prots {
		if prot&prots[i] != 0 {
			out += chars[i]
		} else {
			out += "-"
		}
	}
	return out
}

// ParseProt accepts "rwx"-style strings ("-" is ignored).
func ParseProt(s string) (int, error) {
	prot := PROT_NONE
	for _, c := range strings.ToLower(s) {
		switch c {
		case 'r':
			prot |= PROT_READ
		case 'w':
			prot |= PROT_WRITE
		case 'x':
			prot |= PROT_EXEC
		case '-':
		default:
			return 0, fmt.Errorf("invalid protection %q", s)
		}
	}
	return prot, nil
}

// HookNames decomposes a hook mask into the names of its base flags, lowest bit first.
func HookNames(mask int) []string {
	var names []string
	for _, c := range Group("hook").Consts {
		if mask&c.Value != 0 {
			names = append(names, c.Name)
			mask &^= c.Value
		}
	}
	if mask != 0 {
		names = append(names, fmt.Sprintf("%#x", mask))
	}
	return names
}
