package models

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/lunixbochs/fvbommel-util/sortorder"
	"github.com/pkg/errors"

	"github.com/lunixbochs/ucjs/go/models/cpu"
)

// RegType selects how a register value is displayed.
type RegType int

const (
	I8 RegType = iota
	I16
	I32
	I64
	F32
	F64
	V128
)

var regTypeNames = []string{"i8", "i16", "i32", "i64", "f32", "f64", "v128"}

var regTypeSizes = []int{1, 2, 4, 8, 4, 8, 16}

func (t RegType) String() string {
	if t < 0 || int(t) >= len(regTypeNames) {
		return fmt.Sprintf("RegType(%d)", int(t))
	}
	return regTypeNames[t]
}

// Size is the register width in bytes.
func (t RegType) Size() int {
	if t < 0 || int(t) >= len(regTypeSizes) {
		return 0
	}
	return regTypeSizes[t]
}

func (t RegType) IsFloat() bool { return t == F32 || t == F64 }

func ParseRegType(s string) (RegType, error) {
	for i, name := range regTypeNames {
		if name == strings.ToLower(s) {
			return RegType(i), nil
		}
	}
	return 0, errors.Errorf("unknown register type %q", s)
}

// RegSpec describes one architectural register.
// Default registers are the ones shown in compact dumps.
type RegSpec struct {
	Name    string
	Enum    int
	Type    RegType
	Default bool
}

type RegVal struct {
	RegSpec
	Val uint64
}

type Asm interface {
	Asm(asm string, addr uint64) ([]byte, error)
}

type Dis interface {
	Dis(mem []byte, addr uint64) ([]Ins, error)
}

type regList []RegSpec

func (r regList) Len() int           { return len(r) }
func (r regList) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }
func (r regList) Less(i, j int) bool { return sortorder.NaturalLess(r[i].Name, r[j].Name) }

type Arch struct {
	Name    string
	Bits    int
	Order   binary.ByteOrder
	UC_ARCH int
	UC_MODE int
	PC      int
	SP      int
	// address bus width when wider than Bits
	AddrBits int
	// real-mode segment registers, zero on flat architectures
	CodeSeg, StackSeg int
	// display order, as listed by the architecture
	Regs []RegSpec

	Asm Asm
	Dis Dis

	sorted regList
	byName map[string]RegSpec
}

func (a *Arch) String() string {
	return fmt.Sprintf("<Arch %s>", a.Name)
}

// AddressBits is the width of a linear address.
func (a *Arch) AddressBits() uint {
	if a.AddrBits > 0 {
		return uint(a.AddrBits)
	}
	return uint(a.Bits)
}

func (a *Arch) AddressMask() uint64 {
	return ^uint64(0) >> (64 - a.AddressBits())
}

// segment splits a linear address into a real-mode segment:offset pair.
// The segment is chosen from ref, so an exclusive end like a stack top can
// land at offset 0 of the segment above its last byte.
func segment(addr, ref uint64) (seg, off uint64) {
	seg = (ref >> 4) & 0xf000
	return seg, (addr - seg<<4) & 0xffff
}

// ReadPC returns the linear pc, adding the code segment base on segmented archs.
func (a *Arch) ReadPC(c cpu.Cpu) (uint64, error) {
	pc, err := c.RegRead(a.PC)
	if err != nil || a.CodeSeg == 0 {
		return pc, err
	}
	seg, err := c.RegRead(a.CodeSeg)
	if err != nil {
		return 0, err
	}
	return (seg<<4 + pc) & a.AddressMask(), nil
}

func (a *Arch) WritePC(c cpu.Cpu, addr uint64) error {
	if a.CodeSeg == 0 {
		return c.RegWrite(a.PC, addr)
	}
	seg, off := segment(addr, addr)
	if err := c.RegWrite(a.CodeSeg, seg); err != nil {
		return err
	}
	return c.RegWrite(a.PC, off)
}

// WriteSP points the stack at top, the exclusive end of a stack mapping.
func (a *Arch) WriteSP(c cpu.Cpu, top uint64) error {
	if a.StackSeg == 0 {
		return c.RegWrite(a.SP, top&a.AddressMask())
	}
	seg, off := segment(top, top-1)
	if err := c.RegWrite(a.StackSeg, seg); err != nil {
		return err
	}
	return c.RegWrite(a.SP, off)
}

func (a *Arch) index() {
	if a.byName != nil {
		return
	}
	a.byName = make(map[string]RegSpec, len(a.Regs))
	for _, r := range a.Regs {
		a.byName[strings.ToLower(r.Name)] = r
	}
	a.sorted = append(regList(nil), a.Regs...)
	sort.Stable(a.sorted)
}

// Reg looks a register up by case-insensitive name.
func (a *Arch) Reg(name string) (RegSpec, bool) {
	a.index()
	r, ok := a.byName[strings.ToLower(name)]
	return r, ok
}

// SortedRegs returns the registers in natural name order (r2 before r10).
func (a *Arch) SortedRegs() []RegSpec {
	a.index()
	return a.sorted
}

func (a *Arch) DefaultRegs() []RegSpec {
	var ret []RegSpec
	for _, r := range a.Regs {
		if r.Default {
			ret = append(ret, r)
		}
	}
	return ret
}

// RegDump reads every register up to 64 bits wide, in display order.
func (a *Arch) RegDump(c cpu.Cpu) ([]RegVal, error) {
	specs := make([]RegSpec, 0, len(a.Regs))
	enums := make([]int, 0, len(a.Regs))
	for _, r := range a.Regs {
		if r.Type.Size() <= 8 {
			specs = append(specs, r)
			enums = append(enums, r.Enum)
		}
	}
	vals, err := cpu.RegReadBatch(c, enums)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s registers", a.Name)
	}
	ret := make([]RegVal, len(specs))
	for i, r := range specs {
		ret[i] = RegVal{r, vals[i]}
	}
	return ret, nil
}

// Assemble fails with ERR_ARCH when no assembler is available.
func (a *Arch) Assemble(asm string, addr uint64) ([]byte, error) {
	if a.Asm == nil {
		return nil, errors.Wrapf(cpu.Errno(cpu.ERR_ARCH), "no assembler for %s", a.Name)
	}
	return a.Asm.Asm(asm, addr)
}

func (a *Arch) Disassemble(mem []byte, addr uint64) ([]Ins, error) {
	if a.Dis == nil {
		return nil, errors.Wrapf(cpu.Errno(cpu.ERR_ARCH), "no disassembler for %s", a.Name)
	}
	return a.Dis.Dis(mem, addr)
}
