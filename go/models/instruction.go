package models

import (
	"strings"

	"github.com/pkg/errors"
)

// Instruction is one line of the assembler pane: source text plus encoded bytes.
// Without an attached assembler or disassembler only the side that was set is kept.
type Instruction struct {
	Addr  uint64
	Bytes []byte
	Asm   string

	asm Asm
	dis Dis
}

func NewInstruction(addr uint64, asm Asm, dis Dis) *Instruction {
	return &Instruction{Addr: addr, asm: asm, dis: dis}
}

// SetHex decodes hex (spaces allowed) into Bytes and refreshes Asm.
func (i *Instruction) SetHex(s string) error {
	data, err := ParseHex(s)
	if err != nil {
		return errors.Wrap(err, "invalid hex")
	}
	i.Bytes = data
	if i.dis == nil {
		return nil
	}
	if len(data) == 0 {
		i.Asm = ""
		return nil
	}
	dis, err := i.dis.Dis(data, i.Addr)
	if err != nil {
		return err
	}
	lines := make([]string, len(dis))
	for n, ins := range dis {
		lines[n] = strings.TrimSpace(ins.Mnemonic() + " " + ins.OpStr())
	}
	i.Asm = strings.Join(lines, "; ")
	return nil
}

// SetAsm stores the source text and assembles it at Addr.
func (i *Instruction) SetAsm(s string) error {
	i.Asm = s
	if i.asm == nil {
		return nil
	}
	if strings.TrimSpace(s) == "" {
		i.Bytes = nil
		return nil
	}
	data, err := i.asm.Asm(s, i.Addr)
	if err != nil {
		return err
	}
	i.Bytes = data
	return nil
}

func (i *Instruction) Len() int {
	return len(i.Bytes)
}

func (i *Instruction) Hex() string {
	return SpacedHex(i.Bytes)
}

func (i *Instruction) String() string {
	return ToHex(i.Addr, 1) + ": " + i.Hex() + "  " + i.Asm
}
