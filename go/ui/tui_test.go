package ui

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/ucjs/go/models"
)

type lineAsm struct{}

func (lineAsm) Asm(asm string, addr uint64) ([]byte, error) {
	switch asm {
	case "nop":
		return []byte{0x90}, nil
	case "ret":
		return []byte{0xc3}, nil
	}
	return nil, errors.Errorf("unknown %q", asm)
}

func TestAssembleLines(t *testing.T) {
	arch := &models.Arch{Name: "test", Asm: lineAsm{}}
	ins, code, err := AssembleLines(arch, 0x10000, "nop\n\n  ret  \n")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x90, 0xc3}, code)
	require.Len(t, ins, 2)
	assert.Equal(t, uint64(0x10000), ins[0].Addr)
	assert.Equal(t, uint64(0x10001), ins[1].Addr)

	_, _, err = AssembleLines(arch, 0x10000, "nop\nbogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, _, err = AssembleLines(&models.Arch{Name: "m68k"}, 0, "nop")
	assert.Error(t, err)
}
