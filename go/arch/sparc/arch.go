package sparc

import (
	"encoding/binary"

	ks "github.com/keystone-engine/keystone/bindings/go/keystone"
	cs "github.com/lunixbochs/capstr"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/ucjs/go/cpu"
	"github.com/lunixbochs/ucjs/go/models"
)

var Arch = &models.Arch{
	Name:    "sparc",
	Bits:    32,
	Order:   binary.BigEndian,
	UC_ARCH: uc.ARCH_SPARC,
	UC_MODE: uc.MODE_SPARC32 + uc.MODE_BIG_ENDIAN,
	PC:      PC,
	SP:      SP,
	Regs: []models.RegSpec{
		{Name: "g0", Enum: G0, Type: models.I32},
		{Name: "g1", Enum: G1, Type: models.I32, Default: true},
		{Name: "g2", Enum: G2, Type: models.I32, Default: true},
		{Name: "g3", Enum: G3, Type: models.I32, Default: true},
		{Name: "g4", Enum: G4, Type: models.I32, Default: true},
		{Name: "g5", Enum: G5, Type: models.I32, Default: true},
		{Name: "g6", Enum: G6, Type: models.I32, Default: true},
		{Name: "g7", Enum: G7, Type: models.I32, Default: true},
		{Name: "o0", Enum: O0, Type: models.I32, Default: true},
		{Name: "o1", Enum: O1, Type: models.I32, Default: true},
		{Name: "o2", Enum: O2, Type: models.I32, Default: true},
		{Name: "o3", Enum: O3, Type: models.I32, Default: true},
		{Name: "o4", Enum: O4, Type: models.I32, Default: true},
		{Name: "o5", Enum: O5, Type: models.I32, Default: true},
		{Name: "o7", Enum: O7, Type: models.I32, Default: true},
		{Name: "l0", Enum: L0, Type: models.I32, Default: true},
		{Name: "l1", Enum: L1, Type: models.I32, Default: true},
		{Name: "l2", Enum: L2, Type: models.I32, Default: true},
		{Name: "l3", Enum: L3, Type: models.I32, Default: true},
		{Name: "l4", Enum: L4, Type: models.I32, Default: true},
		{Name: "l5", Enum: L5, Type: models.I32, Default: true},
		{Name: "l6", Enum: L6, Type: models.I32, Default: true},
		{Name: "l7", Enum: L7, Type: models.I32, Default: true},
		{Name: "i0", Enum: I0, Type: models.I32, Default: true},
		{Name: "i1", Enum: I1, Type: models.I32, Default: true},
		{Name: "i2", Enum: I2, Type: models.I32, Default: true},
		{Name: "i3", Enum: I3, Type: models.I32, Default: true},
		{Name: "i4", Enum: I4, Type: models.I32, Default: true},
		{Name: "i5", Enum: I5, Type: models.I32, Default: true},
		{Name: "i7", Enum: I7, Type: models.I32, Default: true},
		{Name: "sp", Enum: SP, Type: models.I32},
		{Name: "fp", Enum: FP, Type: models.I32},
		{Name: "pc", Enum: PC, Type: models.I32},
	},
	Asm: &cpu.Keystone{Arch: ks.ARCH_SPARC, Mode: ks.MODE_SPARC32 + ks.MODE_BIG_ENDIAN},
	Dis: &cpu.Capstr{Arch: cs.ARCH_SPARC, Mode: cs.MODE_BIG_ENDIAN},
}
