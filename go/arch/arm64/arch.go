package arm64

import (
	"encoding/binary"

	ks "github.com/keystone-engine/keystone/bindings/go/keystone"
	cs "github.com/lunixbochs/capstr"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/ucjs/go/cpu"
	"github.com/lunixbochs/ucjs/go/models"
)

var Arch = &models.Arch{
	Name:    "arm64",
	Bits:    64,
	Order:   binary.LittleEndian,
	UC_ARCH: uc.ARCH_ARM64,
	UC_MODE: uc.MODE_ARM,
	PC:      PC,
	SP:      SP,
	Regs: []models.RegSpec{
		{Name: "x0", Enum: X0, Type: models.I64, Default: true},
		{Name: "x1", Enum: X1, Type: models.I64, Default: true},
		{Name: "x2", Enum: X2, Type: models.I64, Default: true},
		{Name: "x3", Enum: X3, Type: models.I64, Default: true},
		{Name: "x4", Enum: X4, Type: models.I64, Default: true},
		{Name: "x5", Enum: X5, Type: models.I64, Default: true},
		{Name: "x6", Enum: X6, Type: models.I64, Default: true},
		{Name: "x7", Enum: X7, Type: models.I64, Default: true},
		{Name: "x8", Enum: X8, Type: models.I64, Default: true},
		{Name: "x9", Enum: X9, Type: models.I64, Default: true},
		{Name: "x10", Enum: X10, Type: models.I64, Default: true},
		{Name: "x11", Enum: X11, Type: models.I64, Default: true},
		{Name: "x12", Enum: X12, Type: models.I64, Default: true},
		{Name: "x13", Enum: X13, Type: models.I64, Default: true},
		{Name: "x14", Enum: X14, Type: models.I64, Default: true},
		{Name: "x15", Enum: X15, Type: models.I64, Default: true},
		{Name: "x16", Enum: X16, Type: models.I64, Default: true},
		{Name: "x17", Enum: X17, Type: models.I64, Default: true},
		{Name: "x18", Enum: X18, Type: models.I64, Default: true},
		{Name: "x19", Enum: X19, Type: models.I64, Default: true},
		{Name: "x20", Enum: X20, Type: models.I64, Default: true},
		{Name: "x21", Enum: X21, Type: models.I64, Default: true},
		{Name: "x22", Enum: X22, Type: models.I64, Default: true},
		{Name: "x23", Enum: X23, Type: models.I64, Default: true},
		{Name: "x24", Enum: X24, Type: models.I64, Default: true},
		{Name: "x25", Enum: X25, Type: models.I64, Default: true},
		{Name: "x26", Enum: X26, Type: models.I64, Default: true},
		{Name: "x27", Enum: X27, Type: models.I64, Default: true},
		{Name: "x28", Enum: X28, Type: models.I64, Default: true},
		{Name: "fp", Enum: FP, Type: models.I64},
		{Name: "lr", Enum: LR, Type: models.I64},
		{Name: "sp", Enum: SP, Type: models.I64},
		{Name: "pc", Enum: PC, Type: models.I64},
		{Name: "nzcv", Enum: NZCV, Type: models.I32},
		{Name: "s0", Enum: S0, Type: models.F32},
		{Name: "s1", Enum: S1, Type: models.F32},
		{Name: "d0", Enum: D0, Type: models.F64},
		{Name: "d1", Enum: D1, Type: models.F64},
		{Name: "q0", Enum: Q0, Type: models.V128},
		{Name: "q1", Enum: Q1, Type: models.V128},
		{Name: "q2", Enum: Q2, Type: models.V128},
		{Name: "q3", Enum: Q3, Type: models.V128},
	},
	Asm: &cpu.Keystone{Arch: ks.ARCH_ARM64, Mode: ks.MODE_LITTLE_ENDIAN},
	Dis: &cpu.Capstr{Arch: cs.ARCH_ARM64, Mode: cs.MODE_ARM},
}
