package arm

import (
	"encoding/binary"

	ks "github.com/keystone-engine/keystone/bindings/go/keystone"
	cs "github.com/lunixbochs/capstr"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/ucjs/go/cpu"
	"github.com/lunixbochs/ucjs/go/models"
)

var regs = []models.RegSpec{
	{Name: "r0", Enum: R0, Type: models.I32, Default: true},
	{Name: "r1", Enum: R1, Type: models.I32, Default: true},
	{Name: "r2", Enum: R2, Type: models.I32, Default: true},
	{Name: "r3", Enum: R3, Type: models.I32, Default: true},
	{Name: "r4", Enum: R4, Type: models.I32, Default: true},
	{Name: "r5", Enum: R5, Type: models.I32, Default: true},
	{Name: "r6", Enum: R6, Type: models.I32, Default: true},
	{Name: "r7", Enum: R7, Type: models.I32, Default: true},
	{Name: "r8", Enum: R8, Type: models.I32, Default: true},
	{Name: "r9", Enum: R9, Type: models.I32, Default: true},
	{Name: "r10", Enum: R10, Type: models.I32, Default: true},
	{Name: "r11", Enum: R11, Type: models.I32, Default: true},
	{Name: "r12", Enum: R12, Type: models.I32, Default: true},
	{Name: "sp", Enum: SP, Type: models.I32},
	{Name: "lr", Enum: LR, Type: models.I32},
	{Name: "pc", Enum: PC, Type: models.I32},
	{Name: "cpsr", Enum: CPSR, Type: models.I32},
	{Name: "s0", Enum: S0, Type: models.F32},
	{Name: "s1", Enum: S1, Type: models.F32},
	{Name: "s2", Enum: S2, Type: models.F32},
	{Name: "s3", Enum: S3, Type: models.F32},
	{Name: "d0", Enum: D0, Type: models.F64},
	{Name: "d1", Enum: D1, Type: models.F64},
	{Name: "d2", Enum: D2, Type: models.F64},
	{Name: "d3", Enum: D3, Type: models.F64},
	{Name: "q0", Enum: Q0, Type: models.V128},
	{Name: "q1", Enum: Q1, Type: models.V128},
	{Name: "q2", Enum: Q2, Type: models.V128},
	{Name: "q3", Enum: Q3, Type: models.V128},
}

var Arch = &models.Arch{
	Name:    "arm",
	Bits:    32,
	Order:   binary.LittleEndian,
	UC_ARCH: uc.ARCH_ARM,
	UC_MODE: uc.MODE_ARM,
	PC:      PC,
	SP:      SP,
	Regs:    regs,
	Asm:     &cpu.Keystone{Arch: ks.ARCH_ARM, Mode: ks.MODE_ARM},
	Dis:     &cpu.Capstr{Arch: cs.ARCH_ARM, Mode: cs.MODE_ARM},
}

// Thumb shares the register file; only the instruction set differs.
var Thumb = &models.Arch{
	Name:    "thumb",
	Bits:    32,
	Order:   binary.LittleEndian,
	UC_ARCH: uc.ARCH_ARM,
	UC_MODE: uc.MODE_THUMB,
	PC:      PC,
	SP:      SP,
	Regs:    regs,
	Asm:     &cpu.Keystone{Arch: ks.ARCH_ARM, Mode: ks.MODE_THUMB},
	Dis:     &cpu.Capstr{Arch: cs.ARCH_ARM, Mode: cs.MODE_THUMB},
}
