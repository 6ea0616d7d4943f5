package mips

import (
	"encoding/binary"

	ks "github.com/keystone-engine/keystone/bindings/go/keystone"
	cs "github.com/lunixbochs/capstr"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/ucjs/go/cpu"
	"github.com/lunixbochs/ucjs/go/models"
)

var regs = []models.RegSpec{
	{Name: "zero", Enum: ZERO, Type: models.I32},
	{Name: "at", Enum: AT, Type: models.I32, Default: true},
	{Name: "v0", Enum: V0, Type: models.I32, Default: true},
	{Name: "v1", Enum: V1, Type: models.I32, Default: true},
	{Name: "a0", Enum: A0, Type: models.I32, Default: true},
	{Name: "a1", Enum: A1, Type: models.I32, Default: true},
	{Name: "a2", Enum: A2, Type: models.I32, Default: true},
	{Name: "a3", Enum: A3, Type: models.I32, Default: true},
	{Name: "t0", Enum: T0, Type: models.I32, Default: true},
	{Name: "t1", Enum: T1, Type: models.I32, Default: true},
	{Name: "t2", Enum: T2, Type: models.I32, Default: true},
	{Name: "t3", Enum: T3, Type: models.I32, Default: true},
	{Name: "t4", Enum: T4, Type: models.I32, Default: true},
	{Name: "t5", Enum: T5, Type: models.I32, Default: true},
	{Name: "t6", Enum: T6, Type: models.I32, Default: true},
	{Name: "t7", Enum: T7, Type: models.I32, Default: true},
	{Name: "t8", Enum: T8, Type: models.I32, Default: true},
	{Name: "t9", Enum: T9, Type: models.I32, Default: true},
	{Name: "s0", Enum: S0, Type: models.I32, Default: true},
	{Name: "s1", Enum: S1, Type: models.I32, Default: true},
	{Name: "s2", Enum: S2, Type: models.I32, Default: true},
	{Name: "s3", Enum: S3, Type: models.I32, Default: true},
	{Name: "s4", Enum: S4, Type: models.I32, Default: true},
	{Name: "s5", Enum: S5, Type: models.I32, Default: true},
	{Name: "s6", Enum: S6, Type: models.I32, Default: true},
	{Name: "s7", Enum: S7, Type: models.I32, Default: true},
	{Name: "s8", Enum: S8, Type: models.I32, Default: true},
	{Name: "k0", Enum: K0, Type: models.I32, Default: true},
	{Name: "k1", Enum: K1, Type: models.I32, Default: true},
	{Name: "gp", Enum: GP, Type: models.I32, Default: true},
	{Name: "sp", Enum: SP, Type: models.I32},
	{Name: "fp", Enum: FP, Type: models.I32},
	{Name: "ra", Enum: RA, Type: models.I32},
	{Name: "hi", Enum: HI, Type: models.I32},
	{Name: "lo", Enum: LO, Type: models.I32},
	{Name: "pc", Enum: PC, Type: models.I32},
}

// Arch is big-endian MIPS32, the engine's default byte order for mips.
var Arch = &models.Arch{
	Name:    "mips",
	Bits:    32,
	Order:   binary.BigEndian,
	UC_ARCH: uc.ARCH_MIPS,
	UC_MODE: uc.MODE_MIPS32 + uc.MODE_BIG_ENDIAN,
	PC:      PC,
	SP:      SP,
	Regs:    regs,
	Asm:     &cpu.Keystone{Arch: ks.ARCH_MIPS, Mode: ks.MODE_MIPS32 + ks.MODE_BIG_ENDIAN},
	Dis:     &cpu.Capstr{Arch: cs.ARCH_MIPS, Mode: cs.MODE_MIPS32 + cs.MODE_BIG_ENDIAN},
}

var Mipsel = &models.Arch{
	Name:    "mipsel",
	Bits:    32,
	Order:   binary.LittleEndian,
	UC_ARCH: uc.ARCH_MIPS,
	UC_MODE: uc.MODE_MIPS32 + uc.MODE_LITTLE_ENDIAN,
	PC:      PC,
	SP:      SP,
	Regs:    regs,
	Asm:     &cpu.Keystone{Arch: ks.ARCH_MIPS, Mode: ks.MODE_MIPS32 + ks.MODE_LITTLE_ENDIAN},
	Dis:     &cpu.Capstr{Arch: cs.ARCH_MIPS, Mode: cs.MODE_MIPS32 + cs.MODE_LITTLE_ENDIAN},
}
