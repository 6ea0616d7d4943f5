package m68k

import (
	"encoding/binary"

	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/ucjs/go/models"
)

// no assembler or disassembler backend covers m68k
var Arch = &models.Arch{
	Name:    "m68k",
	Bits:    32,
	Order:   binary.BigEndian,
	UC_ARCH: uc.ARCH_M68K,
	UC_MODE: uc.MODE_BIG_ENDIAN,
	PC:      PC,
	SP:      A7,
	Regs: []models.RegSpec{
		{Name: "d0", Enum: D0, Type: models.I32, Default: true},
		{Name: "d1", Enum: D1, Type: models.I32, Default: true},
		{Name: "d2", Enum: D2, Type: models.I32, Default: true},
		{Name: "d3", Enum: D3, Type: models.I32, Default: true},
		{Name: "d4", Enum: D4, Type: models.I32, Default: true},
		{Name: "d5", Enum: D5, Type: models.I32, Default: true},
		{Name: "d6", Enum: D6, Type: models.I32, Default: true},
		{Name: "d7", Enum: D7, Type: models.I32, Default: true},
		{Name: "a0", Enum: A0, Type: models.I32, Default: true},
		{Name: "a1", Enum: A1, Type: models.I32, Default: true},
		{Name: "a2", Enum: A2, Type: models.I32, Default: true},
		{Name: "a3", Enum: A3, Type: models.I32, Default: true},
		{Name: "a4", Enum: A4, Type: models.I32, Default: true},
		{Name: "a5", Enum: A5, Type: models.I32, Default: true},
		{Name: "a6", Enum: A6, Type: models.I32, Default: true},
		{Name: "sp", Enum: A7, Type: models.I32},
		{Name: "pc", Enum: PC, Type: models.I32},
		{Name: "sr", Enum: SR, Type: models.I16},
	},
}
