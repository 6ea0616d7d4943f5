package x86

import (
	"encoding/binary"

	ks "github.com/keystone-engine/keystone/bindings/go/keystone"
	cs "github.com/lunixbochs/capstr"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/ucjs/go/cpu"
	"github.com/lunixbochs/ucjs/go/models"
)

var segRegs = []models.RegSpec{
	{Name: "cs", Enum: CS, Type: models.I16},
	{Name: "ds", Enum: DS, Type: models.I16},
	{Name: "es", Enum: ES, Type: models.I16},
	{Name: "fs", Enum: FS, Type: models.I16},
	{Name: "gs", Enum: GS, Type: models.I16},
	{Name: "ss", Enum: SS, Type: models.I16},
}

var xmmRegs = []models.RegSpec{
	{Name: "xmm0", Enum: XMM0, Type: models.V128},
	{Name: "xmm1", Enum: XMM1, Type: models.V128},
	{Name: "xmm2", Enum: XMM2, Type: models.V128},
	{Name: "xmm3", Enum: XMM3, Type: models.V128},
	{Name: "xmm4", Enum: XMM4, Type: models.V128},
	{Name: "xmm5", Enum: XMM5, Type: models.V128},
	{Name: "xmm6", Enum: XMM6, Type: models.V128},
	{Name: "xmm7", Enum: XMM7, Type: models.V128},
}

func join(lists ...[]models.RegSpec) []models.RegSpec {
	var out []models.RegSpec
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

var X86_16 = &models.Arch{
	Name:     "x86_16",
	Bits:     16,
	AddrBits: 20,
	Order:    binary.LittleEndian,
	UC_ARCH:  uc.ARCH_X86,
	UC_MODE:  uc.MODE_16,
	PC:       IP,
	SP:       SP,
	CodeSeg:  CS,
	StackSeg: SS,
	Regs: join([]models.RegSpec{
		{Name: "ax", Enum: AX, Type: models.I16, Default: true},
		{Name: "bx", Enum: BX, Type: models.I16, Default: true},
		{Name: "cx", Enum: CX, Type: models.I16, Default: true},
		{Name: "dx", Enum: DX, Type: models.I16, Default: true},
		{Name: "si", Enum: SI, Type: models.I16, Default: true},
		{Name: "di", Enum: DI, Type: models.I16, Default: true},
		{Name: "bp", Enum: BP, Type: models.I16, Default: true},
		{Name: "sp", Enum: SP, Type: models.I16},
		{Name: "ip", Enum: IP, Type: models.I16},
		{Name: "flags", Enum: EFLAGS, Type: models.I16},
		{Name: "al", Enum: AL, Type: models.I8},
		{Name: "ah", Enum: AH, Type: models.I8},
	}, segRegs),
	Asm: &cpu.Keystone{Arch: ks.ARCH_X86, Mode: ks.MODE_16},
	Dis: &cpu.Capstr{Arch: cs.ARCH_X86, Mode: cs.MODE_16},
}

var X86 = &models.Arch{
	Name:    "x86",
	Bits:    32,
	Order:   binary.LittleEndian,
	UC_ARCH: uc.ARCH_X86,
	UC_MODE: uc.MODE_32,
	PC:      EIP,
	SP:      ESP,
	Regs: join([]models.RegSpec{
		{Name: "eax", Enum: EAX, Type: models.I32, Default: true},
		{Name: "ebx", Enum: EBX, Type: models.I32, Default: true},
		{Name: "ecx", Enum: ECX, Type: models.I32, Default: true},
		{Name: "edx", Enum: EDX, Type: models.I32, Default: true},
		{Name: "esi", Enum: ESI, Type: models.I32, Default: true},
		{Name: "edi", Enum: EDI, Type: models.I32, Default: true},
		{Name: "ebp", Enum: EBP, Type: models.I32, Default: true},
		{Name: "esp", Enum: ESP, Type: models.I32},
		{Name: "eip", Enum: EIP, Type: models.I32},
		{Name: "eflags", Enum: EFLAGS, Type: models.I32},
		{Name: "ax", Enum: AX, Type: models.I16},
		{Name: "al", Enum: AL, Type: models.I8},
	}, segRegs, xmmRegs),
	Asm: &cpu.Keystone{Arch: ks.ARCH_X86, Mode: ks.MODE_32},
	Dis: &cpu.Capstr{Arch: cs.ARCH_X86, Mode: cs.MODE_32},
}

var X86_64 = &models.Arch{
	Name:    "x86_64",
	Bits:    64,
	Order:   binary.LittleEndian,
	UC_ARCH: uc.ARCH_X86,
	UC_MODE: uc.MODE_64,
	PC:      RIP,
	SP:      RSP,
	Regs: join([]models.RegSpec{
		{Name: "rax", Enum: RAX, Type: models.I64, Default: true},
		{Name: "rbx", Enum: RBX, Type: models.I64, Default: true},
		{Name: "rcx", Enum: RCX, Type: models.I64, Default: true},
		{Name: "rdx", Enum: RDX, Type: models.I64, Default: true},
		{Name: "rsi", Enum: RSI, Type: models.I64, Default: true},
		{Name: "rdi", Enum: RDI, Type: models.I64, Default: true},
		{Name: "rbp", Enum: RBP, Type: models.I64, Default: true},
		{Name: "rsp", Enum: RSP, Type: models.I64},
		{Name: "r8", Enum: R8, Type: models.I64, Default: true},
		{Name: "r9", Enum: R9, Type: models.I64, Default: true},
		{Name: "r10", Enum: R10, Type: models.I64, Default: true},
		{Name: "r11", Enum: R11, Type: models.I64, Default: true},
		{Name: "r12", Enum: R12, Type: models.I64, Default: true},
		{Name: "r13", Enum: R13, Type: models.I64, Default: true},
		{Name: "r14", Enum: R14, Type: models.I64, Default: true},
		{Name: "r15", Enum: R15, Type: models.I64, Default: true},
		{Name: "rip", Enum: RIP, Type: models.I64},
		{Name: "eflags", Enum: EFLAGS, Type: models.I32},
		{Name: "eax", Enum: EAX, Type: models.I32},
	}, segRegs, xmmRegs),
	Asm: &cpu.Keystone{Arch: ks.ARCH_X86, Mode: ks.MODE_64},
	Dis: &cpu.Capstr{Arch: cs.ARCH_X86, Mode: cs.MODE_64},
}
