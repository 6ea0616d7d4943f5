package x86

import uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

// register ids, as understood by every backend
const (
	AH     = uc.X86_REG_AH
	AL     = uc.X86_REG_AL
	AX     = uc.X86_REG_AX
	BH     = uc.X86_REG_BH
	BL     = uc.X86_REG_BL
	BP     = uc.X86_REG_BP
	BX     = uc.X86_REG_BX
	CH     = uc.X86_REG_CH
	CL     = uc.X86_REG_CL
	CS     = uc.X86_REG_CS
	CX     = uc.X86_REG_CX
	DH     = uc.X86_REG_DH
	DI     = uc.X86_REG_DI
	DL     = uc.X86_REG_DL
	DS     = uc.X86_REG_DS
	DX     = uc.X86_REG_DX
	EAX    = uc.X86_REG_EAX
	EBP    = uc.X86_REG_EBP
	EBX    = uc.X86_REG_EBX
	ECX    = uc.X86_REG_ECX
	EDI    = uc.X86_REG_EDI
	EDX    = uc.X86_REG_EDX
	EFLAGS = uc.X86_REG_EFLAGS
	EIP    = uc.X86_REG_EIP
	ES     = uc.X86_REG_ES
	ESI    = uc.X86_REG_ESI
	ESP    = uc.X86_REG_ESP
	FS     = uc.X86_REG_FS
	GS     = uc.X86_REG_GS
	IP     = uc.X86_REG_IP
	RAX    = uc.X86_REG_RAX
	RBP    = uc.X86_REG_RBP
	RBX    = uc.X86_REG_RBX
	RCX    = uc.X86_REG_RCX
	RDI    = uc.X86_REG_RDI
	RDX    = uc.X86_REG_RDX
	RIP    = uc.X86_REG_RIP
	RSI    = uc.X86_REG_RSI
	RSP    = uc.X86_REG_RSP
	SI     = uc.X86_REG_SI
	SP     = uc.X86_REG_SP
	SS     = uc.X86_REG_SS
	R8     = uc.X86_REG_R8
	R9     = uc.X86_REG_R9
	R10    = uc.X86_REG_R10
	R11    = uc.X86_REG_R11
	R12    = uc.X86_REG_R12
	R13    = uc.X86_REG_R13
	R14    = uc.X86_REG_R14
	R15    = uc.X86_REG_R15
	XMM0   = uc.X86_REG_XMM0
	XMM1   = uc.X86_REG_XMM1
	XMM2   = uc.X86_REG_XMM2
	XMM3   = uc.X86_REG_XMM3
	XMM4   = uc.X86_REG_XMM4
	XMM5   = uc.X86_REG_XMM5
	XMM6   = uc.X86_REG_XMM6
	XMM7   = uc.X86_REG_XMM7
)
