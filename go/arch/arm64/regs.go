package arm64

import uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"


const (
	X0   = uc.ARM64_REG_X0
	X1   = uc.ARM64_REG_X1
	X2   = uc.ARM64_REG_X2
	X3   = uc.ARM64_REG_X3
	X4   = uc.ARM64_REG_X4
	X5   = uc.ARM64_REG_X5
	X6   = uc.ARM64_REG_X6
	X7   = uc.ARM64_REG_X7
	X8   = uc.ARM64_REG_X8
	X9   = uc.ARM64_REG_X9
	X10  = uc.ARM64_REG_X10
	X11  = uc.ARM64_REG_X11
	X12  = uc.ARM64_REG_X12
	X13  = uc.ARM64_REG_X13
	X14  = uc.ARM64_REG_X14
	X15  = uc.ARM64_REG_X15
	X16  = uc.ARM64_REG_X16
	X17  = uc.ARM64_REG_X17
	X18  = uc.ARM64_REG_X18
	X19  = uc.ARM64_REG_X19
	X20  = uc.ARM64_REG_X20
	X21  = uc.ARM64_REG_X21
	X22  = uc.ARM64_REG_X22
	X23  = uc.ARM64_REG_X23
	X24  = uc.ARM64_REG_X24
	X25  = uc.ARM64_REG_X25
	X26  = uc.ARM64_REG_X26
	X27  = uc.ARM64_REG_X27
	X28  = uc.ARM64_REG_X28
	X29  = uc.ARM64_REG_X29
	X30  = uc.ARM64_REG_X30
	FP   = uc.ARM64_REG_FP
	LR   = uc.ARM64_REG_LR
	SP   = uc.ARM64_REG_SP
	PC   = uc.ARM64_REG_PC
	NZCV = uc.ARM64_REG_NZCV
	S0   = uc.ARM64_REG_S0
	S1   = uc.ARM64_REG_S1
	S2   = uc.ARM64_REG_S2
	S3   = uc.ARM64_REG_S3
	D0   = uc.ARM64_REG_D0
	D1   = uc.ARM64_REG_D1
	D2   = uc.ARM64_REG_D2
	D3   = uc.ARM64_REG_D3
	Q0   = uc.ARM64_REG_Q0
	Q1   = uc.ARM64_REG_Q1
	Q2   = uc.ARM64_REG_Q2
	Q3   = uc.ARM64_REG_Q3
)
