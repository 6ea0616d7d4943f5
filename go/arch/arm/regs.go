package arm

import uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"


const (
	R0   = uc.ARM_REG_R0
	R1   = uc.ARM_REG_R1
	R2   = uc.ARM_REG_R2
	R3   = uc.ARM_REG_R3
	R4   = uc.ARM_REG_R4
	R5   = uc.ARM_REG_R5
	R6   = uc.ARM_REG_R6
	R7   = uc.ARM_REG_R7
	R8   = uc.ARM_REG_R8
	R9   = uc.ARM_REG_R9
	R10  = uc.ARM_REG_R10
	R11  = uc.ARM_REG_R11
	R12  = uc.ARM_REG_R12
	SP   = uc.ARM_REG_SP
	LR   = uc.ARM_REG_LR
	PC   = uc.ARM_REG_PC
	CPSR = uc.ARM_REG_CPSR
	S0   = uc.ARM_REG_S0
	S1   = uc.ARM_REG_S1
	S2   = uc.ARM_REG_S2
	S3   = uc.ARM_REG_S3
	D0   = uc.ARM_REG_D0
	D1   = uc.ARM_REG_D1
	D2   = uc.ARM_REG_D2
	D3   = uc.ARM_REG_D3
	Q0   = uc.ARM_REG_Q0
	Q1   = uc.ARM_REG_Q1
	Q2   = uc.ARM_REG_Q2
	Q3   = uc.ARM_REG_Q3
)
