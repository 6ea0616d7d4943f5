package mips

import uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"


const (
	ZERO = uc.MIPS_REG_ZERO
	AT   = uc.MIPS_REG_AT
	V0   = uc.MIPS_REG_V0
	V1   = uc.MIPS_REG_V1
	A0   = uc.MIPS_REG_A0
	A1   = uc.MIPS_REG_A1
	A2   = uc.MIPS_REG_A2
	A3   = uc.MIPS_REG_A3
	T0   = uc.MIPS_REG_T0
	T1   = uc.MIPS_REG_T1
	T2   = uc.MIPS_REG_T2
	T3   = uc.MIPS_REG_T3
	T4   = uc.MIPS_REG_T4
	T5   = uc.MIPS_REG_T5
	T6   = uc.MIPS_REG_T6
	T7   = uc.MIPS_REG_T7
	T8   = uc.MIPS_REG_T8
	T9   = uc.MIPS_REG_T9
	S0   = uc.MIPS_REG_S0
	S1   = uc.MIPS_REG_S1
	S2   = uc.MIPS_REG_S2
	S3   = uc.MIPS_REG_S3
	S4   = uc.MIPS_REG_S4
	S5   = uc.MIPS_REG_S5
	S6   = uc.MIPS_REG_S6
	S7   = uc.MIPS_REG_S7
	S8   = uc.MIPS_REG_S8
	K0   = uc.MIPS_REG_K0
	K1   = uc.MIPS_REG_K1
	GP   = uc.MIPS_REG_GP
	SP   = uc.MIPS_REG_SP
	FP   = uc.MIPS_REG_FP
	RA   = uc.MIPS_REG_RA
	HI   = uc.MIPS_REG_HI
	LO   = uc.MIPS_REG_LO
	PC   = uc.MIPS_REG_PC
)
