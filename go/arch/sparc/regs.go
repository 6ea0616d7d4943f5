package sparc

import uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"


const (
	G0 = uc.SPARC_REG_G0
	G1 = uc.SPARC_REG_G1
	G2 = uc.SPARC_REG_G2
	G3 = uc.SPARC_REG_G3
	G4 = uc.SPARC_REG_G4
	G5 = uc.SPARC_REG_G5
	G6 = uc.SPARC_REG_G6
	G7 = uc.SPARC_REG_G7
	O0 = uc.SPARC_REG_O0
	O1 = uc.SPARC_REG_O1
	O2 = uc.SPARC_REG_O2
	O3 = uc.SPARC_REG_O3
	O4 = uc.SPARC_REG_O4
	O5 = uc.SPARC_REG_O5
	O6 = uc.SPARC_REG_O6
	O7 = uc.SPARC_REG_O7
	L0 = uc.SPARC_REG_L0
	L1 = uc.SPARC_REG_L1
	L2 = uc.SPARC_REG_L2
	L3 = uc.SPARC_REG_L3
	L4 = uc.SPARC_REG_L4
	L5 = uc.SPARC_REG_L5
	L6 = uc.SPARC_REG_L6
	L7 = uc.SPARC_REG_L7
	I0 = uc.SPARC_REG_I0
	I1 = uc.SPARC_REG_I1
	I2 = uc.SPARC_REG_I2
	I3 = uc.SPARC_REG_I3
	I4 = uc.SPARC_REG_I4
	I5 = uc.SPARC_REG_I5
	I6 = uc.SPARC_REG_I6
	I7 = uc.SPARC_REG_I7
	SP = uc.SPARC_REG_SP
	FP = uc.SPARC_REG_FP
	PC = uc.SPARC_REG_PC
)
