package m68k

import uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"


const (
	A0 = uc.M68K_REG_A0
	A1 = uc.M68K_REG_A1
	A2 = uc.M68K_REG_A2
	A3 = uc.M68K_REG_A3
	A4 = uc.M68K_REG_A4
	A5 = uc.M68K_REG_A5
	A6 = uc.M68K_REG_A6
	A7 = uc.M68K_REG_A7
	D0 = uc.M68K_REG_D0
	D1 = uc.M68K_REG_D1
	D2 = uc.M68K_REG_D2
	D3 = uc.M68K_REG_D3
	D4 = uc.M68K_REG_D4
	D5 = uc.M68K_REG_D5
	D6 = uc.M68K_REG_D6
	D7 = uc.M68K_REG_D7
	SR = uc.M68K_REG_SR
	PC = uc.M68K_REG_PC
)
