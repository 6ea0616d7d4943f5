// Package archtest holds checks shared by every arch package's tests.
package archtest

import (
	"testing"

	"github.com/lunixbochs/ucjs/go/cpu/unicorn"
	"github.com/lunixbochs/ucjs/go/models"
	"github.com/lunixbochs/ucjs/go/models/cpu"
)

func open(t testing.TB, a *models.Arch) cpu.Cpu {
	c, err := (&unicorn.Builder{Arch: a.UC_ARCH, Mode: a.UC_MODE}).New()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// SmokeTest round-trips the stack pointer and dumps every register.
func SmokeTest(t *testing.T, a *models.Arch) {
	c := open(t, a)
	defer c.Close()
	if err := c.RegWrite(a.SP, 0x1000); err != nil {
		t.Fatal(err)
	}
	val, err := c.RegRead(a.SP)
	if err != nil {
		t.Fatal(err)
	}
	if val != 0x1000 {
		t.Fatal(a.Name + " failed to read/write stack pointer")
	}
	if _, err := a.RegDump(c); err != nil {
		t.Fatal(err)
	}
}

// Consistent checks the descriptor itself: names unique, PC and SP listed.
func Consistent(t *testing.T, a *models.Arch) {
	seen := make(map[string]bool)
	var pc, sp bool
	for _, r := range a.Regs {
		if seen[r.Name] {
			t.Errorf("%s: duplicate register %s", a.Name, r.Name)
		}
		seen[r.Name] = true
		pc = pc || r.Enum == a.PC
		sp = sp || r.Enum == a.SP
	}
	if !pc || !sp {
		t.Errorf("%s: pc or sp missing from register list", a.Name)
	}
	if len(a.DefaultRegs()) == 0 {
		t.Errorf("%s: no default registers", a.Name)
	}
	if a.Bits == 0 || a.Order == nil {
		t.Errorf("%s: bits or byte order unset", a.Name)
	}
}

// TestExec assembles code at 0x1000 and runs it to the end.
func TestExec(t *testing.T, a *models.Arch, asm string) {
	code, err := a.Assemble(asm, 0x1000)
	if err != nil {
		t.Fatal(err)
	}
	c := open(t, a)
	defer c.Close()
	if err := c.MemMapProt(0x1000, 0x1000, cpu.PROT_ALL); err != nil {
		t.Fatal(err)
	}
	if err := c.MemWrite(0x1000, code); err != nil {
		t.Fatal(err)
	}
	if err := c.Start(0x1000, 0x1000+uint64(len(code))); err != nil {
		t.Fatal(err)
	}
}

// TestRoundTrip disassembles what the assembler produced.
func TestRoundTrip(t *testing.T, a *models.Arch, asm, mnemonic string) {
	code, err := a.Assemble(asm, 0x1000)
	if err != nil {
		t.Fatal(err)
	}
	dis, err := a.Disassemble(code, 0x1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(dis) == 0 || dis[0].Mnemonic() != mnemonic {
		t.Fatalf("%s: %q disassembled to %v", a.Name, asm, dis)
	}
	if dis[0].Addr() != 0x1000 {
		t.Fatalf("%s: bad address %#x", a.Name, dis[0].Addr())
	}
}

func BenchRegs(b *testing.B, a *models.Arch) {
	c := open(b, a)
	defer c.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.RegDump(c)
	}
}
