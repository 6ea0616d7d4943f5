package models

import (
	"encoding/binary"
	"io"

	"github.com/lunixbochs/ucjs/go/models/cpu"
)

// MemIO is the part of the engine surface needed to move guest memory.
type MemIO interface {
	MemReadInto(p []byte, addr uint64) error
	MemWrite(addr uint64, p []byte) error
}

// Machine is an engine instance plus the arch it was opened for.
// The UI, the command registry and the script bindings all drive it.
type Machine interface {
	MemIO

	Arch() *Arch
	Bits() uint
	ByteOrder() binary.ByteOrder
	Config() *Config
	Cpu() cpu.Cpu
	PageSize() uint64

	Mmap(addr, size uint64, prot int, desc string) (*Mmap, error)
	MemProt(addr, size uint64, prot int) error
	MemUnmap(addr, size uint64) error
	Mappings() []*Mmap
	MappingEnd(addr uint64) (uint64, error)
	MemRead(addr, size uint64) ([]byte, error)

	RegRead(enum int) (uint64, error)
	RegWrite(enum int, val uint64) error
	RegDump() ([]RegVal, error)
	Registers() ([]*Register, error)
	PC() (uint64, error)
	SetPC(pc uint64) error

	Assemble(asm string, addr uint64) ([]byte, error)
	Disassemble(addr, size uint64) ([]Ins, error)

	Run(begin, until uint64) error
	Step() error
	Stop() error

	Save() ([]byte, error)
	Load(data []byte) error

	SetOutput(w io.Writer)
	Printf(format string, args ...interface{})
	Println(s ...interface{})
	Close() error
}
