package models

import (
	"fmt"

	"github.com/lunixbochs/ucjs/go/models/cpu"
)

// Mmap is a mapped region plus the description given when it was mapped.
type Mmap struct {
	Addr, Size uint64
	Prot       int
	Desc       string
}

func (m *Mmap) Contains(addr uint64) bool {
	return m.Addr <= addr && addr < m.Addr+m.Size
}

func (m *Mmap) End() uint64 {
	return m.Addr + m.Size
}

func (m *Mmap) String() string {
	desc := fmt.Sprintf("0x%x-0x%x %s", m.Addr, m.Addr+m.Size, cpu.ProtString(m.Prot))
	if m.Desc != "" {
		desc += fmt.Sprintf(" [%s]", m.Desc)
	}
	return desc
}

type MmapAddrSort []*Mmap

func (m MmapAddrSort) Len() int           { return len(m) }
func (m MmapAddrSort) Less(i, j int) bool { return m[i].Addr < m[j].Addr }
func (m MmapAddrSort) Swap(i, j int)      { m[i], m[j] = m[j], m[i] }
