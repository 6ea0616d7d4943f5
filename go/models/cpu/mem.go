package cpu

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Mem adapts MemSim to the memory half of Cpu, bounded to a bits-wide address space.
type Mem struct {
	mask  uint64
	order binary.ByteOrder
	hooks *Hooks
	sim   *MemSim
}

func NewMem(bits uint, order binary.ByteOrder) *Mem {
	return &Mem{mask: ^uint64(0) >> (64 - bits), order: order, sim: &MemSim{}}
}

// value decodes p for hook callbacks. Sizes other than 1, 2, 4 and 8 read as 0.
func (m *Mem) value(p []byte) int64 {
	switch len(p) {
	case 1:
		return int64(p[0])
	case 2:
		return int64(m.order.Uint16(p))
	case 4:
		return int64(m.order.Uint32(p))
	case 8:
		return int64(m.order.Uint64(p))
	}
	return 0
}

func (m *Mem) inRange(addr, size uint64) bool {
	end := addr + size
	return size > 0 && end > addr && (end-1)&^m.mask == 0
}

func (m *Mem) MemMapProt(addr, size uint64, prot int) error {
	if !m.inRange(addr, size) {
		return errors.Wrapf(Errno(ERR_MAP), "%#x+%#x is outside the address space", addr, size)
	}
	m.sim.Map(addr, size, prot, false)
	return nil
}

// Overlaps reports whether any part of the range is already mapped.
func (m *Mem) Overlaps(addr, size uint64) bool {
	return len(m.sim.Mem.FindRange(addr, size)) > 0
}

// MemRegions reports inclusive end addresses, like uc_mem_regions().
func (m *Mem) MemRegions() ([]*Region, error) {
	regions := make([]*Region, len(m.sim.Mem))
	for i, p := range m.sim.Mem {
		regions[i] = &Region{Begin: p.Addr, End: p.End() - 1, Prot: p.Prot}
	}
	return regions, nil
}

func (m *Mem) requireMapped(addr, size uint64) error {
	if mapped, _ := m.sim.RangeValid(addr, size, 0); !mapped {
		return errors.Wrapf(Errno(ERR_NOMEM), "%#x+%#x is not mapped", addr, size)
	}
	return nil
}

func (m *Mem) MemProt(addr, size uint64, prot int) error {
	if err := m.requireMapped(addr, size); err != nil {
		return err
	}
	m.sim.Prot(addr, size, prot)
	return nil
}

func (m *Mem) MemUnmap(addr, size uint64) error {
	if err := m.requireMapped(addr, size); err != nil {
		return err
	}
	m.sim.Unmap(addr, size)
	return nil
}

// host access ignores protections, like uc_mem_read()/uc_mem_write()

func (m *Mem) MemReadInto(p []byte, addr uint64) error {
	return m.sim.Read(addr, p, 0)
}

func (m *Mem) MemRead(addr, size uint64) ([]byte, error) {
	p := make([]byte, size)
	if err := m.MemReadInto(p, addr); err != nil {
		return nil, err
	}
	return p, nil
}

func (m *Mem) MemWrite(addr uint64, p []byte) error {
	return m.sim.Write(addr, p, 0)
}

// ReadProt is a guest access: prot is checked and memory hooks fire.
// PROT_EXEC in prot makes it a fetch.
func (m *Mem) ReadProt(addr, size uint64, prot int) ([]byte, error) {
	p := make([]byte, size)
	err := m.sim.Read(addr, p, prot)
	if m.hooks == nil {
		return p, err
	}
	if merr, ok := err.(*MemError); ok {
		m.hooks.OnFault(merr.Enum, addr, int(size), 0)
		return nil, err
	} else if err != nil {
		return nil, err
	}
	if prot&PROT_EXEC != 0 {
		m.hooks.OnMem(MEM_FETCH, addr, int(size), 0)
	} else {
		m.hooks.OnMem(MEM_READ, addr, int(size), 0)
		m.hooks.OnMem(MEM_READ_AFTER, addr, int(size), 0)
	}
	return p, nil
}

// WriteProt is a guest write, checked against prot and reported to hooks.
func (m *Mem) WriteProt(addr uint64, p []byte, prot int) error {
	err := m.sim.Write(addr, p, prot)
	if m.hooks == nil {
		return err
	}
	val := m.value(p)
	if merr, ok := err.(*MemError); ok {
		m.hooks.OnFault(merr.Enum, addr, len(p), val)
	} else if err == nil {
		m.hooks.OnMem(MEM_WRITE, addr, len(p), val)
	}
	return err
}
