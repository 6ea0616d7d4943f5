package cpu

import (
	"sort"
)

// MemSim is a flat guest address space made of non-overlapping pages.
type MemSim struct {
	Mem Pages
}

// RangeValid reports whether addr:addr+size is fully mapped, and whether
// every page in it grants all of prot. A prot of 0 skips the second check.
func (m *MemSim) RangeValid(addr, size uint64, prot int) (mapped bool, allowed bool) {
	allowed = true
	end := addr + size
	i := m.Mem.index(addr)
	if i < 0 {
		return false, false
	}
	for ; i < len(m.Mem) && addr < end; i++ {
		pg := m.Mem[i]
		if !pg.Contains(addr) {
			return false, allowed
		}
		if prot != 0 && pg.Prot&prot != prot {
			allowed = false
		}
		addr = pg.End()
	}
	return addr >= end, allowed
}

// Map replaces addr:addr+size with a new page. Unless zero is set, bytes
// from whatever was mapped there before are carried over.
func (m *MemSim) Map(addr, size uint64, prot int, zero bool) *Page {
	data := make([]byte, size)
	if !zero {
		m.copyOut(addr, data)
	}
	m.Unmap(addr, size)
	pg := &Page{Addr: addr, Size: size, Prot: prot, Data: data}
	m.Mem = append(m.Mem, pg)
	sort.Sort(m.Mem)
	return pg
}

// carve splits every page overlapping addr:addr+size at the range edges.
// keep decides what happens to the overlapped middle; returning false drops it.
func (m *MemSim) carve(addr, size uint64, keep func(*Page) bool) {
	out := make(Pages, 0, len(m.Mem)+2)
	for _, pg := range m.Mem {
		start, n, ok := pg.Intersect(addr, size)
		if !ok {
			out = append(out, pg)
			continue
		}
		left, right := pg.Split(start, n)
		if left != nil {
			out = append(out, left)
		}
		if keep(pg) {
			out = append(out, pg)
		}
		if right != nil {
			out = append(out, right)
		}
	}
	m.Mem = out
}

func (m *MemSim) Prot(addr, size uint64, prot int) {
	m.carve(addr, size, func(pg *Page) bool {
		pg.Prot = prot
		return true
	})
}

func (m *MemSim) Unmap(addr, size uint64) {
	m.carve(addr, size, func(*Page) bool { return false })
}

// copyOut copies whatever is mapped at addr into p, leaving holes untouched.
func (m *MemSim) copyOut(addr uint64, p []byte) {
	for _, pg := range m.Mem.FindRange(addr, uint64(len(p))) {
		start, n, _ := pg.Intersect(addr, uint64(len(p)))
		copy(p[start-addr:start-addr+n], pg.Data[start-pg.Addr:])
	}
}

func (m *MemSim) check(addr uint64, size int, prot int, unmapped, denied int) error {
	mapped, allowed := m.RangeValid(addr, uint64(size), prot)
	if !mapped {
		return &MemError{Addr: addr, Size: size, Enum: unmapped}
	} else if !allowed {
		return &MemError{Addr: addr, Size: size, Enum: denied}
	}
	return nil
}

// Read fills p from addr. With PROT_EXEC in prot, failures are reported as fetches.
func (m *MemSim) Read(addr uint64, p []byte, prot int) error {
	unmapped, denied := MEM_READ_UNMAPPED, MEM_READ_PROT
	if prot&PROT_EXEC != 0 {
		unmapped, denied = MEM_FETCH_UNMAPPED, MEM_FETCH_PROT
	}
	if err := m.check(addr, len(p), prot, unmapped, denied); err != nil {
		return err
	}
	m.copyOut(addr, p)
	return nil
}

func (m *MemSim) Write(addr uint64, p []byte, prot int) error {
	if err := m.check(addr, len(p), prot, MEM_WRITE_UNMAPPED, MEM_WRITE_PROT); err != nil {
		return err
	}
	for _, pg := range m.Mem.FindRange(addr, uint64(len(p))) {
		start, n, _ := pg.Intersect(addr, uint64(len(p)))
		copy(pg.Data[start-pg.Addr:], p[start-addr:start-addr+n])
	}
	return nil
}
