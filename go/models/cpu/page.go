package cpu

import (
	"fmt"
	"sort"
	"strings"
)

// Page is one contiguous mapping with its own backing bytes.
type Page struct {
	Addr uint64
	Size uint64
	Prot int
	Data []byte

	Desc string
}

func (p *Page) End() uint64 {
	return p.Addr + p.Size
}

func (p *Page) String() string {
	desc := fmt.Sprintf("0x%x-0x%x %s", p.Addr, p.End(), ProtString(p.Prot))
	if p.Desc != "" {
		desc += " [" + p.Desc + "]"
	}
	return desc
}

func (p *Page) Contains(addr uint64) bool {
	return p.Addr <= addr && addr < p.End()
}

// Intersect clips addr:addr+size to the page.
func (p *Page) Intersect(addr, size uint64) (start, n uint64, ok bool) {
	start, end := p.Addr, p.End()
	if addr > start {
		start = addr
	}
	if e := addr + size; e < end {
		end = e
	}
	if end <= start {
		return 0, 0, false
	}
	return start, end - start, true
}

func (p *Page) Overlaps(addr, size uint64) bool {
	_, _, ok := p.Intersect(addr, size)
	return ok
}

// cut returns start:end of p as a new page sharing p's backing bytes.
func (p *Page) cut(start, end uint64) *Page {
	data := p.Data[start-p.Addr : end-p.Addr]
	return &Page{Addr: start, Size: end - start, Prot: p.Prot, Data: data, Desc: p.Desc}
}

// Split shrinks p to addr:addr+size and returns what was left over on
// either side. A range reaching past p grows it with zeroes.
func (p *Page) Split(addr, size uint64) (left, right *Page) {
	end := addr + size
	if addr > p.Addr {
		left = p.cut(p.Addr, addr)
	}
	if end < p.End() {
		right = p.cut(end, p.End())
	}
	data := make([]byte, size)
	if start, n, ok := p.Intersect(addr, size); ok {
		copy(data[start-addr:], p.Data[start-p.Addr:start-p.Addr+n])
	}
	if left == nil && right == nil && addr == p.Addr && size == p.Size {
		data = p.Data
	}
	p.Addr, p.Size, p.Data = addr, size, data
	return left, right
}

func (p *Page) Write(addr uint64, data []byte) {
	copy(p.Data[addr-p.Addr:], data)
}

// Pages is kept sorted by address and never overlaps.
type Pages []*Page

func (p Pages) Len() int           { return len(p) }
func (p Pages) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
func (p Pages) Less(i, j int) bool { return p[i].Addr < p[j].Addr }

func (p Pages) String() string {
	s := make([]string, len(p))
	for i, v := range p {
		s[i] = v.String()
	}
	return strings.Join(s, "\n")
}

// index returns the position of the page containing addr, or -1.
func (p Pages) index(addr uint64) int {
	i := sort.Search(len(p), func(i int) bool { return p[i].End() > addr })
	if i < len(p) && p[i].Contains(addr) {
		return i
	}
	return -1
}

func (p Pages) Find(addr uint64) *Page {
	if i := p.index(addr); i >= 0 {
		return p[i]
	}
	return nil
}

// FindRange returns the run of pages overlapping addr:addr+size.
func (p Pages) FindRange(addr, size uint64) Pages {
	first := sort.Search(len(p), func(i int) bool { return p[i].End() > addr })
	last := first
	for last < len(p) && p[last].Overlaps(addr, size) {
		last++
	}
	if first == last {
		return nil
	}
	return p[first:last]
}
