package models

import (
	"bytes"
	"sync"
)

// Discache memoizes disassembly per address. An entry only hits while the
// code bytes at that address are unchanged, so rewritten code is redecoded.
type Discache struct {
	mu      sync.RWMutex
	max     int
	entries map[uint64]discacheEntry
}

type discacheEntry struct {
	mem []byte
	dis []Ins
}

// NewDiscache holds up to max entries, and starts over once full.
func NewDiscache(max int) *Discache {
	return &Discache{max: max, entries: make(map[uint64]discacheEntry)}
}

func (d *Discache) Get(addr uint64, mem []byte) ([]Ins, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ent, ok := d.entries[addr]
	if !ok || !bytes.Equal(ent.mem, mem) {
		return nil, false
	}
	return ent.dis, true
}

// Put copies mem, so callers may reuse their buffer.
func (d *Discache) Put(addr uint64, mem []byte, dis []Ins) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.entries[addr]; !ok && d.max > 0 && len(d.entries) >= d.max {
		d.entries = make(map[uint64]discacheEntry)
	}
	d.entries[addr] = discacheEntry{append([]byte(nil), mem...), dis}
}

func (d *Discache) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}
