package models

import (
	"fmt"
	"strings"

	"github.com/mgutz/ansi"
)

var (
	colSame    = ansi.ColorCode("default:default")
	colChanged = ansi.ColorCode("default+bu:default")
)

const changeCols = 4

// Span is a run of hex digits that either all changed or all stayed the same.
type Span struct {
	Text    string
	Changed bool
}

// Change is one register's value across two dumps.
type Change struct {
	RegSpec
	Old, New uint64
}

func (c *Change) Changed() bool {
	return c.Old != c.New
}

// Spans renders New as digits hex digits, split where it starts or stops matching Old.
func (c *Change) Spans(digits int) []Span {
	cur, prev := ToHex(c.New, digits), ToHex(c.Old, digits)
	if len(prev) != len(cur) {
		return []Span{{cur, true}}
	}
	var spans []Span
	start := 0
	for i := 1; i <= len(cur); i++ {
		if i < len(cur) && (cur[i] != prev[i]) == (cur[start] != prev[start]) {
			continue
		}
		spans = append(spans, Span{cur[start:i], cur[start] != prev[start]})
		start = i
	}
	return spans
}

// Format renders the change as " name 0xvalue". Without color a changed
// register is prefixed with "+ ", with color the changed digits are highlighted.
func (c *Change) Format(digits int, color bool) string {
	name := fmt.Sprintf("%4s", c.Name)
	if !c.Changed() {
		return " " + name + " 0x" + ToHex(c.New, digits)
	}
	if !color {
		return "+  " + name + " 0x" + ToHex(c.New, digits)
	}
	var b strings.Builder
	b.WriteString(" " + colChanged + name + ansi.Reset + " 0x")
	for _, s := range c.Spans(digits) {
		if s.Changed {
			b.WriteString(colChanged)
		} else {
			b.WriteString(colSame)
		}
		b.WriteString(s.Text)
	}
	b.WriteString(ansi.Reset)
	return b.String()
}

// Changes is a register dump diffed against the one before it.
type Changes struct {
	// hex digits per value
	Digits int
	List   []*Change
}

// String lays the changes out in rows of four, one row per line.
func (cs *Changes) String(color bool) string {
	var b strings.Builder
	for i, c := range cs.List {
		b.WriteString(c.Format(cs.Digits, color))
		if (i+1)%changeCols == 0 || i == len(cs.List)-1 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func (cs *Changes) Changed() []*Change {
	var ret []*Change
	for _, c := range cs.List {
		if c.Changed() {
			ret = append(ret, c)
		}
	}
	return ret
}

func (cs *Changes) Find(enum int) *Change {
	for _, c := range cs.List {
		if c.Enum == enum {
			return c
		}
	}
	return nil
}

// StatusDiff remembers the last register dump so the next one can highlight changes.
type StatusDiff struct {
	M    Machine
	last map[int]uint64
}

// Changes dumps registers and diffs them against the previous call.
// With onlyChanged, non-default registers are skipped and unchanged ones dropped.
func (s *StatusDiff) Changes(onlyChanged bool) (*Changes, error) {
	regs, err := s.M.RegDump()
	if err != nil {
		return nil, err
	}
	cs := &Changes{Digits: int(s.M.Bits() / 4)}
	next := make(map[int]uint64, len(regs))
	for _, reg := range regs {
		next[reg.Enum] = reg.Val
		if onlyChanged && !reg.Default {
			continue
		}
		c := &Change{RegSpec: reg.RegSpec, Old: s.last[reg.Enum], New: reg.Val}
		if !onlyChanged || c.Changed() {
			cs.List = append(cs.List, c)
		}
	}
	s.last = next
	return cs, nil
}

// Reset forgets the previous dump, so the next Changes call diffs against zero.
func (s *StatusDiff) Reset() {
	s.last = nil
}
