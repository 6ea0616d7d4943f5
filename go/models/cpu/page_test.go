package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPages() Pages {
	return Pages{
		{Addr: 0x1000, Size: 0x1000},
		{Addr: 0x2000, Size: 0x1000},
		{Addr: 0x4000, Size: 0x2000},
		{Addr: 0x6000, Size: 0x2000},
	}
}

func TestPageFind(t *testing.T) {
	mem := testPages()
	for _, addr := range []uint64{0x1000, 0x1001, 0x1fff} {
		assert.Same(t, mem[0], mem.Find(addr), "%#x", addr)
	}
	assert.Same(t, mem[3], mem.Find(0x7fff))
	for _, addr := range []uint64{0x1, 0x3000, 0x8000, 0x10000} {
		assert.Nil(t, mem.Find(addr), "%#x", addr)
	}
}

func TestPageFindRange(t *testing.T) {
	mem := testPages()
	tests := []struct {
		addr, size uint64
		want       Pages
	}{
		{0x0, 0x10000, mem},
		{0x0, 0x1000, nil},
		{0x1000, 0x1000, mem[:1]},
		{0x1000, 0x2000, mem[:2]},
		{0x2000, 0x2000, mem[1:2]},
		{0x2000, 0x4000, mem[1:3]},
		{0x2000, 0x10000, mem[1:]},
		{0x3000, 0x1000, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mem.FindRange(tt.addr, tt.size), "%#x+%#x", tt.addr, tt.size)
	}
}

func TestPageIntersect(t *testing.T) {
	p := &Page{Addr: 0x1000, Size: 0x1000}
	start, n, ok := p.Intersect(0x800, 0x1000)
	assert.True(t, ok)
	assert.Equal(t, uint64(0x1000), start)
	assert.Equal(t, uint64(0x800), n)

	_, _, ok = p.Intersect(0x2000, 0x10)
	assert.False(t, ok)
	_, _, ok = p.Intersect(0x1000, 0)
	assert.False(t, ok)
}

func TestPageSplit(t *testing.T) {
	data := make([]byte, 0x30)
	for i := range data {
		data[i] = byte(i)
	}
	p := &Page{Addr: 0x100, Size: 0x30, Prot: PROT_READ, Data: data, Desc: "code"}
	left, right := p.Split(0x110, 0x10)
	require.NotNil(t, left)
	require.NotNil(t, right)

	assert.Equal(t, "0x100-0x110 r-- [code]", left.String())
	assert.Equal(t, data[:0x10], left.Data)
	assert.Equal(t, uint64(0x110), p.Addr)
	assert.Equal(t, data[0x10:0x20], p.Data)
	assert.Equal(t, uint64(0x120), right.Addr)
	assert.Equal(t, data[0x20:], right.Data)

	// growing past the page pads with zeroes
	p = &Page{Addr: 0x100, Size: 0x2, Data: []byte{1, 2}}
	left, right = p.Split(0xfe, 0x6)
	assert.Nil(t, left)
	assert.Nil(t, right)
	assert.Equal(t, []byte{0, 0, 1, 2, 0, 0}, p.Data)
}
