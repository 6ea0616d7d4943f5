package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscache(t *testing.T) {
	d := NewDiscache(2)
	mem := []byte{0x90}
	dis := []Ins{&fakeIns{addr: 0x1000, data: mem, mnemonic: "nop"}}
	d.Put(0x1000, mem, dis)

	mem[0] = 0xcc
	_, ok := d.Get(0x1000, mem)
	assert.False(t, ok, "changed bytes miss")
	got, ok := d.Get(0x1000, []byte{0x90})
	assert.True(t, ok)
	assert.Equal(t, dis, got)

	d.Put(0x1001, []byte{0x90}, dis)
	assert.Equal(t, 2, d.Len())
	d.Put(0x1002, []byte{0x90}, dis)
	assert.Equal(t, 1, d.Len())
	_, ok = d.Get(0x1000, []byte{0x90})
	assert.False(t, ok)
}
