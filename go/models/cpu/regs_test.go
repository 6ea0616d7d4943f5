package cpu

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRegs(bits uint) ([]int, *Regs) {
	enums := make([]int, 100)
	for i := range enums {
		enums[i] = 100 - i
	}
	return enums, NewRegs(bits, enums)
}

func BenchmarkRegsRead(b *testing.B) {
	enums, regs := makeRegs(64)
	for i := 0; i < b.N; i++ {
		regs.RegRead(enums[i%len(enums)])
	}
}

func TestRegsContext(t *testing.T) {
	enums, regs := makeRegs(64)
	zero, err := regs.ContextSave(nil)
	require.NoError(t, err)

	for i, e := range enums {
		require.NoError(t, regs.RegWrite(e, uint64(i*2)))
	}
	for i, e := range enums {
		val, err := regs.RegRead(e)
		require.NoError(t, err)
		assert.Equal(t, uint64(i*2), val)
	}

	require.NoError(t, regs.ContextRestore(zero))
	for _, e := range enums {
		val, err := regs.RegRead(e)
		require.NoError(t, err)
		assert.Zero(t, val)
	}

	// a saved context can be reused
	require.NoError(t, regs.RegWrite(enums[0], 1))
	ctx, err := regs.ContextSave(zero)
	require.NoError(t, err)
	require.NoError(t, regs.RegWrite(enums[0], 0))
	require.NoError(t, regs.ContextRestore(ctx))
	val, _ := regs.RegRead(enums[0])
	assert.Equal(t, uint64(1), val)

	_, err = regs.ContextSave("nope")
	assert.Equal(t, Errno(ERR_ARG), errors.Cause(err))
	assert.Equal(t, Errno(ERR_ARG), errors.Cause(regs.ContextRestore(42)))
}

func TestRegsMask(t *testing.T) {
	enums, regs := makeRegs(8)
	require.NoError(t, regs.RegWrite(enums[0], 0xffff))
	val, err := regs.RegRead(enums[0])
	require.NoError(t, err)
	assert.Equal(t, uint64(0xff), val)
}

func TestRegsUnknown(t *testing.T) {
	_, regs := makeRegs(32)
	_, err := regs.RegRead(1000)
	assert.Equal(t, Errno(ERR_ARG), errors.Cause(err))
	assert.Equal(t, Errno(ERR_ARG), errors.Cause(regs.RegWrite(1000, 1)))
}
