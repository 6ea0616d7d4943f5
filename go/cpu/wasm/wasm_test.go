package wasm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lunixbochs/ucjs/go/models/cpu"
)

// the smallest valid module: magic and version, no sections
var emptyModule = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func newRuntime(t *testing.T) *Runtime {
	ctx := context.Background()
	rt, err := NewRuntime(ctx, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close(ctx) })
	return rt
}

func TestRuntimeCloseIdempotent(t *testing.T) {
	ctx := context.Background()
	rt, err := NewRuntime(ctx, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.False(t, rt.IsClosed())
	assert.NoError(t, rt.Close(ctx))
	assert.NoError(t, rt.Close(ctx))
	assert.True(t, rt.IsClosed())
}

func TestCompileCache(t *testing.T) {
	rt := newRuntime(t)
	ctx := context.Background()
	a, err := rt.Compile(ctx, "empty", emptyModule)
	require.NoError(t, err)
	b, err := rt.Compile(ctx, "empty", emptyModule)
	require.NoError(t, err)
	assert.True(t, a == b, "second compile should hit the cache")
}

func TestCompileInvalid(t *testing.T) {
	rt := newRuntime(t)
	_, err := rt.Compile(context.Background(), "junk", []byte("not wasm"))
	var cerr *CompilationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "junk", cerr.ModuleName)
}

func TestCompileMissingFile(t *testing.T) {
	rt := newRuntime(t)
	_, err := rt.CompileFile(context.Background(), filepath.Join(t.TempDir(), "unicorn.wasm"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestBuilderMissingExports(t *testing.T) {
	rt := newRuntime(t)
	path := filepath.Join(t.TempDir(), "empty.wasm")
	require.NoError(t, os.WriteFile(path, emptyModule, 0644))

	b := &Builder{Runtime: rt, Path: path, Arch: cpu.ARCH_X86, Mode: cpu.MODE_32}
	_, err := b.New()
	var ferr *FunctionNotFoundError
	require.True(t, errors.As(err, &ferr), "got %v", err)
	assert.Equal(t, "malloc", ferr.FunctionName)
}

func TestBuilderClosedRuntime(t *testing.T) {
	ctx := context.Background()
	rt, err := NewRuntime(ctx, zaptest.NewLogger(t))
	require.NoError(t, err)
	rt.Close(ctx)
	_, err = (&Builder{Runtime: rt, Path: "unicorn.wasm"}).New()
	assert.Error(t, err)
}

func TestHooksUnsupported(t *testing.T) {
	w := &WasmCpu{}
	_, err := w.HookAdd(cpu.HOOK_CODE, nil, 1, 0)
	assert.Equal(t, cpu.Errno(cpu.ERR_HOOK), errCause(err))
	assert.Equal(t, cpu.Errno(cpu.ERR_HOOK), errCause(w.HookDel(nil)))
}

func TestSize32(t *testing.T) {
	_, err := size32(1 << 32)
	assert.Equal(t, cpu.Errno(cpu.ERR_ARG), errCause(err))
	n, err := size32(0x1000)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x1000), n)
}

func errCause(err error) error {
	type causer interface{ Cause() error }
	for err != nil {
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return err
}

func TestFixtureOpen(t *testing.T) {
	w, err := newFixtureCpu(t, cpu.ARCH_X86)
	require.NoError(t, err)
	assert.Equal(t, uint64(fixtureHandle), w.handle)

	major, minor := w.Version()
	assert.Equal(t, 2, major)
	assert.Equal(t, 0, minor)
	assert.True(t, w.ArchSupported(cpu.ARCH_X86))
	assert.False(t, w.ArchSupported(cpu.ARCH_ARM))

	mode, err := w.Query(cpu.QUERY_MODE)
	require.NoError(t, err)
	assert.Equal(t, uint64(cpu.MODE_32), mode)
	size, err := w.Query(cpu.QUERY_PAGE_SIZE)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1000), size)
	_, err = w.Query(99)
	assert.Equal(t, cpu.Errno(cpu.ERR_ARG), errCause(err))

	// exported with a leading underscore
	assert.NoError(t, w.Errno())
	msg, err := w.Strerror(cpu.ERR_OK)
	require.NoError(t, err)
	assert.Equal(t, fixtureStrerror, msg)
}

func TestFixtureOpenBadArch(t *testing.T) {
	_, err := newFixtureCpu(t, cpu.ARCH_ARM)
	assert.Equal(t, cpu.Errno(cpu.ERR_ARCH), errCause(err))
}

func TestFixtureRegs(t *testing.T) {
	w, err := newFixtureCpu(t, cpu.ARCH_X86)
	require.NoError(t, err)
	require.NoError(t, w.RegWrite(19, 0x1122334455667788))
	val, err := w.RegRead(19)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1122334455667788), val)

	// wider reads see the zeroed scratch past the value
	wide, err := w.RegReadBytes(19, 16)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11, 0, 0, 0, 0, 0, 0, 0, 0}, wide)

	_, err = w.RegRead(0)
	assert.Equal(t, cpu.Errno(cpu.ERR_ARG), errCause(err))
	assert.Equal(t, cpu.Errno(cpu.ERR_ARG), errCause(w.RegWrite(0, 1)))
	_, err = w.RegReadBytes(19, scratchSize+1)
	assert.Equal(t, cpu.Errno(cpu.ERR_ARG), errCause(err))
}

func TestFixtureMem(t *testing.T) {
	w, err := newFixtureCpu(t, cpu.ARCH_X86)
	require.NoError(t, err)
	require.NoError(t, w.MemMapProt(0x1000, 0x1000, cpu.PROT_ALL))
	assert.Equal(t, cpu.Errno(cpu.ERR_MAP), errCause(w.MemMapProt(0x1000, 0x1000, cpu.PROT_ALL)))

	require.NoError(t, w.MemWrite(0x1010, []byte("hello")))
	p, err := w.MemRead(0x1010, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), p)
	buf := make([]byte, 3)
	require.NoError(t, w.MemReadInto(buf, 0x1012))
	assert.Equal(t, []byte("llo"), buf)
	// every bounce buffer went back through free()
	assert.Equal(t, uint32(3), counter(t, w, fixtureFrees))

	_, err = w.MemRead(0x3000, 4)
	assert.Equal(t, cpu.Errno(cpu.ERR_READ_UNMAPPED), errCause(err))
	assert.Equal(t, cpu.Errno(cpu.ERR_WRITE_UNMAPPED), errCause(w.MemWrite(0x1ffe, []byte("four"))))
	assert.Equal(t, uint32(5), counter(t, w, fixtureFrees))
	assert.NoError(t, w.MemWrite(0x1000, nil))
}

func TestFixtureMemRegions(t *testing.T) {
	w, err := newFixtureCpu(t, cpu.ARCH_X86)
	require.NoError(t, err)
	regions, err := w.MemRegions()
	require.NoError(t, err)
	assert.Empty(t, regions)

	require.NoError(t, w.MemMapProt(0x1000, 0x1000, cpu.PROT_READ|cpu.PROT_EXEC))
	regions, err = w.MemRegions()
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, uint64(0x1000), regions[0].Begin)
	assert.Equal(t, uint64(0x1fff), regions[0].End)
	assert.Equal(t, cpu.PROT_READ|cpu.PROT_EXEC, regions[0].Prot)
	// the region array is released with uc_free, not free
	assert.Equal(t, uint32(1), counter(t, w, fixtureUcFrees))
	assert.Equal(t, uint32(0), counter(t, w, fixtureFrees))
}

func TestFixtureClose(t *testing.T) {
	w, err := newFixtureCpu(t, cpu.ARCH_X86)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, err = w.RegRead(19)
	assert.Equal(t, cpu.Errno(cpu.ERR_HANDLE), errCause(err))
	assert.Equal(t, cpu.Errno(cpu.ERR_HANDLE), errCause(w.MemWrite(0x1000, []byte{1})))
	major, minor := w.Version()
	assert.Equal(t, 0, major+minor)
}
