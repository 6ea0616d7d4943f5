package wasm

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/ucjs/go/models/cpu"
)

// A hand-assembled stand-in for the emscripten engine build. It keeps one
// register, one mapping of up to a page, and a bump allocator.
//
// linear memory layout:
//
//	0x00 heap pointer     0x04 free() calls   0x08 register value
//	0x0c uc_free() calls  0x10 mapping base   0x18 mapping size
//	0x1c mapping prot     0x24 mode           0x40 strerror text
//	0x1000 guest bytes    0x2000 heap
const (
	fixtureHandle   = 0x42
	fixtureFrees    = 0x04
	fixtureUcFrees  = 0x0c
	fixtureStrerror = "fixture ok"
)

const (
	i32 = 0x7f
	i64 = 0x7e
)

type fixtureFunc struct {
	name            string
	params, results []byte
	locals          []byte
	code            []byte
}

func uleb(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

func sleb(v int64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func vec(n int, items ...[]byte) []byte {
	return append(uleb(uint64(n)), bytes.Join(items, nil)...)
}

func name(s string) []byte {
	return append(uleb(uint64(len(s))), s...)
}

func section(id byte, body []byte) []byte {
	return append(append([]byte{id}, uleb(uint64(len(body)))...), body...)
}

func ops(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func i32c(v int32) []byte { return append([]byte{0x41}, sleb(int64(v))...) }
func i64c(v int64) []byte { return append([]byte{0x42}, sleb(v)...) }
func get(i int) []byte    { return []byte{0x20, byte(i)} }
func set(i int) []byte    { return []byte{0x21, byte(i)} }
func tee(i int) []byte    { return []byte{0x22, byte(i)} }
func call(i int) []byte   { return []byte{0x10, byte(i)} }

// loads and stores take an alignment exponent and a constant offset
func load32(off uint64) []byte  { return append([]byte{0x28, 2}, uleb(off)...) }
func load64(off uint64) []byte  { return append([]byte{0x29, 3}, uleb(off)...) }
func store32(off uint64) []byte { return append([]byte{0x36, 2}, uleb(off)...) }
func store64(off uint64) []byte { return append([]byte{0x37, 3}, uleb(off)...) }

var (
	opIf         = []byte{0x04, 0x40}
	opEnd        = []byte{0x0b}
	opReturn     = []byte{0x0f}
	opI32Eqz     = []byte{0x45}
	opI32Eq      = []byte{0x46}
	opI32Ne      = []byte{0x47}
	opI32GtU     = []byte{0x4b}
	opI32Add     = []byte{0x6a}
	opI32And     = []byte{0x71}
	opI64GtU     = []byte{0x56}
	opI64Add     = []byte{0x7c}
	opI64Sub     = []byte{0x7d}
	opWrap       = []byte{0xa7}
	opExtendU    = []byte{0xad}
	opMemoryCopy = []byte{0xfc, 0x0a, 0x00, 0x00}
)

// fail returns code from the enclosing function when the i32 on the stack is nonzero.
func fail(code int) []byte {
	return ops(opIf, i32c(int32(code)), opReturn, opEnd)
}

// count increments the i32 counter at addr.
func count(addr int32) []byte {
	return ops(i32c(addr), i32c(addr), load32(0), i32c(1), opI32Add, store32(0))
}

// guestOffset pushes addr - mapping base as an i64, for addr in local 1.
var guestOffset = ops(get(1), i32c(0), load64(0x10), opI64Sub)

// outOfRange pushes whether [addr, addr+size) leaves the mapping, for size in local 3.
var outOfRange = ops(guestOffset, get(3), opExtendU, opI64Add, i32c(0), load32(0x18), opExtendU, opI64GtU)

// guestPtr pushes the linear address backing addr.
var guestPtr = ops(guestOffset, opWrap, i32c(0x1000), opI32Add)

var fixtureFuncs = []fixtureFunc{
	// index 0, called by uc_mem_regions
	{"malloc", []byte{i32}, []byte{i32}, []byte{i32}, ops(
		i32c(0), i32c(0), load32(0), tee(1),
		get(0), i32c(7), opI32Add, i32c(-8), opI32And, opI32Add,
		store32(0), get(1),
	)},
	{"free", []byte{i32}, nil, nil, count(fixtureFrees)},
	{"uc_free", []byte{i32}, []byte{i32}, nil, ops(count(fixtureUcFrees), i32c(0))},
	{"uc_open", []byte{i32, i32, i32}, []byte{i32}, nil, ops(
		get(0), i32c(cpu.ARCH_X86), opI32Ne, fail(cpu.ERR_ARCH),
		get(2), i32c(fixtureHandle), store32(0),
		i32c(0), get(1), store32(0x24),
		i32c(0),
	)},
	{"uc_close", []byte{i32}, []byte{i32}, nil, i32c(0)},
	{"_uc_errno", []byte{i32}, []byte{i32}, nil, i32c(0)},
	{"uc_version", []byte{i32, i32}, []byte{i32}, nil, i32c(0x0200)},
	{"uc_arch_supported", []byte{i32}, []byte{i32}, nil, ops(get(0), i32c(cpu.ARCH_X86), opI32Eq)},
	{"uc_strerror", []byte{i32}, []byte{i32}, nil, i32c(0x40)},
	{"uc_reg_read", []byte{i32, i32, i32}, []byte{i32}, nil, ops(
		get(1), opI32Eqz, fail(cpu.ERR_ARG),
		get(2), i32c(0), load64(0x08), store64(0),
		i32c(0),
	)},
	{"uc_reg_write", []byte{i32, i32, i32}, []byte{i32}, nil, ops(
		get(1), opI32Eqz, fail(cpu.ERR_ARG),
		i32c(0), get(2), load64(0), store64(0x08),
		i32c(0),
	)},
	{"uc_mem_map", []byte{i32, i64, i32, i32}, []byte{i32}, nil, ops(
		i32c(0), load32(0x18), fail(cpu.ERR_MAP),
		get(2), i32c(0x1000), opI32GtU, fail(cpu.ERR_NOMEM),
		i32c(0), get(1), store64(0x10),
		i32c(0), get(2), store32(0x18),
		i32c(0), get(3), store32(0x1c),
		i32c(0),
	)},
	{"uc_mem_read", []byte{i32, i64, i32, i32}, []byte{i32}, nil, ops(
		outOfRange, fail(cpu.ERR_READ_UNMAPPED),
		get(2), guestPtr, get(3), opMemoryCopy,
		i32c(0),
	)},
	{"uc_mem_write", []byte{i32, i64, i32, i32}, []byte{i32}, nil, ops(
		outOfRange, fail(cpu.ERR_WRITE_UNMAPPED),
		guestPtr, get(2), get(3), opMemoryCopy,
		i32c(0),
	)},
	{"uc_mem_regions", []byte{i32, i32, i32}, []byte{i32}, []byte{i32}, ops(
		i32c(0), load32(0x18), opI32Eqz, opIf,
		get(2), i32c(0), store32(0), i32c(0), opReturn,
		opEnd,
		i32c(24), call(0), set(3),
		get(3), i32c(0), load64(0x10), store64(0),
		get(3), i32c(0), load64(0x10), i32c(0), load32(0x18), opExtendU, opI64Add, i64c(1), opI64Sub, store64(8),
		get(3), i32c(0), load32(0x1c), store32(16),
		get(1), get(3), store32(0),
		get(2), i32c(1), store32(0),
		i32c(0),
	)},
	{"uc_query", []byte{i32, i32, i32}, []byte{i32}, nil, ops(
		get(1), i32c(cpu.QUERY_PAGE_SIZE), opI32Eq, opIf,
		get(2), i32c(0x1000), store32(0), i32c(0), opReturn,
		opEnd,
		get(1), i32c(cpu.QUERY_MODE), opI32Eq, opIf,
		get(2), i32c(0), load32(0x24), store32(0), i32c(0), opReturn,
		opEnd,
		i32c(cpu.ERR_ARG),
	)},
}

func fixtureModule() []byte {
	var types, funcs, exports, codes [][]byte
	for i, f := range fixtureFuncs {
		types = append(types, ops([]byte{0x60}, vec(len(f.params), f.params), vec(len(f.results), f.results)))
		funcs = append(funcs, uleb(uint64(i)))
		exports = append(exports, ops(name(f.name), []byte{0x00}, uleb(uint64(i))))
		var locals []byte
		if len(f.locals) == 0 {
			locals = uleb(0)
		} else {
			locals = vec(1, uleb(uint64(len(f.locals))), []byte{f.locals[0]})
		}
		body := ops(locals, f.code, opEnd)
		codes = append(codes, append(uleb(uint64(len(body))), body...))
	}
	exports = append(exports, ops(name("memory"), []byte{0x02, 0x00}))

	heap := []byte{0x00, 0x20, 0x00, 0x00}
	text := append([]byte(fixtureStrerror), 0)
	data := [][]byte{
		ops([]byte{0x00}, i32c(0), opEnd, vec(len(heap), heap)),
		ops([]byte{0x00}, i32c(0x40), opEnd, vec(len(text), text)),
	}
	return ops(
		[]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00},
		section(1, vec(len(types), types...)),
		section(3, vec(len(funcs), funcs...)),
		section(5, vec(1, []byte{0x00, 0x01})),
		section(7, vec(len(exports), exports...)),
		section(10, vec(len(codes), codes...)),
		section(11, vec(len(data), data...)),
	)
}

// newFixtureCpu opens an engine on the fixture module.
func newFixtureCpu(t *testing.T, arch int) (*WasmCpu, error) {
	rt := newRuntime(t)
	path := filepath.Join(t.TempDir(), "fixture.wasm")
	require.NoError(t, os.WriteFile(path, fixtureModule(), 0644))
	c, err := (&Builder{Runtime: rt, Path: path, Arch: arch, Mode: cpu.MODE_32}).New()
	if err != nil {
		return nil, err
	}
	w := c.(*WasmCpu)
	t.Cleanup(func() { w.Close() })
	return w, nil
}

// counter reads one of the fixture's call counters.
func counter(t *testing.T, w *WasmCpu, addr uint32) uint32 {
	v, ok := w.mod.Memory().ReadUint32Le(addr)
	require.True(t, ok)
	return v
}
