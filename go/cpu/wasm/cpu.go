// Package wasm runs an emscripten build of the engine under wazero.
// Each engine gets its own module instance; calls into it are serialized.
package wasm

import (
	"bytes"
	"context"
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/lunixbochs/ucjs/go/models/cpu"
)

// scratch holds register values and out-pointers; large enough for a 512-bit register
const scratchSize = 64

var regionOptions = &struc.Options{Order: binary.LittleEndian}

// uc_mem_region on wasm32
type memRegion struct {
	Begin uint64
	End   uint64
	Perms uint32
	Pad   []byte `struc:"[4]pad"`
}

const memRegionSize = 24

type Builder struct {
	Runtime    *Runtime
	Path       string
	Arch, Mode int
	// Context for calls into the module; defaults to context.Background().
	Context context.Context
}

func (b *Builder) New() (cpu.Cpu, error) {
	ctx := b.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if b.Runtime == nil || b.Runtime.IsClosed() {
		return nil, errors.New("wasm runtime is closed")
	}
	compiled, err := b.Runtime.CompileFile(ctx, b.Path)
	if err != nil {
		return nil, err
	}
	mod, err := b.Runtime.instantiate(ctx, b.Path, compiled)
	if err != nil {
		return nil, err
	}
	w := &WasmCpu{
		ctx:    ctx,
		mod:    mod,
		name:   b.Path,
		logger: b.Runtime.logger.With(zap.String("instance_id", mod.Name())),
		funcs:  make(map[string]api.Function),
	}
	if w.scratch, err = w.malloc(scratchSize); err != nil {
		mod.Close(ctx)
		return nil, err
	}
	if err := w.check("uc_open", uint64(uint32(b.Arch)), uint64(uint32(b.Mode)), uint64(w.scratch)); err != nil {
		w.freeAll()
		return nil, err
	}
	handle, ok := mod.Memory().ReadUint32Le(w.scratch)
	if !ok {
		w.freeAll()
		return nil, &MemoryAccessError{Operation: "read", Address: w.scratch, Length: 4}
	}
	w.handle = uint64(handle)
	return w, nil
}

type WasmCpu struct {
	mu      sync.Mutex
	ctx     context.Context
	mod     api.Module
	name    string
	logger  *zap.Logger
	funcs   map[string]api.Function
	handle  uint64
	scratch uint32
	running int32
	closed  bool
}

func (w *WasmCpu) Backend() interface{} {
	return w.mod
}

func (w *WasmCpu) fn(name string) (api.Function, error) {
	if f, ok := w.funcs[name]; ok {
		return f, nil
	}
	f := w.mod.ExportedFunction(name)
	if f == nil {
		// emscripten may keep the C underscore on exports
		f = w.mod.ExportedFunction("_" + name)
	}
	if f == nil {
		return nil, &FunctionNotFoundError{ModuleName: w.name, FunctionName: name}
	}
	w.funcs[name] = f
	return f, nil
}

func (w *WasmCpu) call(name string, args ...uint64) (uint64, error) {
	f, err := w.fn(name)
	if err != nil {
		return 0, err
	}
	res, err := f.Call(w.ctx, args...)
	if err != nil {
		w.logger.Debug("engine call trapped", zap.String("function", name), zap.Error(err))
		return 0, &CallError{FunctionName: name, Err: err}
	}
	if len(res) == 0 {
		return 0, nil
	}
	return res[0], nil
}

// check calls a function returning uc_err.
func (w *WasmCpu) check(name string, args ...uint64) error {
	ret, err := w.call(name, args...)
	if err != nil {
		return err
	}
	if err := cpu.CheckErrno(int(uint32(ret))); err != nil {
		return errors.Wrap(err, name)
	}
	return nil
}

func (w *WasmCpu) malloc(size uint32) (uint32, error) {
	ptr, err := w.call("malloc", uint64(size))
	if err != nil {
		return 0, err
	}
	if ptr == 0 {
		return 0, errors.Wrapf(cpu.Errno(cpu.ERR_NOMEM), "malloc(%d)", size)
	}
	return uint32(ptr), nil
}

func (w *WasmCpu) free(ptr uint32) {
	if ptr != 0 {
		w.call("free", uint64(ptr))
	}
}

func (w *WasmCpu) freeAll() {
	w.free(w.scratch)
	w.scratch = 0
	w.mod.Close(w.ctx)
}

func (w *WasmCpu) read(ptr, size uint32) ([]byte, error) {
	view, ok := w.mod.Memory().Read(ptr, size)
	if !ok {
		return nil, &MemoryAccessError{Operation: "read", Address: ptr, Length: size}
	}
	ret := make([]byte, size)
	copy(ret, view)
	return ret, nil
}

func (w *WasmCpu) write(ptr uint32, p []byte) error {
	if !w.mod.Memory().Write(ptr, p) {
		return &MemoryAccessError{Operation: "write", Address: ptr, Length: uint32(len(p))}
	}
	return nil
}

// size_t is 32 bits inside the module
func size32(size uint64) (uint64, error) {
	if size > 0xffffffff {
		return 0, errors.Wrapf(cpu.Errno(cpu.ERR_ARG), "size %#x exceeds wasm32 size_t", size)
	}
	return size, nil
}

func (w *WasmCpu) lock() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return errors.Wrap(cpu.Errno(cpu.ERR_HANDLE), "engine is closed")
	}
	return nil
}

func (w *WasmCpu) Version() (int, int) {
	if w.lock() != nil {
		return 0, 0
	}
	defer w.mu.Unlock()
	ret, err := w.call("uc_version", 0, 0)
	if err != nil {
		return 0, 0
	}
	return int(ret>>8) & 0xff, int(ret) & 0xff
}

func (w *WasmCpu) ArchSupported(arch int) bool {
	if w.lock() != nil {
		return false
	}
	defer w.mu.Unlock()
	ret, err := w.call("uc_arch_supported", uint64(uint32(arch)))
	return err == nil && uint32(ret) != 0
}

// Errno returns the engine's last error.
func (w *WasmCpu) Errno() error {
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	ret, err := w.call("uc_errno", w.handle)
	if err != nil {
		return err
	}
	return cpu.CheckErrno(int(uint32(ret)))
}

// Strerror asks the module for the message of an error code.
func (w *WasmCpu) Strerror(code int) (string, error) {
	if err := w.lock(); err != nil {
		return "", err
	}
	defer w.mu.Unlock()
	ptr, err := w.call("uc_strerror", uint64(uint32(code)))
	if err != nil {
		return "", err
	}
	return w.cstring(uint32(ptr))
}

func (w *WasmCpu) cstring(ptr uint32) (string, error) {
	mem := w.mod.Memory()
	var buf []byte
	for addr := ptr; ; addr++ {
		b, ok := mem.ReadByte(addr)
		if !ok {
			return "", &MemoryAccessError{Operation: "read", Address: addr, Length: 1}
		}
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return string(buf), nil
}

func (w *WasmCpu) MemMapProt(addr, size uint64, prot int) error {
	size, err := size32(size)
	if err != nil {
		return err
	}
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	return w.check("uc_mem_map", w.handle, addr, size, uint64(uint32(prot)))
}

func (w *WasmCpu) MemProt(addr, size uint64, prot int) error {
	size, err := size32(size)
	if err != nil {
		return err
	}
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	return w.check("uc_mem_protect", w.handle, addr, size, uint64(uint32(prot)))
}

func (w *WasmCpu) MemUnmap(addr, size uint64) error {
	size, err := size32(size)
	if err != nil {
		return err
	}
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	return w.check("uc_mem_unmap", w.handle, addr, size)
}

func (w *WasmCpu) MemRegions() ([]*cpu.Region, error) {
	if err := w.lock(); err != nil {
		return nil, err
	}
	defer w.mu.Unlock()
	// scratch[0:4] = uc_mem_region*, scratch[4:8] = count
	if err := w.check("uc_mem_regions", w.handle, uint64(w.scratch), uint64(w.scratch+4)); err != nil {
		return nil, err
	}
	mem := w.mod.Memory()
	ptr, ok1 := mem.ReadUint32Le(w.scratch)
	count, ok2 := mem.ReadUint32Le(w.scratch + 4)
	if !ok1 || !ok2 {
		return nil, &MemoryAccessError{Operation: "read", Address: w.scratch, Length: 8}
	}
	if count == 0 {
		return nil, nil
	}
	defer w.freeEngine(ptr)
	raw, err := w.read(ptr, count*memRegionSize)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(raw)
	ret := make([]*cpu.Region, count)
	for i := range ret {
		var mr memRegion
		if err := struc.UnpackWithOptions(r, &mr, regionOptions); err != nil {
			return nil, errors.Wrap(err, "decoding uc_mem_region")
		}
		ret[i] = &cpu.Region{Begin: mr.Begin, End: mr.End, Prot: int(mr.Perms)}
	}
	return ret, nil
}

// freeEngine releases memory the engine allocated for us.
func (w *WasmCpu) freeEngine(ptr uint32) {
	if _, err := w.fn("uc_free"); err == nil {
		w.call("uc_free", uint64(ptr))
	} else {
		w.free(ptr)
	}
}

func (w *WasmCpu) MemRead(addr, size uint64) ([]byte, error) {
	p := make([]byte, size)
	if err := w.MemReadInto(p, addr); err != nil {
		return nil, err
	}
	return p, nil
}

func (w *WasmCpu) MemReadInto(p []byte, addr uint64) error {
	if len(p) == 0 {
		return nil
	}
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	size := uint32(len(p))
	buf, err := w.malloc(size)
	if err != nil {
		return err
	}
	defer w.free(buf)
	if err := w.check("uc_mem_read", w.handle, addr, uint64(buf), uint64(size)); err != nil {
		return err
	}
	data, err := w.read(buf, size)
	if err != nil {
		return err
	}
	copy(p, data)
	return nil
}

func (w *WasmCpu) MemWrite(addr uint64, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	size := uint32(len(p))
	buf, err := w.malloc(size)
	if err != nil {
		return err
	}
	defer w.free(buf)
	if err := w.write(buf, p); err != nil {
		return err
	}
	return w.check("uc_mem_write", w.handle, addr, uint64(buf), uint64(size))
}

func (w *WasmCpu) RegRead(reg int) (uint64, error) {
	buf, err := w.RegReadBytes(reg, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// RegReadBytes reads a register up to 64 bytes wide as its little-endian image.
func (w *WasmCpu) RegReadBytes(reg int, size int) ([]byte, error) {
	if size <= 0 || size > scratchSize {
		return nil, errors.Wrapf(cpu.Errno(cpu.ERR_ARG), "register size %d", size)
	}
	if err := w.lock(); err != nil {
		return nil, err
	}
	defer w.mu.Unlock()
	if err := w.write(w.scratch, make([]byte, scratchSize)); err != nil {
		return nil, err
	}
	if err := w.check("uc_reg_read", w.handle, uint64(uint32(reg)), uint64(w.scratch)); err != nil {
		return nil, err
	}
	return w.read(w.scratch, uint32(size))
}

func (w *WasmCpu) RegWrite(reg int, val uint64) error {
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], val)
	if err := w.write(w.scratch, buf[:]); err != nil {
		return err
	}
	return w.check("uc_reg_write", w.handle, uint64(uint32(reg)), uint64(w.scratch))
}

func (w *WasmCpu) Start(begin, until uint64) error {
	return w.StartWithOptions(begin, until, nil)
}

func (w *WasmCpu) StartWithOptions(begin, until uint64, opts *cpu.StartOptions) error {
	var timeout, count uint64
	if opts != nil {
		timeout = opts.Timeout
		var err error
		if count, err = size32(opts.Count); err != nil {
			return err
		}
	}
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	atomic.StoreInt32(&w.running, 1)
	defer atomic.StoreInt32(&w.running, 0)
	return w.check("uc_emu_start", w.handle, begin, until, timeout, count)
}

// Stop can't interrupt a run in progress: the module executes on the calling
// goroutine and hooks are unavailable. Use a timeout or count instead.
func (w *WasmCpu) Stop() error {
	if atomic.LoadInt32(&w.running) != 0 {
		return errors.Wrap(cpu.Errno(cpu.ERR_ARG), "wasm engine can't be stopped while running")
	}
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	return w.check("uc_emu_stop", w.handle)
}

func (w *WasmCpu) Query(qtype int) (uint64, error) {
	if err := w.lock(); err != nil {
		return 0, err
	}
	defer w.mu.Unlock()
	if err := w.check("uc_query", w.handle, uint64(uint32(qtype)), uint64(w.scratch)); err != nil {
		return 0, err
	}
	val, ok := w.mod.Memory().ReadUint32Le(w.scratch)
	if !ok {
		return 0, &MemoryAccessError{Operation: "read", Address: w.scratch, Length: 4}
	}
	return uint64(val), nil
}

// HookAdd always fails: the module can't call back into Go.
func (w *WasmCpu) HookAdd(htype int, cb interface{}, begin, end uint64, extra ...int) (cpu.Hook, error) {
	return nil, errors.Wrapf(cpu.Errno(cpu.ERR_HOOK), "wasm backend has no hooks (type %#x)", htype)
}

func (w *WasmCpu) HookDel(hook cpu.Hook) error {
	return errors.Wrap(cpu.Errno(cpu.ERR_HOOK), "wasm backend has no hooks")
}

type wasmContext uint32

func (w *WasmCpu) ContextSave(reuse interface{}) (interface{}, error) {
	if err := w.lock(); err != nil {
		return nil, err
	}
	defer w.mu.Unlock()
	ctx, ok := reuse.(wasmContext)
	if !ok || ctx == 0 {
		if err := w.check("uc_context_alloc", w.handle, uint64(w.scratch)); err != nil {
			return nil, err
		}
		ptr, ok := w.mod.Memory().ReadUint32Le(w.scratch)
		if !ok {
			return nil, &MemoryAccessError{Operation: "read", Address: w.scratch, Length: 4}
		}
		ctx = wasmContext(ptr)
	}
	if err := w.check("uc_context_save", w.handle, uint64(ctx)); err != nil {
		return nil, err
	}
	return ctx, nil
}

func (w *WasmCpu) ContextRestore(saved interface{}) error {
	ctx, ok := saved.(wasmContext)
	if !ok {
		return errors.Wrapf(cpu.Errno(cpu.ERR_ARG), "bad context type %T", saved)
	}
	if err := w.lock(); err != nil {
		return err
	}
	defer w.mu.Unlock()
	return w.check("uc_context_restore", w.handle, uint64(ctx))
}

// Close releases the engine and its module instance. Safe to call more than once.
func (w *WasmCpu) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	err := w.check("uc_close", w.handle)
	w.free(w.scratch)
	if cerr := w.mod.Close(w.ctx); err == nil {
		err = cerr
	}
	w.logger.Debug("engine closed")
	return err
}
