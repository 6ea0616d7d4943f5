package unicorn

import (
	"github.com/pkg/errors"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/ucjs/go/models/cpu"
)

type Builder struct {
	Arch, Mode int
}

func (b *Builder) New() (cpu.Cpu, error) {
	u, err := uc.NewUnicorn(b.Arch, b.Mode)
	if err != nil {
		return nil, errors.Wrap(errno(err), "NewUnicorn() failed")
	}
	return &UnicornCpu{Unicorn: u, arch: b.Arch}, nil
}

// errno converts the binding's error type to cpu.Errno so callers can match on codes.
func errno(err error) error {
	if ucerr, ok := err.(uc.UcError); ok {
		return cpu.Errno(ucerr)
	}
	return err
}

type UnicornCpu struct {
	uc.Unicorn
	arch int
}

func (u *UnicornCpu) Backend() interface{} {
	return u.Unicorn
}

// Version asks the linked engine, which may differ from the headers the binding was built with.
func (u *UnicornCpu) Version() (int, int) {
	return uc.Version()
}

func (u *UnicornCpu) ArchSupported(arch int) bool {
	eng, err := uc.NewUnicorn(arch, 0)
	if err == nil {
		eng.Close()
		return true
	}
	// opening with mode 0 can fail on the mode alone
	return errors.Cause(errno(err)) != cpu.Errno(cpu.ERR_ARCH)
}

func (u *UnicornCpu) RegReadBatch(regs []int) ([]uint64, error) {
	vals, err := u.Unicorn.RegReadBatch(regs)
	return vals, errno(err)
}

func (u *UnicornCpu) RegWriteBatch(regs []int, vals []uint64) error {
	if len(regs) != len(vals) {
		return errors.Wrapf(cpu.Errno(cpu.ERR_ARG), "reg_write_batch: %d registers, %d values", len(regs), len(vals))
	}
	return errno(u.Unicorn.RegWriteBatch(regs, vals))
}

func (u *UnicornCpu) MemMapProt(addr, size uint64, prot int) error {
	return errno(u.Unicorn.MemMapProt(addr, size, prot))
}

func (u *UnicornCpu) MemProt(addr, size uint64, prot int) error {
	return errno(u.Unicorn.MemProtect(addr, size, prot))
}

func (u *UnicornCpu) MemUnmap(addr, size uint64) error {
	return errno(u.Unicorn.MemUnmap(addr, size))
}

func (u *UnicornCpu) MemRegions() ([]*cpu.Region, error) {
	regions, err := u.Unicorn.MemRegions()
	if err != nil {
		return nil, errno(err)
	}
	ret := make([]*cpu.Region, len(regions))
	for i, r := range regions {
		ret[i] = &cpu.Region{Begin: r.Begin, End: r.End, Prot: r.Prot}
	}
	return ret, nil
}

func (u *UnicornCpu) MemRead(addr, size uint64) ([]byte, error) {
	p, err := u.Unicorn.MemRead(addr, size)
	return p, errno(err)
}

func (u *UnicornCpu) MemReadInto(p []byte, addr uint64) error {
	return errno(u.Unicorn.MemReadInto(p, addr))
}

func (u *UnicornCpu) MemWrite(addr uint64, p []byte) error {
	return errno(u.Unicorn.MemWrite(addr, p))
}

func (u *UnicornCpu) RegRead(reg int) (uint64, error) {
	val, err := u.Unicorn.RegRead(reg)
	return val, errno(err)
}

func (u *UnicornCpu) RegWrite(reg int, val uint64) error {
	return errno(u.Unicorn.RegWrite(reg, val))
}

func (u *UnicornCpu) Start(begin, until uint64) error {
	return errno(u.Unicorn.Start(begin, until))
}

func (u *UnicornCpu) StartWithOptions(begin, until uint64, opts *cpu.StartOptions) error {
	if opts == nil {
		return u.Start(begin, until)
	}
	return errno(u.Unicorn.StartWithOptions(begin, until, &uc.UcOptions{Timeout: opts.Timeout, Count: opts.Count}))
}

func (u *UnicornCpu) Stop() error {
	return errno(u.Unicorn.Stop())
}

func (u *UnicornCpu) Query(qtype int) (uint64, error) {
	val, err := u.Unicorn.Query(qtype)
	return val, errno(err)
}

func (u *UnicornCpu) ContextSave(reuse interface{}) (interface{}, error) {
	var ctx uc.Context
	if reuse != nil {
		ctx, _ = reuse.(uc.Context)
	}
	saved, err := u.Unicorn.ContextSave(ctx)
	return saved, errno(err)
}

func (u *UnicornCpu) ContextRestore(ctx interface{}) error {
	c, ok := ctx.(uc.Context)
	if !ok {
		return errors.Wrapf(cpu.Errno(cpu.ERR_ARG), "bad context type %T", ctx)
	}
	return errno(u.Unicorn.ContextRestore(c))
}

func (u *UnicornCpu) HookAdd(htype int, cb interface{}, start uint64, end uint64, extra ...int) (cpu.Hook, error) {
	// the binding passes itself as the first callback argument; swap in the cpu.Cpu
	var wrap interface{}
	var ok bool
	switch {
	case htype == cpu.HOOK_BLOCK || htype == cpu.HOOK_CODE:
		var cbc cpu.CodeCb
		if cbc, ok = cb.(cpu.CodeCb); ok {
			wrap = func(_ uc.Unicorn, addr uint64, size uint32) { cbc(u, addr, size) }
		}

	case htype == cpu.HOOK_INTR:
		var cbc cpu.IntrCb
		if cbc, ok = cb.(cpu.IntrCb); ok {
			wrap = func(_ uc.Unicorn, intno uint32) { cbc(u, intno) }
		}

	case htype == cpu.HOOK_INSN:
		// only arch-aware callers use instruction hooks, so they get the raw binding signature
		wrap, ok = cb, true

	case htype&^(cpu.HOOK_MEM_VALID|cpu.HOOK_MEM_READ_AFTER) == 0 && htype != 0:
		var cbc cpu.MemCb
		if cbc, ok = cb.(cpu.MemCb); ok {
			wrap = func(_ uc.Unicorn, access int, addr uint64, size int, val int64) { cbc(u, access, addr, size, val) }
		}

	case htype&^cpu.HOOK_MEM_INVALID == 0 && htype != 0:
		var cbc cpu.MemFaultCb
		if cbc, ok = cb.(cpu.MemFaultCb); ok {
			wrap = func(_ uc.Unicorn, access int, addr uint64, size int, val int64) bool {
				return cbc(u, access, addr, size, val)
			}
		}

	default:
		return nil, errors.Wrapf(cpu.Errno(cpu.ERR_HOOK), "hook type %#x", htype)
	}
	if !ok {
		return nil, errors.Errorf("wrong callback type %T for hook type %#x", cb, htype)
	}
	hh, err := u.Unicorn.HookAdd(htype, wrap, start, end, extra...)
	if err != nil {
		return nil, errno(err)
	}
	return hh, nil
}

func (u *UnicornCpu) HookDel(hh cpu.Hook) error {
	h, ok := hh.(uc.Hook)
	if !ok {
		return errors.Wrapf(cpu.Errno(cpu.ERR_ARG), "not a hook: %T", hh)
	}
	return errno(u.Unicorn.HookDel(h))
}

func (u *UnicornCpu) Close() error {
	return errno(u.Unicorn.Close())
}
