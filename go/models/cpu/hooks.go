package cpu

import (
	"github.com/pkg/errors"
)

// callback signatures, matching the unicorn Go bindings minus the engine argument
type (
	CodeCb     = func(Cpu, uint64, uint32)
	IntrCb     = func(Cpu, uint32)
	MemCb      = func(Cpu, int, uint64, int, int64)
	MemFaultCb = func(Cpu, int, uint64, int, int64) bool
)

type hookInfo struct {
	htype int
	start uint64
	end   uint64
}

func (h *hookInfo) Type() int {
	return h.htype
}

func (h *hookInfo) Contains(addr uint64) bool {
	return h.start > h.end || addr >= h.start && addr <= h.end
}

type hinfo interface {
	Type() int
}

type codeHook struct {
	hookInfo
	cb CodeCb
}

type intrHook struct {
	hookInfo
	cb IntrCb
}

type memHook struct {
	hookInfo
	cb MemCb
}

type memFaultHook struct {
	hookInfo
	cb MemFaultCb
}

// HookForAccess returns the hook bit that fires for a MEM_* access kind, or 0.
func HookForAccess(access int) int {
	switch access {
	case MEM_READ:
		return HOOK_MEM_READ
	case MEM_WRITE:
		return HOOK_MEM_WRITE
	case MEM_FETCH:
		return HOOK_MEM_FETCH
	case MEM_READ_AFTER:
		return HOOK_MEM_READ_AFTER
	case MEM_READ_UNMAPPED:
		return HOOK_MEM_READ_UNMAPPED
	case MEM_WRITE_UNMAPPED:
		return HOOK_MEM_WRITE_UNMAPPED
	case MEM_FETCH_UNMAPPED:
		return HOOK_MEM_FETCH_UNMAPPED
	case MEM_READ_PROT:
		return HOOK_MEM_READ_PROT
	case MEM_WRITE_PROT:
		return HOOK_MEM_WRITE_PROT
	case MEM_FETCH_PROT:
		return HOOK_MEM_FETCH_PROT
	}
	return 0
}

// Hooks is a hook table for backends that don't have their own.
type Hooks struct {
	cpu Cpu

	code     []*codeHook
	block    []*codeHook
	intr     []*intrHook
	mem      []*memHook
	memFault []*memFaultHook
}

// creates &Hooks{}, optionally attaching to a *Mem instance
func NewHooks(cpu Cpu, mem *Mem) *Hooks {
	h := &Hooks{cpu: cpu}
	if mem != nil {
		// mem will dispatch hooks automatically
		mem.hooks = h
	}
	return h
}

func (h *Hooks) HookAdd(htype int, cb interface{}, start uint64, end uint64, extra ...int) (Hook, error) {
	info := hookInfo{htype, start, end}
	var ok bool
	var hook Hook
	switch {
	case htype == HOOK_BLOCK:
		hh := &codeHook{hookInfo: info}
		if hh.cb, ok = cb.(CodeCb); ok {
			h.block, hook = append(h.block, hh), hh
		}

	case htype == HOOK_CODE:
		hh := &codeHook{hookInfo: info}
		if hh.cb, ok = cb.(CodeCb); ok {
			h.code, hook = append(h.code, hh), hh
		}

	case htype == HOOK_INTR:
		hh := &intrHook{hookInfo: info}
		if hh.cb, ok = cb.(IntrCb); ok {
			h.intr, hook = append(h.intr, hh), hh
		}

	case htype == HOOK_INSN:
		return nil, errors.Wrap(Errno(ERR_HOOK), "instruction hooks need an instruction decoder")

	case htype&^(HOOK_MEM_VALID|HOOK_MEM_READ_AFTER) == 0 && htype != 0:
		hh := &memHook{hookInfo: info}
		if hh.cb, ok = cb.(MemCb); ok {
			h.mem, hook = append(h.mem, hh), hh
		}

	case htype&^HOOK_MEM_INVALID == 0 && htype != 0:
		hh := &memFaultHook{hookInfo: info}
		if hh.cb, ok = cb.(MemFaultCb); ok {
			h.memFault, hook = append(h.memFault, hh), hh
		}

	default:
		return nil, Errno(ERR_HOOK)
	}
	if !ok {
		return nil, errors.Errorf("wrong callback type %T for hook type %#x", cb, htype)
	}
	return hook, nil
}

func (h *Hooks) HookDel(hh Hook) error {
	info, ok := hh.(hinfo)
	if !ok {
		return errors.Wrapf(Errno(ERR_ARG), "not a hook: %T", hh)
	}
	found := false
	switch info.Type() {
	case HOOK_BLOCK:
		h.block = delCode(h.block, hh, &found)
	case HOOK_CODE:
		h.code = delCode(h.code, hh, &found)
	case HOOK_INTR:
		var tmp []*intrHook
		for _, v := range h.intr {
			if v != hh {
				tmp = append(tmp, v)
			} else {
				found = true
			}
		}
		h.intr = tmp
	default:
		var tmp []*memHook
		for _, v := range h.mem {
			if v != hh {
				tmp = append(tmp, v)
			} else {
				found = true
			}
		}
		h.mem = tmp
		var ftmp []*memFaultHook
		for _, v := range h.memFault {
			if v != hh {
				ftmp = append(ftmp, v)
			} else {
				found = true
			}
		}
		h.memFault = ftmp
	}
	if !found {
		return errors.Wrap(Errno(ERR_ARG), "hook not found")
	}
	return nil
}

func delCode(hooks []*codeHook, hh Hook, found *bool) []*codeHook {
	var tmp []*codeHook
	for _, v := range hooks {
		if v != hh {
			tmp = append(tmp, v)
		} else {
			*found = true
		}
	}
	return tmp
}

func (h *Hooks) OnBlock(addr uint64, size uint32) {
	for _, v := range h.block {
		if v.Contains(addr) {
			v.cb(h.cpu, addr, size)
		}
	}
}

func (h *Hooks) OnCode(addr uint64, size uint32) {
	for _, v := range h.code {
		if v.Contains(addr) {
			v.cb(h.cpu, addr, size)
		}
	}
}

func (h *Hooks) OnIntr(intno uint32) {
	for _, v := range h.intr {
		v.cb(h.cpu, intno)
	}
}

func (h *Hooks) OnMem(access int, addr uint64, size int, val int64) {
	bit := HookForAccess(access)
	for _, v := range h.mem {
		if v.htype&bit != 0 && v.Contains(addr) {
			v.cb(h.cpu, access, addr, size, val)
		}
	}
}

// OnFault returns true if any fault hook handled the access.
func (h *Hooks) OnFault(access int, addr uint64, size int, val int64) bool {
	bit := HookForAccess(access)
	for _, v := range h.memFault {
		if v.htype&bit != 0 && v.Contains(addr) {
			if v.cb(h.cpu, access, addr, size, val) {
				return true
			}
		}
	}
	return false
}
