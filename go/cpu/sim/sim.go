// Package sim is an engine stand-in with real memory, registers and hooks
// but no instruction semantics. Execution stops at the first fetch.
package sim

import (
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/lunixbochs/ucjs/go/models"
	"github.com/lunixbochs/ucjs/go/models/cpu"
)

const PageSize = 0x1000

type Builder struct {
	Arch *models.Arch
}

func (b *Builder) New() (cpu.Cpu, error) {
	a := b.Arch
	if a == nil || a.Bits == 0 || a.Order == nil {
		return nil, errors.Wrap(cpu.Errno(cpu.ERR_ARCH), "sim: incomplete arch")
	}
	enums := make([]int, 0, len(a.Regs))
	for _, r := range a.Regs {
		enums = append(enums, r.Enum)
	}
	c := &SimCpu{
		Regs: cpu.NewRegs(uint(a.Bits), enums),
		Mem:  cpu.NewMem(a.AddressBits(), a.Order),
		arch: a.UC_ARCH,
		mode: a.UC_MODE,
		pc:   a.PC,
		cs:   a.CodeSeg,
	}
	c.Hooks = cpu.NewHooks(c, c.Mem)
	return c, nil
}

type SimCpu struct {
	*cpu.Hooks
	*cpu.Regs
	*cpu.Mem

	arch, mode int
	pc, cs     int
	stop       int32
}

func aligned(addr, size uint64) bool {
	return addr&(PageSize-1) == 0 && size&(PageSize-1) == 0 && size > 0
}

func (s *SimCpu) MemMapProt(addr, size uint64, prot int) error {
	if !aligned(addr, size) || prot&^cpu.PROT_ALL != 0 {
		return errors.Wrapf(cpu.Errno(cpu.ERR_ARG), "mem_map(%#x, %#x)", addr, size)
	}
	if s.Mem.Overlaps(addr, size) {
		return errors.Wrapf(cpu.Errno(cpu.ERR_MAP), "mem_map(%#x, %#x)", addr, size)
	}
	return s.Mem.MemMapProt(addr, size, prot)
}

func (s *SimCpu) MemProt(addr, size uint64, prot int) error {
	if !aligned(addr, size) || prot&^cpu.PROT_ALL != 0 {
		return errors.Wrapf(cpu.Errno(cpu.ERR_ARG), "mem_protect(%#x, %#x)", addr, size)
	}
	return s.Mem.MemProt(addr, size, prot)
}

func (s *SimCpu) MemUnmap(addr, size uint64) error {
	if !aligned(addr, size) {
		return errors.Wrapf(cpu.Errno(cpu.ERR_ARG), "mem_unmap(%#x, %#x)", addr, size)
	}
	return s.Mem.MemUnmap(addr, size)
}

func (s *SimCpu) Start(begin, until uint64) error {
	return s.StartWithOptions(begin, until, nil)
}

// StartWithOptions performs the first fetch at begin, firing memory hooks,
// then fails with ERR_ARCH since nothing can be executed.
func (s *SimCpu) StartWithOptions(begin, until uint64, opts *cpu.StartOptions) error {
	atomic.StoreInt32(&s.stop, 0)
	ip := begin
	if s.cs != 0 {
		// real mode starts at begin - cs*16, like the engine does
		seg, err := s.RegRead(s.cs)
		if err != nil {
			return err
		}
		ip = begin - seg<<4
	}
	if err := s.RegWrite(s.pc, ip); err != nil {
		return err
	}
	if begin == until {
		return nil
	}
	s.OnBlock(begin, 0)
	if atomic.LoadInt32(&s.stop) != 0 {
		return nil
	}
	if _, err := s.ReadProt(begin, 1, cpu.PROT_EXEC); err != nil {
		if merr, ok := err.(*cpu.MemError); ok {
			return errors.Wrap(merr.Errno(), merr.Error())
		}
		return err
	}
	return errors.Wrap(cpu.Errno(cpu.ERR_ARCH), "sim backend has no instruction semantics")
}

func (s *SimCpu) Stop() error {
	atomic.StoreInt32(&s.stop, 1)
	return nil
}

func (s *SimCpu) Query(qtype int) (uint64, error) {
	switch qtype {
	case cpu.QUERY_MODE:
		return uint64(s.mode), nil
	case cpu.QUERY_PAGE_SIZE:
		return PageSize, nil
	}
	return 0, errors.Wrapf(cpu.Errno(cpu.ERR_ARG), "query(%d)", qtype)
}

func (s *SimCpu) Version() (int, int) {
	return cpu.API_MAJOR, cpu.API_MINOR
}

func (s *SimCpu) ArchSupported(arch int) bool {
	return arch == s.arch
}

func (s *SimCpu) Close() error {
	return nil
}
