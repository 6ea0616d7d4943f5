package cpu

import (
	"github.com/pkg/errors"
)

type Hook interface{}

// Region is one entry of uc_mem_regions(). End is inclusive.
type Region struct {
	Begin, End uint64
	Prot       int
}

func (r *Region) Size() uint64 {
	return r.End - r.Begin + 1
}

// StartOptions mirror the timeout (microseconds) and count arguments of uc_emu_start().
// Zero means no limit.
type StartOptions struct {
	Timeout uint64
	Count   uint64
}

// This interface abstracts the engine calls exported by every backend.
type Cpu interface {
	// memory mapping
	MemMapProt(addr, size uint64, prot int) error
	MemProt(addr, size uint64, prot int) error
	MemUnmap(addr, size uint64) error
	MemRegions() ([]*Region, error)

	// memory IO
	MemRead(addr, size uint64) ([]byte, error)
	MemReadInto(p []byte, addr uint64) error
	MemWrite(addr uint64, p []byte) error

	// register IO
	RegRead(reg int) (uint64, error)
	RegWrite(reg int, val uint64) error

	// execution
	Start(begin, until uint64) error
	StartWithOptions(begin, until uint64, opts *StartOptions) error
	Stop() error

	// hooks
	HookAdd(htype int, cb interface{}, begin, end uint64, extra ...int) (Hook, error)
	HookDel(hook Hook) error

	// uc_query()
	Query(qtype int) (uint64, error)

	// save/restore entire CPU state
	ContextSave(reuse interface{}) (interface{}, error)
	ContextRestore(ctx interface{}) error

	// cleanup
	Close() error
}

// Builder opens a new engine instance.
type Builder interface {
	New() (Cpu, error)
}

// Versioner exposes uc_version() and uc_arch_supported().
type Versioner interface {
	Version() (major, minor int)
	ArchSupported(arch int) bool
}

// WideRegReader is implemented by backends able to read registers wider than 64 bits.
type WideRegReader interface {
	RegReadBytes(reg int, size int) ([]byte, error)
}

// RegBatcher is implemented by backends with native uc_reg_read_batch()
// and uc_reg_write_batch().
type RegBatcher interface {
	RegReadBatch(regs []int) ([]uint64, error)
	RegWriteBatch(regs []int, vals []uint64) error
}

// RegReadBatch reads several registers in one engine call when the backend
// supports it, otherwise one at a time, stopping at the first failure.
func RegReadBatch(c Cpu, regs []int) ([]uint64, error) {
	if b, ok := c.(RegBatcher); ok {
		return b.RegReadBatch(regs)
	}
	vals := make([]uint64, len(regs))
	for i, enum := range regs {
		val, err := c.RegRead(enum)
		if err != nil {
			return nil, err
		}
		vals[i] = val
	}
	return vals, nil
}

// RegWriteBatch writes registers in order. regs and vals must be the same length.
func RegWriteBatch(c Cpu, regs []int, vals []uint64) error {
	if len(regs) != len(vals) {
		return errors.Wrapf(Errno(ERR_ARG), "reg_write_batch: %d registers, %d values", len(regs), len(vals))
	}
	if b, ok := c.(RegBatcher); ok {
		return b.RegWriteBatch(regs, vals)
	}
	for i, enum := range regs {
		if err := c.RegWrite(enum, vals[i]); err != nil {
			return err
		}
	}
	return nil
}
