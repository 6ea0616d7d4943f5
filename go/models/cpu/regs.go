package cpu

import (
	"github.com/pkg/errors"
)

// Regs is a register file for engines without one of their own.
// Values are truncated to the register width on write.
type Regs struct {
	mask uint64
	vals map[int]uint64
}

// regsContext is the ContextSave snapshot of a Regs.
type regsContext map[int]uint64

func NewRegs(bits uint, enums []int) *Regs {
	r := &Regs{
		mask: ^uint64(0) >> (64 - bits),
		vals: make(map[int]uint64, len(enums)),
	}
	for _, e := range enums {
		r.vals[e] = 0
	}
	return r
}

func badReg(enum int) error {
	return errors.Wrapf(Errno(ERR_ARG), "invalid register %d", enum)
}

func (r *Regs) RegRead(enum int) (uint64, error) {
	val, ok := r.vals[enum]
	if !ok {
		return 0, badReg(enum)
	}
	return val, nil
}

func (r *Regs) RegWrite(enum int, val uint64) error {
	if _, ok := r.vals[enum]; !ok {
		return badReg(enum)
	}
	r.vals[enum] = val & r.mask
	return nil
}

func (r *Regs) ContextSave(reuse interface{}) (interface{}, error) {
	ctx := make(regsContext, len(r.vals))
	if reuse != nil {
		var ok bool
		if ctx, ok = reuse.(regsContext); !ok {
			return nil, errors.Wrapf(Errno(ERR_ARG), "bad context type %T", reuse)
		}
	}
	for k, v := range r.vals {
		ctx[k] = v
	}
	return ctx, nil
}

func (r *Regs) ContextRestore(saved interface{}) error {
	ctx, ok := saved.(regsContext)
	if !ok {
		return errors.Wrapf(Errno(ERR_ARG), "bad context type %T", saved)
	}
	for k, v := range ctx {
		r.vals[k] = v
	}
	return nil
}
