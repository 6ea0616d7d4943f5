package models

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/lunixbochs/ucjs/go/models/cpu"
)

// Register is the display model behind the register pane.
type Register struct {
	RegSpec
	Raw     uint64
	Value   string
	Changed bool
}

func NewRegisters(specs []RegSpec) []*Register {
	ret := make([]*Register, len(specs))
	for i, spec := range specs {
		ret[i] = &Register{RegSpec: spec, Value: "-"}
	}
	return ret
}

// Update reads the register and reformats Value according to its type.
func (r *Register) Update(c cpu.Cpu) error {
	var value string
	if r.Type == V128 {
		wide, ok := c.(cpu.WideRegReader)
		if !ok {
			r.Changed = r.Value != "-"
			r.Value = "-"
			return nil
		}
		buf, err := wide.RegReadBytes(r.Enum, r.Type.Size())
		if err != nil {
			return errors.Wrapf(err, "reading %s", r.Name)
		}
		value = FormatVector(buf)
	} else {
		val, err := c.RegRead(r.Enum)
		if err != nil {
			return errors.Wrapf(err, "reading %s", r.Name)
		}
		r.Raw = val
		value = FormatReg(r.Type, val)
	}
	r.Changed = value != r.Value
	r.Value = value
	return nil
}

// FormatReg formats a raw register value up to 64 bits wide.
func FormatReg(t RegType, val uint64) string {
	switch t {
	case I8:
		return ToHex(val&0xff, 2)
	case I16:
		return ToHex(val&0xffff, 4)
	case I32:
		return ToHex(val&0xffffffff, 8)
	case I64:
		return ToHex(val, 16)
	case F32:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(val))), 'g', -1, 32)
	case F64:
		return strconv.FormatFloat(math.Float64frombits(val), 'g', -1, 64)
	}
	return ToHex(val, 1)
}

// FormatVector renders a little-endian register image as one big-endian hex number.
func FormatVector(buf []byte) string {
	if len(buf) == 16 {
		lo := binary.LittleEndian.Uint64(buf[:8])
		hi := binary.LittleEndian.Uint64(buf[8:])
		return ToHex(hi, 16) + ToHex(lo, 16)
	}
	out := make([]byte, 0, len(buf)*2)
	for i := len(buf) - 1; i >= 0; i-- {
		out = append(out, ToHex(uint64(buf[i]), 2)...)
	}
	return string(out)
}
