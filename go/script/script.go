// Package script exposes a Machine to starlark as the "uc" module.
package script

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"github.com/lunixbochs/ucjs/go/models"
	"github.com/lunixbochs/ucjs/go/models/cpu"
)

type binding struct {
	m models.Machine
}

// Module builds the uc module: every ABI constant plus the machine calls.
func Module(m models.Machine) *starlarkstruct.Module {
	b := &binding{m}
	members := starlark.StringDict{}
	for _, g := range cpu.ConstTable() {
		for _, c := range g.Consts {
			members[c.Name] = starlark.MakeInt(c.Value)
		}
	}
	for name, fn := range b.exports() {
		members[name] = starlark.NewBuiltin(name, fn)
	}
	return &starlarkstruct.Module{Name: "uc", Members: members}
}

type builtin = func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error)

func (b *binding) exports() map[string]builtin {
	return map[string]builtin{
		"reg_read":  b.regRead,
		"reg_write": b.regWrite,
		"regs":      b.regs,
		"mem_read":  b.memRead,
		"mem_write": b.memWrite,
		"mem_map":   b.memMap,
		"asm":       b.asm,
		"dis":       b.dis,
		"run":       b.run,
		"step":      b.step,
	}
}

// Exec runs src with uc predeclared. print() goes to the machine's output.
// Engine failures surface as *starlark.EvalError wrapping the original error.
func Exec(m models.Machine, filename string, src interface{}) (starlark.StringDict, error) {
	thread := &starlark.Thread{
		Name:  filename,
		Print: func(_ *starlark.Thread, msg string) { m.Println(msg) },
	}
	predeclared := starlark.StringDict{"uc": Module(m)}
	return starlark.ExecFileOptions(&syntax.FileOptions{}, thread, filename, src, predeclared)
}

func toUint(fn string, v starlark.Int) (uint64, error) {
	if n, ok := v.Uint64(); ok {
		return n, nil
	}
	if n, ok := v.Int64(); ok {
		return uint64(n), nil
	}
	return 0, fmt.Errorf("%s: %v out of range", fn, v)
}

// reg resolves a register name or enum.
func (b *binding) reg(fn string, v starlark.Value) (models.RegSpec, error) {
	switch r := v.(type) {
	case starlark.String:
		spec, ok := b.m.Arch().Reg(string(r))
		if !ok {
			return spec, fmt.Errorf("%s: unknown register %q", fn, string(r))
		}
		return spec, nil
	case starlark.Int:
		enum, ok := r.Int64()
		if !ok {
			break
		}
		for _, spec := range b.m.Arch().Regs {
			if spec.Enum == int(enum) {
				return spec, nil
			}
		}
		return models.RegSpec{Name: r.String(), Enum: int(enum), Type: models.I64}, nil
	}
	return models.RegSpec{}, fmt.Errorf("%s: want register name or number, got %s", fn, v.Type())
}

func (b *binding) regRead(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	spec, err := b.reg(fn.Name(), name)
	if err != nil {
		return nil, err
	}
	val, err := b.m.RegRead(spec.Enum)
	if err != nil {
		return nil, err
	}
	return starlark.MakeUint64(val), nil
}

func (b *binding) regWrite(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name starlark.Value
	var val starlark.Int
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &name, &val); err != nil {
		return nil, err
	}
	spec, err := b.reg(fn.Name(), name)
	if err != nil {
		return nil, err
	}
	n, err := toUint(fn.Name(), val)
	if err != nil {
		return nil, err
	}
	return starlark.None, b.m.RegWrite(spec.Enum, n)
}

func (b *binding) regs(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	vals, err := b.m.RegDump()
	if err != nil {
		return nil, err
	}
	d := starlark.NewDict(len(vals))
	for _, r := range vals {
		if err := d.SetKey(starlark.String(r.Name), starlark.MakeUint64(r.Val)); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (b *binding) memRead(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr, size starlark.Int
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "addr", &addr, "size", &size); err != nil {
		return nil, err
	}
	a, err := toUint(fn.Name(), addr)
	if err != nil {
		return nil, err
	}
	n, err := toUint(fn.Name(), size)
	if err != nil {
		return nil, err
	}
	mem, err := b.m.MemRead(a, n)
	if err != nil {
		return nil, err
	}
	return starlark.Bytes(mem), nil
}

func (b *binding) memWrite(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr starlark.Int
	var data starlark.Value
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "addr", &addr, "data", &data); err != nil {
		return nil, err
	}
	a, err := toUint(fn.Name(), addr)
	if err != nil {
		return nil, err
	}
	var p []byte
	switch d := data.(type) {
	case starlark.Bytes:
		p = []byte(d)
	case starlark.String:
		p = []byte(d)
	default:
		return nil, fmt.Errorf("%s: want bytes or string, got %s", fn.Name(), data.Type())
	}
	return starlark.None, b.m.MemWrite(a, p)
}

func (b *binding) memMap(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr, size starlark.Int
	prot := cpu.PROT_ALL
	desc := "script"
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "addr", &addr, "size", &size, "prot?", &prot, "desc?", &desc); err != nil {
		return nil, err
	}
	a, err := toUint(fn.Name(), addr)
	if err != nil {
		return nil, err
	}
	n, err := toUint(fn.Name(), size)
	if err != nil {
		return nil, err
	}
	mm, err := b.m.Mmap(a, n, prot, desc)
	if err != nil {
		return nil, err
	}
	return starlark.MakeUint64(mm.Addr), nil
}

func (b *binding) pc() (starlark.Int, error) {
	pc, err := b.m.PC()
	return starlark.MakeUint64(pc), err
}

func (b *binding) asm(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text string
	addr, err := b.pc()
	if err != nil {
		return nil, err
	}
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "text", &text, "addr?", &addr); err != nil {
		return nil, err
	}
	a, err := toUint(fn.Name(), addr)
	if err != nil {
		return nil, err
	}
	code, err := b.m.Assemble(text, a)
	if err != nil {
		return nil, err
	}
	return starlark.Bytes(code), nil
}

func (b *binding) dis(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr, size starlark.Int
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "addr", &addr, "size", &size); err != nil {
		return nil, err
	}
	a, err := toUint(fn.Name(), addr)
	if err != nil {
		return nil, err
	}
	n, err := toUint(fn.Name(), size)
	if err != nil {
		return nil, err
	}
	dis, err := b.m.Disassemble(a, n)
	if err != nil {
		return nil, err
	}
	lines := make([]starlark.Value, len(dis))
	for i, ins := range dis {
		lines[i] = starlark.String(fmt.Sprintf("0x%x: %s", ins.Addr(), strings.TrimSpace(ins.Mnemonic()+" "+ins.OpStr())))
	}
	return starlark.NewList(lines), nil
}

func (b *binding) run(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	begin, err := b.pc()
	if err != nil {
		return nil, err
	}
	var until starlark.Int
	haveUntil := false
	var untilVal starlark.Value = starlark.None
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "begin?", &begin, "until?", &untilVal); err != nil {
		return nil, err
	}
	if u, ok := untilVal.(starlark.Int); ok {
		until, haveUntil = u, true
	} else if untilVal != starlark.None {
		return nil, fmt.Errorf("%s: until must be an int", fn.Name())
	}
	start, err := toUint(fn.Name(), begin)
	if err != nil {
		return nil, err
	}
	var end uint64
	if haveUntil {
		if end, err = toUint(fn.Name(), until); err != nil {
			return nil, err
		}
	} else if end, err = b.m.MappingEnd(start); err != nil {
		return nil, err
	}
	return starlark.None, b.m.Run(start, end)
}

func (b *binding) step(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.None, b.m.Step()
}
