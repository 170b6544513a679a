package script

import (
	"github.com/hexaflex/m8/arch"
	"github.com/hexaflex/m8/image"
	"go.starlark.net/starlark"
)

type builtinFunc func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error)

// predeclared returns the script environment bound to b.
func (b *builder) predeclared() starlark.StringDict {
	env := starlark.StringDict{
		"HL": pointer{},
	}

	for i := 0; i < arch.RegisterCount; i++ {
		env[arch.RegisterName(i)] = Register(i)
	}

	fns := map[string]builtinFunc{
		"mw":         b.twoOperand(arch.MW),
		"lw":         b.lw,
		"sw":         b.sw,
		"push":       b.oneOperand(arch.PUSH),
		"pop":        b.pop,
		"lda":        b.lda,
		"jnz":        b.oneOperand(arch.JNZ),
		"inb":        b.noOperand(arch.INB),
		"outb":       b.noOperand(arch.OUTB),
		"add":        b.twoOperand(arch.ADD),
		"adc":        b.twoOperand(arch.ADC),
		"and_":       b.twoOperand(arch.AND),
		"or_":        b.twoOperand(arch.OR),
		"nor":        b.twoOperand(arch.NOR),
		"cmp":        b.twoOperand(arch.CMP),
		"sbb":        b.twoOperand(arch.SBB),
		"db":         b.db,
		"org":        b.org,
		"label":      b.defineLabel,
		"addr":       b.addr,
		"here":       b.here,
		"entry":      b.setEntry,
		"breakpoint": b.breakpoint,
		"hi":         hi,
		"lo":         lo,
	}

	for name, fn := range fns {
		env[name] = starlark.NewBuiltin(name, fn)
	}
	return env
}

// twoOperand encodes MW and the ALU instructions: a destination
// register and a source register or immediate byte.
func (b *builder) twoOperand(opcode int) builtinFunc {
	return func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var dst Register
		var src starlark.Value
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &dst, &src); err != nil {
			return nil, err
		}

		if r, ok := src.(Register); ok {
			return starlark.None, b.emit(thread, true, arch.Encode(opcode, true, int(dst)), byte(r))
		}

		v, err := byteValue(src)
		if err != nil {
			return nil, newError(thread, err.Error())
		}
		return starlark.None, b.emit(thread, true, arch.Encode(opcode, false, int(dst)), v)
	}
}

// oneOperand encodes PUSH and JNZ: a register or an immediate byte.
func (b *builder) oneOperand(opcode int) builtinFunc {
	return func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var src starlark.Value
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &src); err != nil {
			return nil, err
		}

		if r, ok := src.(Register); ok {
			return starlark.None, b.emit(thread, true, arch.Encode(opcode, true, int(r)))
		}

		v, err := byteValue(src)
		if err != nil {
			return nil, newError(thread, err.Error())
		}
		return starlark.None, b.emit(thread, true, arch.Encode(opcode, false, 0), v)
	}
}

// noOperand encodes INB and OUTB.
func (b *builder) noOperand(opcode int) builtinFunc {
	return func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		return starlark.None, b.emit(thread, true, arch.Encode(opcode, false, 0))
	}
}

// memoryOperand encodes LW and SW against either HL or an absolute address.
func (b *builder) memoryOperand(thread *starlark.Thread, opcode int, reg Register, mem starlark.Value) error {
	if _, ok := mem.(pointer); ok {
		return b.emit(thread, true, arch.Encode(opcode, true, int(reg)))
	}

	addr, err := addressValue(mem)
	if err != nil {
		return newError(thread, err.Error())
	}
	return b.emit(thread, true, arch.Encode(opcode, false, int(reg)), byte(addr>>8), byte(addr))
}

func (b *builder) lw(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var dst Register
	var src starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &dst, &src); err != nil {
		return nil, err
	}
	return starlark.None, b.memoryOperand(thread, arch.LW, dst, src)
}

func (b *builder) sw(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var dst starlark.Value
	var src Register
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &dst, &src); err != nil {
		return nil, err
	}
	return starlark.None, b.memoryOperand(thread, arch.SW, src, dst)
}

func (b *builder) pop(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var dst Register
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &dst); err != nil {
		return nil, err
	}
	return starlark.None, b.emit(thread, true, arch.Encode(arch.POP, false, int(dst)))
}

func (b *builder) lda(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}

	addr, err := addressValue(v)
	if err != nil {
		return nil, newError(thread, err.Error())
	}
	return starlark.None, b.emit(thread, true, arch.Encode(arch.LDA, false, 0), byte(addr>>8), byte(addr))
}

// db emits raw bytes. Arguments are integers or strings.
func (b *builder) db(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, newError(thread, f("%s: unexpected keyword arguments", fn.Name()))
	}

	var data []byte
	for _, arg := range args {
		if s, ok := starlark.AsString(arg); ok {
			data = append(data, s...)
			continue
		}

		v, err := byteValue(arg)
		if err != nil {
			return nil, newError(thread, err.Error())
		}
		data = append(data, v)
	}

	return starlark.None, b.emit(thread, false, data...)
}

func (b *builder) org(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}

	addr, err := addressValue(v)
	if err != nil {
		return nil, newError(thread, err.Error())
	}
	b.address = int(addr)
	return starlark.None, nil
}

// defineLabel implements label(name). It returns the label's address.
func (b *builder) defineLabel(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	if err := b.label(thread, name); err != nil {
		return nil, err
	}
	return starlark.MakeInt(b.address), nil
}

func (b *builder) addr(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}

	addr, err := b.resolve(thread, name)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(addr)), nil
}

func (b *builder) here(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.MakeInt(b.address), nil
}

func (b *builder) setEntry(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}

	addr, err := addressValue(v)
	if err != nil {
		return nil, newError(thread, err.Error())
	}
	b.entry = int(addr)
	return starlark.None, nil
}

// breakpoint flags the next emitted instruction as a breakpoint.
func (b *builder) breakpoint(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	b.flags |= image.Breakpoint
	return starlark.None, nil
}

func hi(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v int
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}
	return starlark.MakeInt((v >> 8) & 0xff), nil
}

func lo(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v int
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}
	return starlark.MakeInt(v & 0xff), nil
}
