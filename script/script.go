// Package script builds DCPU-16 programs from Starlark build scripts.
//
// A build script drives an assembler through predeclared functions:
//
//	set(a, 0x30)
//	mark("loop")
//	sub(mem(0x2000, i), 1)
//	ifn(i, 0)
//	set(pc, label("loop"))
//	jsr(label("done"))
//	halt()
//
// Registers and stack operands (a, pc, pop, ...) are predeclared in lower
// and upper case. Plain ints are literals.
package script

import (
	"log"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/dcpu/cpu"
	"github.com/ezrec/dcpu/internal"
)

// builder binds one assembler to the script globals.
type builder struct {
	asm *cpu.Assembler
}

var opcodeNames = map[string]cpu.Opcode{
	"set":  cpu.OP_SET,
	"add":  cpu.OP_ADD,
	"sub":  cpu.OP_SUB,
	"mul":  cpu.OP_MUL,
	"div":  cpu.OP_DIV,
	"mod":  cpu.OP_MOD,
	"shl":  cpu.OP_SHL,
	"shr":  cpu.OP_SHR,
	"and_": cpu.OP_AND,
	"bor":  cpu.OP_BOR,
	"xor":  cpu.OP_XOR,
	"ife":  cpu.OP_IFE,
	"ifn":  cpu.OP_IFN,
	"ifg":  cpu.OP_IFG,
	"ifb":  cpu.OP_IFB,
}

// Predeclared returns the script globals bound to asm.
func Predeclared(asm *cpu.Assembler) (pred starlark.StringDict) {
	bld := &builder{asm: asm}

	pred = starlark.StringDict{}
	operands := internal.IterSeq2Concat(cpu.RegisterOperands(), cpu.StackOperands())
	for name, op := range internal.IterSeq2Rekey(operands, strings.ToLower, strings.ToUpper) {
		pred[name] = operand{op}
	}

	for name, op := range opcodeNames {
		pred[name] = starlark.NewBuiltin(name, bld.emitter(op))
	}

	pred["lit"] = starlark.NewBuiltin("lit", bld.lit)
	pred["mem"] = starlark.NewBuiltin("mem", bld.mem)
	pred["label"] = starlark.NewBuiltin("label", bld.label)
	pred["label_mem"] = starlark.NewBuiltin("label_mem", bld.label)
	pred["jsr"] = starlark.NewBuiltin("jsr", bld.jsr)
	pred["halt"] = starlark.NewBuiltin("halt", bld.halt)
	pred["dat"] = starlark.NewBuiltin("dat", bld.dat)
	pred["mark"] = starlark.NewBuiltin("mark", bld.mark)
	pred["here"] = starlark.NewBuiltin("here", bld.here)

	return
}

// Compiler runs build scripts.
type Compiler struct {
	Verbose bool // If set, the assembler logs each emitted instruction.
}

// Compile runs a build script with the default Compiler.
func Compile(filename string, src any) (prog *cpu.Program, err error) {
	return (&Compiler{}).Compile(filename, src)
}

// Compile runs a build script, and returns the assembled program.
// src may be a string, a []byte or an io.Reader, or nil to read filename.
func (cc *Compiler) Compile(filename string, src any) (prog *cpu.Program, err error) {
	defer func() {
		if err != nil {
			err = &ErrScript{Filename: filename, Err: err}
		}
	}()

	asm := cpu.NewAssembler()
	asm.Verbose = cc.Verbose

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", filename, msg)
		},
	}
	opts := syntax.FileOptions{}

	_, err = starlark.ExecFileOptions(&opts, thread, filename, src, Predeclared(asm))
	if err != nil {
		return
	}

	prog, err = asm.Program()
	return
}

// check turns a failed assembler step into a script error.
func (bld *builder) check() (starlark.Value, error) {
	if err := bld.asm.Err(); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (bld *builder) emitter(op cpu.Opcode) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var a, b starlark.Value
		err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &a, &b)
		if err != nil {
			return nil, err
		}

		op_a, err := toOperand(fn.Name(), a)
		if err != nil {
			return nil, err
		}
		op_b, err := toOperand(fn.Name(), b)
		if err != nil {
			return nil, err
		}

		bld.asm.Emit(op, op_a, op_b)
		return bld.check()
	}
}

func (bld *builder) lit(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value int
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &value)
	if err != nil {
		return nil, err
	}

	return operand{cpu.Lit(value)}, nil
}

// mem builds [r], [offset+r], [address] or [label].
func (bld *builder) mem(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var where starlark.Value
	var offset starlark.Value = starlark.None
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &where, &offset)
	if err != nil {
		return nil, err
	}

	// mem(0x1000, i) reads the same as mem(i, 0x1000).
	if _, ok := where.(starlark.Int); ok && offset != starlark.None {
		where, offset = offset, where
	}

	switch where := where.(type) {
	case starlark.Int:
		if offset != starlark.None {
			return nil, &ErrArgument{Func: fn.Name(), Got: offset.String()}
		}
		addr, err := starlark.AsInt32(where)
		if err != nil {
			return nil, err
		}
		return operand{cpu.MemAddr(uint16(addr))}, nil
	case operand:
		if reg, ok := where.register(); ok {
			if offset == starlark.None {
				return operand{cpu.Mem(reg)}, nil
			}
			off, err := starlark.AsInt32(offset)
			if err != nil {
				return nil, err
			}
			return operand{cpu.MemOffset(reg, uint16(off))}, nil
		}
		if len(where.Label) != 0 && where.Arg == cpu.ARG_LITERAL && offset == starlark.None {
			return operand{bld.asm.LabelMem(where.Label)}, nil
		}
		return nil, &ErrArgument{Func: fn.Name(), Got: where.String()}
	}

	return nil, &ErrArgument{Func: fn.Name(), Got: where.Type()}
}

// label builds a label operand; label_mem its memory form.
func (bld *builder) label(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name)
	if err != nil {
		return nil, err
	}

	if fn.Name() == "label_mem" {
		return operand{bld.asm.LabelMem(name)}, nil
	}
	return operand{bld.asm.Label(name)}, nil
}

func (bld *builder) jsr(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var target starlark.Value
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &target)
	if err != nil {
		return nil, err
	}

	op, err := toOperand(fn.Name(), target)
	if err != nil {
		return nil, err
	}

	bld.asm.EmitExtended(cpu.EXT_JSR, op)
	return bld.check()
}

func (bld *builder) halt(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	bld.asm.Halt()
	return bld.check()
}

// dat emits raw words. A string emits one word per byte.
func (bld *builder) dat(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) != 0 {
		return nil, &ErrArgument{Func: fn.Name(), Got: "keyword"}
	}

	var ws []uint16
	for _, arg := range args {
		switch arg := arg.(type) {
		case starlark.Int:
			value, err := starlark.AsInt32(arg)
			if err != nil {
				return nil, err
			}
			ws = append(ws, uint16(value))
		case starlark.String:
			for _, c := range []byte(string(arg)) {
				ws = append(ws, uint16(c))
			}
		default:
			return nil, &ErrArgument{Func: fn.Name(), Got: arg.Type()}
		}
	}

	bld.asm.Val(ws...)
	return bld.check()
}

func (bld *builder) mark(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name)
	if err != nil {
		return nil, err
	}

	bld.asm.MarkLabel(name)
	return bld.check()
}

func (bld *builder) here(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return starlark.MakeInt(bld.asm.Here()), nil
}
