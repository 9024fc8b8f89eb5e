package script

import (
	"go.starlark.net/starlark"

	"github.com/ezrec/dcpu/cpu"
)

// operand wraps a cpu.Operand as an immutable Starlark value.
type operand struct {
	cpu.Operand
}

var _ starlark.Value = operand{}

func (op operand) String() string { return op.Operand.String() }

func (op operand) Type() string { return "operand" }

func (op operand) Freeze() {}

func (op operand) Truth() starlark.Bool { return starlark.True }

func (op operand) Hash() (uint32, error) {
	return starlark.String(op.String()).Hash()
}

// register recovers the register of a register direct operand.
func (op operand) register() (reg cpu.Register, ok bool) {
	if len(op.Label) != 0 || op.Err() != nil {
		return
	}

	info := op.Arg.Info()
	switch info.Mode {
	case cpu.MODE_REGISTER:
		return info.Register, true
	case cpu.MODE_SP:
		return cpu.REG_SP, true
	case cpu.MODE_PC:
		return cpu.REG_PC, true
	case cpu.MODE_O:
		return cpu.REG_O, true
	}

	return
}

// toOperand accepts an operand, or an int as a literal.
func toOperand(fn string, v starlark.Value) (op cpu.Operand, err error) {
	switch v := v.(type) {
	case operand:
		op = v.Operand
	case starlark.Int:
		var value int
		value, err = starlark.AsInt32(v)
		if err != nil {
			err = &ErrArgument{Func: fn, Got: v.String()}
			return
		}
		op = cpu.Lit(value)
	default:
		err = &ErrArgument{Func: fn, Got: v.Type()}
	}

	return
}
