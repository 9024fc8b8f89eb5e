package cpu

import (
	"errors"

	"github.com/ezrec/dcpu/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted = errors.New(f("halted"))
	ErrLimit  = errors.New(f("step limit reached"))

	// Instruction decode errors
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrExtendedInvalid = errors.New(f("extended opcode invalid"))
	ErrTruncated       = errors.New(f("instruction truncated"))

	// Assembler errors
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrExtendedOnly    = errors.New(f("extended opcode needs EmitExtended"))
	ErrDumped          = errors.New(f("assembler already dumped"))
)

// ErrLabelMissing is a label that was referenced but never marked.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrOpcode locates an instruction that could not be decoded.
type ErrOpcode struct {
	Address uint16
	Code    Code
	Err     error
}

func (eo *ErrOpcode) Error() string {
	return f("bad opcode 0x%04x at 0x%04x: %v", eo.Code.Word, eo.Address, eo.Err)
}

func (eo *ErrOpcode) Unwrap() error {
	return eo.Err
}
