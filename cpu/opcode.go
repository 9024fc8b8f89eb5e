package cpu

import (
	"fmt"
	"iter"
)

// Opcode is the basic instruction selector, bits 0-3 of an instruction word.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode,Extended,Register,Mode
const (
	OP_EXT = Opcode(0x0) // ext
	OP_SET = Opcode(0x1) // set
	OP_ADD = Opcode(0x2) // add
	OP_SUB = Opcode(0x3) // sub
	OP_MUL = Opcode(0x4) // mul
	OP_DIV = Opcode(0x5) // div
	OP_MOD = Opcode(0x6) // mod
	OP_SHL = Opcode(0x7) // shl
	OP_SHR = Opcode(0x8) // shr
	OP_AND = Opcode(0x9) // and
	OP_BOR = Opcode(0xa) // bor
	OP_XOR = Opcode(0xb) // xor
	OP_IFE = Opcode(0xc) // ife
	OP_IFN = Opcode(0xd) // ifn
	OP_IFG = Opcode(0xe) // ifg
	OP_IFB = Opcode(0xf) // ifb
)

// Conditional returns true for the IFx family.
func (op Opcode) Conditional() bool {
	return op >= OP_IFE && op <= OP_IFB
}

// Writes returns true if the opcode stores a result into operand a.
func (op Opcode) Writes() bool {
	return op >= OP_SET && op <= OP_XOR
}

// Extended is the selector carried in the a field of an OP_EXT word.
type Extended int

const (
	EXT_HALT = Extended(0x00) // halt
	EXT_JSR  = Extended(0x01) // jsr
)

// Valid returns true for the defined extended selectors.
func (ext Extended) Valid() bool {
	return ext == EXT_HALT || ext == EXT_JSR
}

// Register is a slot in the register file.
type Register int

const (
	REG_A  = Register(0)  // a
	REG_B  = Register(1)  // b
	REG_C  = Register(2)  // c
	REG_X  = Register(3)  // x
	REG_Y  = Register(4)  // y
	REG_Z  = Register(5)  // z
	REG_I  = Register(6)  // i
	REG_J  = Register(7)  // j
	REG_PC = Register(8)  // pc
	REG_SP = Register(9)  // sp
	REG_O  = Register(10) // o

	REGISTER_COUNT = 11
)

// General returns true for the eight general purpose registers.
func (reg Register) General() bool {
	return reg >= REG_A && reg <= REG_J
}

// Mode is the addressing mode selected by an operand field.
type Mode int

const (
	MODE_REGISTER = Mode(0)  // register
	MODE_INDIRECT = Mode(1)  // indirect
	MODE_INDEXED  = Mode(2)  // indexed
	MODE_POP      = Mode(3)  // pop
	MODE_PEEK     = Mode(4)  // peek
	MODE_PUSH     = Mode(5)  // push
	MODE_SP       = Mode(6)  // sp
	MODE_PC       = Mode(7)  // pc
	MODE_O        = Mode(8)  // o
	MODE_ABSOLUTE = Mode(9)  // absolute
	MODE_LITERAL  = Mode(10) // literal
	MODE_EMBEDDED = Mode(11) // embedded
)

// CodeArg is a 6-bit operand field.
type CodeArg uint8

const (
	ARG_REGISTER = CodeArg(0x00) // a..j
	ARG_INDIRECT = CodeArg(0x08) // [a]..[j]
	ARG_INDEXED  = CodeArg(0x10) // [next+a]..[next+j]
	ARG_POP      = CodeArg(0x18) // [sp++]
	ARG_PEEK     = CodeArg(0x19) // [sp]
	ARG_PUSH     = CodeArg(0x1a) // [--sp]
	ARG_SP       = CodeArg(0x1b)
	ARG_PC       = CodeArg(0x1c)
	ARG_O        = CodeArg(0x1d)
	ARG_ABSOLUTE = CodeArg(0x1e) // [next]
	ARG_LITERAL  = CodeArg(0x1f) // next
	ARG_EMBEDDED = CodeArg(0x20) // 0x00..0x1f

	ARG_MASK      = CodeArg(0x3f)
	EMBEDDED_MAX  = 0x1f
	LITERAL_LIMIT = EMBEDDED_MAX + 1
)

// ArgInfo describes one operand field value.
type ArgInfo struct {
	Mode     Mode
	Register Register // Register used by register, indirect and indexed forms.
	Words    int      // Number of words consumed from the instruction stream.
}

// argTable is the decode of every 6-bit operand field.
var argTable [64]ArgInfo

func init() {
	for n := range argTable {
		arg := CodeArg(n)
		var info ArgInfo
		switch {
		case arg < ARG_INDIRECT:
			info = ArgInfo{Mode: MODE_REGISTER, Register: Register(arg - ARG_REGISTER)}
		case arg < ARG_INDEXED:
			info = ArgInfo{Mode: MODE_INDIRECT, Register: Register(arg - ARG_INDIRECT)}
		case arg < ARG_POP:
			info = ArgInfo{Mode: MODE_INDEXED, Register: Register(arg - ARG_INDEXED), Words: 1}
		case arg == ARG_POP:
			info = ArgInfo{Mode: MODE_POP, Register: REG_SP}
		case arg == ARG_PEEK:
			info = ArgInfo{Mode: MODE_PEEK, Register: REG_SP}
		case arg == ARG_PUSH:
			info = ArgInfo{Mode: MODE_PUSH, Register: REG_SP}
		case arg == ARG_SP:
			info = ArgInfo{Mode: MODE_SP, Register: REG_SP}
		case arg == ARG_PC:
			info = ArgInfo{Mode: MODE_PC, Register: REG_PC}
		case arg == ARG_O:
			info = ArgInfo{Mode: MODE_O, Register: REG_O}
		case arg == ARG_ABSOLUTE:
			info = ArgInfo{Mode: MODE_ABSOLUTE, Words: 1}
		case arg == ARG_LITERAL:
			info = ArgInfo{Mode: MODE_LITERAL, Words: 1}
		default:
			info = ArgInfo{Mode: MODE_EMBEDDED}
		}
		argTable[n] = info
	}
}

// Info returns the decode of the operand field.
func (arg CodeArg) Info() ArgInfo {
	return argTable[arg&ARG_MASK]
}

// Words returns the number of instruction stream words the operand consumes.
func (arg CodeArg) Words() int {
	return arg.Info().Words
}

// Writable returns true if the operand can be a store destination.
func (arg CodeArg) Writable() bool {
	mode := arg.Info().Mode
	return mode != MODE_LITERAL && mode != MODE_EMBEDDED
}

// Code is an instruction word with the words that follow it.
type Code struct {
	Word       uint16
	Immediates []uint16
}

// MakeCode creates a basic two operand instruction.
func MakeCode(op Opcode, a, b CodeArg, imms ...uint16) Code {
	return Code{
		Word:       (uint16(b&ARG_MASK) << 10) | (uint16(a&ARG_MASK) << 4) | uint16(op&0xf),
		Immediates: imms,
	}
}

// MakeCodeExtended creates an extended single operand instruction.
func MakeCodeExtended(ext Extended, a CodeArg, imms ...uint16) Code {
	return Code{
		Word:       (uint16(a&ARG_MASK) << 10) | (uint16(ext&0x3f) << 4) | uint16(OP_EXT),
		Immediates: imms,
	}
}

// Opcode returns the basic opcode of the instruction word.
func (code Code) Opcode() Opcode {
	return Opcode(code.Word & 0xf)
}

// A returns the a operand field.
func (code Code) A() CodeArg {
	return CodeArg((code.Word >> 4) & 0x3f)
}

// B returns the b operand field.
func (code Code) B() CodeArg {
	return CodeArg((code.Word >> 10) & 0x3f)
}

// Extended returns the extended selector of an OP_EXT word.
func (code Code) Extended() Extended {
	return Extended(code.A())
}

// ImmediateNeed returns the number of words following the instruction word.
// The a field of an extended instruction is a selector and consumes nothing.
func (code Code) ImmediateNeed() (need int) {
	if code.Opcode() != OP_EXT {
		need += code.A().Words()
	}
	need += code.B().Words()
	return
}

// Len returns the encoded length of the instruction in words.
func (code Code) Len() int {
	return 1 + code.ImmediateNeed()
}

var opcodeCycles = [16]int{
	OP_SET: 1,
	OP_ADD: 2,
	OP_SUB: 2,
	OP_MUL: 2,
	OP_DIV: 3,
	OP_MOD: 3,
	OP_SHL: 2,
	OP_SHR: 2,
	OP_AND: 1,
	OP_BOR: 1,
	OP_XOR: 1,
	OP_IFE: 2,
	OP_IFN: 2,
	OP_IFG: 2,
	OP_IFB: 2,
}

var extendedCycles = map[Extended]int{
	EXT_HALT: 1,
	EXT_JSR:  2,
}

// Cycles returns the base cycle cost of the instruction.
// Unknown extended selectors cost nothing.
func (code Code) Cycles() int {
	op := code.Opcode()
	if op == OP_EXT {
		return extendedCycles[code.Extended()]
	}
	return opcodeCycles[op]
}

// immediates returns the words belonging to the a and b fields.
func (code Code) immediates() (a, b uint16) {
	imms := code.Immediates
	if code.Opcode() != OP_EXT && code.A().Words() > 0 {
		if len(imms) > 0 {
			a = imms[0]
			imms = imms[1:]
		}
	}
	if code.B().Words() > 0 && len(imms) > 0 {
		b = imms[0]
	}
	return
}

// argString renders an operand field with its following word.
func argString(arg CodeArg, next uint16) string {
	info := arg.Info()
	switch info.Mode {
	case MODE_REGISTER:
		return info.Register.String()
	case MODE_INDIRECT:
		return "[" + info.Register.String() + "]"
	case MODE_INDEXED:
		return fmt.Sprintf("[0x%x+%v]", next, info.Register)
	case MODE_ABSOLUTE:
		return fmt.Sprintf("[0x%x]", next)
	case MODE_LITERAL:
		return fmt.Sprintf("0x%x", next)
	case MODE_EMBEDDED:
		return fmt.Sprintf("0x%x", uint16(arg-ARG_EMBEDDED))
	default:
		return info.Mode.String()
	}
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	a, b := code.immediates()

	op := code.Opcode()
	if op != OP_EXT {
		return fmt.Sprintf("%v %v, %v", op, argString(code.A(), a), argString(code.B(), b))
	}

	switch ext := code.Extended(); ext {
	case EXT_HALT:
		return ext.String()
	case EXT_JSR:
		return fmt.Sprintf("%v %v", ext, argString(code.B(), b))
	default:
		return fmt.Sprintf("dat 0x%04x", code.Word)
	}
}

// Operand is an assembler operand: the field value, the word that follows
// the instruction when the field needs one, and an optional label whose
// address replaces that word at dump time.
type Operand struct {
	Arg   CodeArg
	Word  uint16
	Label string

	err error
}

// Err returns the error from building the operand, if any.
func (op Operand) Err() error {
	return op.err
}

// String renders the operand the way the disassembler lists it, with
// labels by name.
func (op Operand) String() string {
	switch {
	case op.err != nil:
		return "<" + op.err.Error() + ">"
	case len(op.Label) == 0:
		return argString(op.Arg, op.Word)
	case op.Arg == ARG_ABSOLUTE:
		return "[" + op.Label + "]"
	default:
		return op.Label
	}
}

// Reg is register direct.
func Reg(reg Register) Operand {
	switch {
	case reg.General():
		return Operand{Arg: ARG_REGISTER + CodeArg(reg)}
	case reg == REG_SP:
		return Operand{Arg: ARG_SP}
	case reg == REG_PC:
		return Operand{Arg: ARG_PC}
	case reg == REG_O:
		return Operand{Arg: ARG_O}
	}
	return Operand{err: ErrRegisterInvalid}
}

// Mem is [register].
func Mem(reg Register) Operand {
	if !reg.General() {
		return Operand{err: ErrRegisterInvalid}
	}
	return Operand{Arg: ARG_INDIRECT + CodeArg(reg)}
}

// MemOffset is [offset + register].
func MemOffset(reg Register, offset uint16) Operand {
	if !reg.General() {
		return Operand{err: ErrRegisterInvalid}
	}
	return Operand{Arg: ARG_INDEXED + CodeArg(reg), Word: offset}
}

// MemAddr is [address].
func MemAddr(addr uint16) Operand {
	return Operand{Arg: ARG_ABSOLUTE, Word: addr}
}

// Lit is a literal. Values 0..0x1f are embedded in the operand field,
// anything else is truncated to 16 bits and follows the instruction.
func Lit(value int) Operand {
	if value >= 0 && value < LITERAL_LIMIT {
		return Operand{Arg: ARG_EMBEDDED + CodeArg(value)}
	}
	return Operand{Arg: ARG_LITERAL, Word: uint16(value)}
}

// Pop is [sp++].
func Pop() Operand { return Operand{Arg: ARG_POP} }

// Peek is [sp].
func Peek() Operand { return Operand{Arg: ARG_PEEK} }

// Push is [--sp].
func Push() Operand { return Operand{Arg: ARG_PUSH} }

// SP is the stack pointer.
func SP() Operand { return Operand{Arg: ARG_SP} }

// PC is the program counter.
func PC() Operand { return Operand{Arg: ARG_PC} }

// O is the overflow register.
func O() Operand { return Operand{Arg: ARG_O} }

// RegisterOperands yields the register direct operands by name.
func RegisterOperands() iter.Seq2[string, Operand] {
	return func(yield func(string, Operand) bool) {
		for reg := REG_A; reg < REGISTER_COUNT; reg++ {
			if !yield(reg.String(), Reg(reg)) {
				return
			}
		}
	}
}

// StackOperands yields the stack operands by name.
func StackOperands() iter.Seq2[string, Operand] {
	return func(yield func(string, Operand) bool) {
		for _, op := range []Operand{Pop(), Peek(), Push()} {
			if !yield(op.Arg.Info().Mode.String(), op) {
				return
			}
		}
	}
}

// RegisterByName finds a register by its lowercase name.
func RegisterByName(name string) (reg Register, ok bool) {
	for reg = REG_A; reg < REGISTER_COUNT; reg++ {
		if reg.String() == name {
			ok = true
			return
		}
	}
	return
}
