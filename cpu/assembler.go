// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"log"
	"maps"
	"slices"

	"github.com/ezrec/dcpu/words"
)

const (
	LABEL_PLACEHOLDER = 0xdead // Word left in place of an unresolved label.
)

// Label is a named address, and the buffer slots waiting for it.
type Label struct {
	Name   string // Name of the label.
	Target int    // Address marked for the label.
	Marked bool   // Set once the label has been marked.
	Refs   []int  // Buffer indexes of placeholder words.
}

// Assembler is a programmatic assembler for the DCPU-16.
//
// Errors are sticky: the first misuse is remembered, and reported by Err
// and Dump.
type Assembler struct {
	Verbose bool              // If set, verbosely logs the assembler actions.
	Labels  map[string]*Label // Map of labels by name.

	buf    words.Buffer
	err    error
	dumped bool
}

// NewAssembler creates an empty assembly session.
func NewAssembler() *Assembler {
	return &Assembler{
		Labels: make(map[string]*Label, 16),
	}
}

// Err returns the first error recorded by the assembler.
func (asm *Assembler) Err() error {
	return asm.err
}

// Here returns the address of the next word to be written.
func (asm *Assembler) Here() int {
	return asm.buf.Len()
}

// fail records err, unless an error is already pending.
func (asm *Assembler) fail(err error) {
	if asm.err == nil {
		asm.err = err
	}
}

// writable checks the session is still open and the operands are sane.
func (asm *Assembler) writable(ops ...Operand) bool {
	if asm.dumped {
		asm.fail(ErrDumped)
		return false
	}
	for _, op := range ops {
		if op.err != nil {
			asm.fail(op.err)
			return false
		}
	}
	return true
}

// lookup returns the label by name, creating it if needed.
func (asm *Assembler) lookup(name string) *Label {
	if asm.Labels == nil {
		asm.Labels = make(map[string]*Label, 16)
	}
	label, ok := asm.Labels[name]
	if !ok {
		label = &Label{Name: name}
		asm.Labels[name] = label
	}
	return label
}

// writeOperand appends the word following the instruction, if any.
func (asm *Assembler) writeOperand(op Operand) (imms []uint16) {
	if op.Arg.Words() == 0 {
		return
	}

	if len(op.Label) != 0 {
		label := asm.lookup(op.Label)
		label.Refs = append(label.Refs, asm.buf.Len())
		asm.buf.Append(LABEL_PLACEHOLDER)
		return []uint16{LABEL_PLACEHOLDER}
	}

	asm.buf.Append(op.Word)
	return []uint16{op.Word}
}

// Emit writes a basic instruction and its operand words. Extended
// instructions are written with EmitExtended.
func (asm *Assembler) Emit(op Opcode, a, b Operand) {
	if !asm.writable(a, b) {
		return
	}
	if op == OP_EXT {
		asm.fail(ErrExtendedOnly)
		return
	}
	if op < OP_EXT || op > OP_IFB {
		asm.fail(ErrOpcodeInvalid)
		return
	}

	addr := asm.buf.Append(MakeCode(op, a.Arg, b.Arg).Word)
	imms := asm.writeOperand(a)
	imms = append(imms, asm.writeOperand(b)...)

	if asm.Verbose {
		log.Printf("asm: %04x: %v", addr, MakeCode(op, a.Arg, b.Arg, imms...))
	}
}

// EmitExtended writes an extended instruction and its operand word.
func (asm *Assembler) EmitExtended(ext Extended, a Operand) {
	if !asm.writable(a) {
		return
	}
	if !ext.Valid() {
		asm.fail(ErrExtendedInvalid)
		return
	}

	addr := asm.buf.Append(MakeCodeExtended(ext, a.Arg).Word)
	imms := asm.writeOperand(a)

	if asm.Verbose {
		log.Printf("asm: %04x: %v", addr, MakeCodeExtended(ext, a.Arg, imms...))
	}
}

// Halt writes a halt instruction, the all-zero word.
func (asm *Assembler) Halt() {
	asm.EmitExtended(EXT_HALT, Reg(REG_A))
}

// Val writes raw words.
func (asm *Assembler) Val(ws ...uint16) {
	if !asm.writable() {
		return
	}
	asm.buf.Append(ws...)
}

// Label returns a literal operand holding the address of the named label.
// The label may be marked before or after it is used.
func (asm *Assembler) Label(name string) Operand {
	asm.lookup(name)
	return Operand{Arg: ARG_LITERAL, Label: name}
}

// LabelMem returns an operand addressing the memory at the named label.
func (asm *Assembler) LabelMem(name string) Operand {
	asm.lookup(name)
	return Operand{Arg: ARG_ABSOLUTE, Label: name}
}

// MarkLabel sets the named label to the current write position.
// Marking a label again moves it.
func (asm *Assembler) MarkLabel(name string) {
	if !asm.writable() {
		return
	}
	label := asm.lookup(name)
	label.Target = asm.buf.Len()
	label.Marked = true

	if asm.Verbose {
		log.Printf("asm: %04x: %v:", label.Target, name)
	}
}

// Dump patches every label reference, and returns the assembled words.
// References to labels that were never marked keep LABEL_PLACEHOLDER, and
// are reported as ErrLabelMissing.
//
// Dump may be called again, but no more instructions can be written.
func (asm *Assembler) Dump() (dump []uint16, err error) {
	asm.dumped = true

	var missing []error
	for _, name := range slices.Sorted(maps.Keys(asm.Labels)) {
		label := asm.Labels[name]
		if !label.Marked {
			if len(label.Refs) > 0 {
				missing = append(missing, ErrLabelMissing(name))
			}
			continue
		}
		for _, index := range label.Refs {
			asm.buf.Set(index, uint16(label.Target))
		}
	}

	if asm.buf.Len() > MEMORY_SIZE {
		missing = append(missing, words.ErrCapacity(asm.buf.Len()))
	}

	dump = asm.buf.Words()
	err = errors.Join(append([]error{asm.err}, missing...)...)
	return
}

// Program dumps the assembler into a program listing.
func (asm *Assembler) Program() (prog *Program, err error) {
	dump, err := asm.Dump()
	if err != nil {
		return
	}

	prog = &Program{
		Words:  dump,
		Labels: make(map[string]uint16, len(asm.Labels)),
	}
	for name, label := range asm.Labels {
		if label.Marked {
			prog.Labels[name] = uint16(label.Target)
		}
	}

	return
}
