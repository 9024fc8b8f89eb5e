package cpu

import (
	"fmt"
	"slices"
	"strings"
)

// Decode reads the instruction at addr, with the words its operands consume.
func Decode(mem []uint16, addr int) (code Code, err error) {
	if addr < 0 || addr >= len(mem) {
		err = &ErrOpcode{Address: uint16(addr), Err: ErrTruncated}
		return
	}

	code.Word = mem[addr]
	if code.Opcode() == OP_EXT && !code.Extended().Valid() {
		err = &ErrOpcode{Address: uint16(addr), Code: code, Err: ErrExtendedInvalid}
		return
	}

	end := addr + code.Len()
	if end > len(mem) {
		err = &ErrOpcode{Address: uint16(addr), Code: code, Err: ErrTruncated}
		return
	}
	if end > addr+1 {
		code.Immediates = slices.Clone(mem[addr+1 : end])
	}

	return
}

// Disassemble lists the instructions starting in the window
// [offset, offset+length) of mem, one line per instruction. Instructions
// that depend on a preceding conditional are indented.
//
// On a decode error, the text listed so far is returned with the error.
func Disassemble(mem []uint16, offset, length int) (text string, err error) {
	var out strings.Builder

	conditional := false
	end := offset + length
	for addr := offset; addr < end; {
		var code Code
		code, err = Decode(mem, addr)
		if err != nil {
			break
		}

		indent := ""
		if conditional {
			indent = "   "
		}
		fmt.Fprintf(&out, "%04x: %s%v\n", addr, indent, code)

		conditional = code.Opcode().Conditional()
		addr += code.Len()
	}

	text = out.String()
	return
}

// DisassembleOne renders the single instruction at addr.
func DisassembleOne(mem []uint16, addr int) (text string, err error) {
	code, err := Decode(mem, addr)
	if err != nil {
		return
	}

	text = fmt.Sprintf("%04x: %v", addr, code)
	return
}
