package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// notchProgram is the sample program published with DCPU-16 1.1.
func notchProgram() (asm *Assembler) {
	asm = NewAssembler()

	asm.Emit(OP_SET, Reg(REG_A), Lit(0x30))
	asm.Emit(OP_SET, MemAddr(0x1000), Lit(0x20))
	asm.Emit(OP_SUB, Reg(REG_A), MemAddr(0x1000))
	asm.Emit(OP_IFN, Reg(REG_A), Lit(0x10))
	asm.Emit(OP_SET, PC(), asm.Label("crash"))

	asm.Emit(OP_SET, Reg(REG_I), Lit(10))
	asm.Emit(OP_SET, Reg(REG_A), Lit(0x2000))
	asm.MarkLabel("loop")
	asm.Emit(OP_SET, MemOffset(REG_I, 0x2000), Mem(REG_A))
	asm.Emit(OP_SUB, Reg(REG_I), Lit(1))
	asm.Emit(OP_IFN, Reg(REG_I), Lit(0))
	asm.Emit(OP_SET, PC(), asm.Label("loop"))

	asm.Emit(OP_SET, Reg(REG_X), Lit(0x4))
	asm.EmitExtended(EXT_JSR, asm.Label("testsub"))
	asm.Emit(OP_SET, PC(), asm.Label("crash"))

	asm.MarkLabel("testsub")
	asm.Emit(OP_SHL, Reg(REG_X), Lit(4))
	asm.Emit(OP_SET, PC(), Pop())

	asm.MarkLabel("crash")
	asm.Emit(OP_SET, PC(), asm.Label("crash"))

	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler()
	dump, err := asm.Dump()
	assert.NoError(err)
	assert.Equal(0, len(dump))
	assert.Equal(0, asm.Here())
}

func TestAssembler_Notch(t *testing.T) {
	assert := assert.New(t)

	expected := []uint16{
		0x7c01, 0x0030, 0x7de1, 0x1000, 0x0020, 0x7803, 0x1000, 0xc00d,
		0x7dc1, 0x001a, 0xa861, 0x7c01, 0x2000, 0x2161, 0x2000, 0x8463,
		0x806d, 0x7dc1, 0x000d, 0x9031, 0x7c10, 0x0018, 0x7dc1, 0x001a,
		0x9037, 0x61c1, 0x7dc1, 0x001a,
	}

	asm := notchProgram()
	dump, err := asm.Dump()
	assert.NoError(err)
	assert.Equal(expected, dump)

	assert.Equal(0x0d, asm.Labels["loop"].Target)
	assert.Equal(0x18, asm.Labels["testsub"].Target)
	assert.Equal(0x1a, asm.Labels["crash"].Target)
	assert.Equal([]int{9, 23, 27}, asm.Labels["crash"].Refs)
}

func TestAssembler_Literal(t *testing.T) {
	assert := assert.New(t)

	for value := range LITERAL_LIMIT {
		asm := NewAssembler()
		asm.Emit(OP_SET, Reg(REG_A), Lit(value))
		dump, err := asm.Dump()
		assert.NoError(err)
		assert.Equal([]uint16{MakeCode(OP_SET, ARG_REGISTER, ARG_EMBEDDED+CodeArg(value)).Word}, dump)
	}

	table := [](struct {
		value int
		word  uint16
	}){
		{0x20, 0x0020},
		{0x30, 0x0030},
		{0xffff, 0xffff},
		{0x10000, 0x0000},
		{0x12345, 0x2345},
		{-1, 0xffff},
	}

	for _, entry := range table {
		asm := NewAssembler()
		asm.Emit(OP_SET, Reg(REG_A), Lit(entry.value))
		dump, err := asm.Dump()
		assert.NoError(err)
		assert.Equal([]uint16{0x7c01, entry.word}, dump, entry.value)
	}
}

func TestAssembler_Operands(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		operand Operand
		arg     CodeArg
		words   int
	}){
		{"reg_a", Reg(REG_A), 0x00, 0},
		{"reg_j", Reg(REG_J), 0x07, 0},
		{"reg_sp", Reg(REG_SP), ARG_SP, 0},
		{"reg_pc", Reg(REG_PC), ARG_PC, 0},
		{"reg_o", Reg(REG_O), ARG_O, 0},
		{"mem_b", Mem(REG_B), 0x09, 0},
		{"mem_offset_c", MemOffset(REG_C, 0x10), 0x12, 1},
		{"pop", Pop(), 0x18, 0},
		{"peek", Peek(), 0x19, 0},
		{"push", Push(), 0x1a, 0},
		{"sp", SP(), 0x1b, 0},
		{"pc", PC(), 0x1c, 0},
		{"o", O(), 0x1d, 0},
		{"mem_addr", MemAddr(0x8000), 0x1e, 1},
		{"lit", Lit(0x8000), 0x1f, 1},
		{"lit_embedded", Lit(0x1f), 0x3f, 0},
	}

	for _, entry := range table {
		assert.Equal(entry.arg, entry.operand.Arg, entry.name)
		assert.Equal(entry.words, entry.operand.Arg.Words(), entry.name)
	}
}

func TestAssembler_LabelOrder(t *testing.T) {
	assert := assert.New(t)

	// Reference before mark.
	asm := NewAssembler()
	asm.Emit(OP_SET, PC(), asm.Label("L"))
	asm.Val(0x1111, 0x2222)
	asm.MarkLabel("L")
	asm.Emit(OP_SET, Reg(REG_A), asm.Label("L"))
	dump, err := asm.Dump()
	assert.NoError(err)
	assert.Equal([]uint16{0x7dc1, 0x0004, 0x1111, 0x2222, 0x7c01, 0x0004}, dump)

	// Mark before reference.
	asm = NewAssembler()
	asm.Val(0x1111)
	asm.MarkLabel("L")
	asm.Emit(OP_SET, PC(), asm.Label("L"))
	asm.Emit(OP_SET, asm.LabelMem("L"), Lit(1))
	dump, err = asm.Dump()
	assert.NoError(err)
	assert.Equal([]uint16{0x1111, 0x7dc1, 0x0001, 0x85e1, 0x0001}, dump)
}

func TestAssembler_LabelRemark(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler()
	asm.MarkLabel("L")
	asm.Emit(OP_SET, PC(), asm.Label("L"))
	asm.MarkLabel("L")
	dump, err := asm.Dump()
	assert.NoError(err)
	assert.Equal([]uint16{0x7dc1, 0x0002}, dump)
}

func TestAssembler_LabelMissing(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler()
	asm.Emit(OP_SET, PC(), asm.Label("zeta"))
	asm.EmitExtended(EXT_JSR, asm.Label("alpha"))
	asm.Label("unused")
	dump, err := asm.Dump()
	assert.Error(err)
	assert.ErrorIs(err, ErrLabelMissing("zeta"))
	assert.ErrorIs(err, ErrLabelMissing("alpha"))
	assert.NotErrorIs(err, ErrLabelMissing("unused"))
	assert.Equal("label alpha missing\nlabel zeta missing", err.Error())
	assert.Equal([]uint16{0x7dc1, LABEL_PLACEHOLDER, 0x7c10, LABEL_PLACEHOLDER}, dump)
}

func TestAssembler_Dumped(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler()
	asm.Emit(OP_SET, PC(), asm.Label("L"))
	asm.MarkLabel("L")

	first, err := asm.Dump()
	assert.NoError(err)
	second, err := asm.Dump()
	assert.NoError(err)
	assert.Equal(first, second)

	asm.Emit(OP_SET, Reg(REG_A), Lit(1))
	assert.ErrorIs(asm.Err(), ErrDumped)
	_, err = asm.Dump()
	assert.ErrorIs(err, ErrDumped)
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		build func(asm *Assembler)
		err   error
	}){
		{"ext_in_emit", func(asm *Assembler) { asm.Emit(OP_EXT, Reg(REG_A), Reg(REG_B)) }, ErrExtendedOnly},
		{"bad_opcode", func(asm *Assembler) { asm.Emit(Opcode(0x10), Reg(REG_A), Reg(REG_B)) }, ErrOpcodeInvalid},
		{"bad_extended", func(asm *Assembler) { asm.EmitExtended(Extended(0x3f), Reg(REG_A)) }, ErrExtendedInvalid},
		{"mem_pc", func(asm *Assembler) { asm.Emit(OP_SET, Mem(REG_PC), Lit(0)) }, ErrRegisterInvalid},
		{"mem_offset_sp", func(asm *Assembler) { asm.Emit(OP_SET, MemOffset(REG_SP, 1), Lit(0)) }, ErrRegisterInvalid},
		{"reg_bad", func(asm *Assembler) { asm.EmitExtended(EXT_JSR, Reg(Register(12))) }, ErrRegisterInvalid},
	}

	for _, entry := range table {
		asm := NewAssembler()
		entry.build(asm)
		assert.ErrorIs(asm.Err(), entry.err, entry.name)
		assert.Equal(0, asm.Here(), entry.name)

		// The first error sticks.
		asm.Emit(OP_EXT, Reg(REG_A), Reg(REG_A))
		_, err := asm.Dump()
		assert.True(errors.Is(err, entry.err), entry.name)
	}
}

func TestAssembler_Program(t *testing.T) {
	assert := assert.New(t)

	asm := notchProgram()
	prog, err := asm.Program()
	assert.NoError(err)
	assert.Equal(28, len(prog.Words))
	assert.Equal(map[string]uint16{"loop": 0x0d, "testsub": 0x18, "crash": 0x1a}, prog.Labels)

	asm = NewAssembler()
	asm.Emit(OP_SET, PC(), asm.Label("nowhere"))
	prog, err = asm.Program()
	assert.ErrorIs(err, ErrLabelMissing("nowhere"))
	assert.Nil(prog)
}
