package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	for op := range OP_IFB + 1 {
		f.Add(MakeCode(op, ARG_REGISTER, ARG_LITERAL).Word, uint16(0x1234), uint16(0x5678), false)
		f.Add(MakeCode(op, ARG_INDEXED, ARG_ABSOLUTE).Word, uint16(0xfff0), uint16(0x0010), true)
	}
	f.Add(uint16(0), uint16(0), uint16(0), false)
	f.Add(uint16(0xffff), uint16(0xffff), uint16(0xffff), true)

	f.Fuzz(func(t *testing.T, word uint16, next uint16, last uint16, skip bool) {
		assert := assert.New(t)

		code := Code{Word: word, Immediates: []uint16{next, last}}
		code.Immediates = code.Immediates[:code.ImmediateNeed()]

		image := append([]uint16{word}, code.Immediates...)
		cpu, err := NewCpu(image)
		assert.NoError(err)
		for reg := REG_A; reg <= REG_J; reg++ {
			cpu.Register[reg] = 0x1111 * uint16(reg+1)
		}
		cpu.Skip = skip

		err = cpu.Step()

		if skip {
			assert.NoError(err)
			assert.False(cpu.Skip)
			assert.Equal(uint16(code.Len()), cpu.Register[REG_PC])
			assert.Equal(code.Cycles()+1, cpu.Cycles)
			return
		}

		var eo *ErrOpcode
		switch {
		case err == nil:
			assert.Equal(code.Cycles(), cpu.Cycles)
		case errors.Is(err, ErrHalted):
			assert.Equal(OP_EXT, code.Opcode())
			assert.Equal(EXT_HALT, code.Extended())
			assert.True(cpu.Halted)
			assert.Equal(uint16(0), cpu.Register[REG_PC])
		case errors.As(err, &eo):
			assert.ErrorIs(err, ErrExtendedInvalid)
			assert.Equal(OP_EXT, code.Opcode())
			assert.Equal(uint16(0), cpu.Register[REG_PC])
		default:
			t.Fatalf("unexpected error %v", err)
		}
	})
}
