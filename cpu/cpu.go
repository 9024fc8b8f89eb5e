package cpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/dcpu/words"
)

const (
	MEMORY_SIZE = 0x10000 // Words of memory.
	SP_RESET    = 0xffff  // Stack pointer after reset.
)

// LocationKind tags a resolved operand.
type LocationKind int

const (
	LOCATION_LITERAL  = LocationKind(0) // Value is the operand; stores are discarded.
	LOCATION_REGISTER = LocationKind(1) // Index is a Register.
	LOCATION_MEMORY   = LocationKind(2) // Index is a memory address.
)

// Location is where an operand reads from and stores to. It is resolved
// once per instruction so stack side effects happen once.
type Location struct {
	Kind  LocationKind
	Index uint16
}

// Cpu is the simulation context for the DCPU-16.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Mem      [MEMORY_SIZE]uint16     // Memory image.
	Register [REGISTER_COUNT]uint16 // Register file, indexed by Register.

	Cycles int  // Elapsed cycles.
	Skip   bool // Set when the next Step is a skipped instruction.
	Halted bool // Set once a halt instruction executes.
}

// NewCpu creates a CPU with image loaded at address 0.
func NewCpu(image []uint16) (cpu *Cpu, err error) {
	if len(image) > MEMORY_SIZE {
		err = words.ErrCapacity(len(image))
		return
	}

	cpu = &Cpu{}
	copy(cpu.Mem[:], image)
	cpu.Register[REG_SP] = SP_RESET

	return
}

// Clone returns an independent copy of the CPU state.
func (cpu *Cpu) Clone() *Cpu {
	clone := *cpu
	return &clone
}

// Memory returns a view of the full memory image.
func (cpu *Cpu) Memory() []uint16 {
	return cpu.Mem[:]
}

// Get reads a register by name.
func (cpu *Cpu) Get(name string) (value uint16, err error) {
	reg, ok := RegisterByName(name)
	if !ok {
		err = ErrRegisterInvalid
		return
	}

	value = cpu.Register[reg]
	return
}

// Set writes a register by name.
func (cpu *Cpu) Set(name string, value uint16) (err error) {
	reg, ok := RegisterByName(name)
	if !ok {
		err = ErrRegisterInvalid
		return
	}

	cpu.Register[reg] = value
	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for reg := REG_A; reg < REGISTER_COUNT; reg++ {
		text += fmt.Sprintf("% 3s: %04x\n", reg, cpu.Register[reg])
	}
	text += fmt.Sprintf("cycles: %d\n", cpu.Cycles)
	text += fmt.Sprintf("  skip: %v\n", cpu.Skip)

	return
}

// nextWord consumes a word from the instruction stream.
func (cpu *Cpu) nextWord() (value uint16) {
	value = cpu.Mem[cpu.Register[REG_PC]]
	cpu.Register[REG_PC]++
	return
}

// resolve decodes an operand field into a location, performing any
// instruction stream and stack pointer side effects.
func (cpu *Cpu) resolve(arg CodeArg) (loc Location) {
	info := arg.Info()

	switch info.Mode {
	case MODE_REGISTER, MODE_SP, MODE_PC, MODE_O:
		loc = Location{Kind: LOCATION_REGISTER, Index: uint16(info.Register)}
	case MODE_INDIRECT:
		loc = Location{Kind: LOCATION_MEMORY, Index: cpu.Register[info.Register]}
	case MODE_INDEXED:
		offset := cpu.nextWord()
		loc = Location{Kind: LOCATION_MEMORY, Index: offset + cpu.Register[info.Register]}
	case MODE_POP:
		loc = Location{Kind: LOCATION_MEMORY, Index: cpu.Register[REG_SP]}
		cpu.Register[REG_SP]++
	case MODE_PEEK:
		loc = Location{Kind: LOCATION_MEMORY, Index: cpu.Register[REG_SP]}
	case MODE_PUSH:
		cpu.Register[REG_SP]--
		loc = Location{Kind: LOCATION_MEMORY, Index: cpu.Register[REG_SP]}
	case MODE_ABSOLUTE:
		loc = Location{Kind: LOCATION_MEMORY, Index: cpu.nextWord()}
	case MODE_LITERAL:
		loc = Location{Kind: LOCATION_LITERAL, Index: cpu.nextWord()}
	case MODE_EMBEDDED:
		loc = Location{Kind: LOCATION_LITERAL, Index: uint16(arg - ARG_EMBEDDED)}
	default:
		panic("unknown operand mode")
	}

	return
}

// load reads the value at a location.
func (cpu *Cpu) load(loc Location) uint16 {
	switch loc.Kind {
	case LOCATION_REGISTER:
		return cpu.Register[loc.Index]
	case LOCATION_MEMORY:
		return cpu.Mem[loc.Index]
	default:
		return loc.Index
	}
}

// store writes a value to a location. Literals silently discard it.
func (cpu *Cpu) store(loc Location, value uint16) {
	switch loc.Kind {
	case LOCATION_REGISTER:
		cpu.Register[loc.Index] = value
	case LOCATION_MEMORY:
		cpu.Mem[loc.Index] = value
	}
}

// Step executes a single instruction.
//
// A false conditional does not skip anything itself; it sets Skip, and the
// following Step consumes the next instruction (with its operand words)
// without executing it.
func (cpu *Cpu) Step() (err error) {
	addr := cpu.Register[REG_PC]
	code := Code{Word: cpu.Mem[addr]}
	cpu.Register[REG_PC]++

	cpu.Cycles += code.Cycles()

	if cpu.Skip {
		cpu.Skip = false
		cpu.Cycles++
		cpu.Register[REG_PC] += uint16(code.ImmediateNeed())
		if cpu.Verbose {
			log.Printf("cpu: %04x: skip", addr)
		}
		return
	}

	if cpu.Verbose {
		if dbg, dbg_err := Decode(cpu.Mem[:], int(addr)); dbg_err == nil {
			log.Printf("cpu: %04x: %v", addr, dbg)
		}
	}

	op := code.Opcode()
	if op == OP_EXT {
		return cpu.extended(addr, code)
	}

	// Operand a precedes operand b in the instruction stream.
	dst := cpu.resolve(code.A())
	a := cpu.load(dst)
	b := cpu.load(cpu.resolve(code.B()))

	var result uint16
	var overflow uint16
	var set_overflow bool

	switch op {
	case OP_SET:
		result = b
	case OP_ADD:
		wide := uint32(a) + uint32(b)
		result, overflow, set_overflow = uint16(wide), uint16(wide>>16), true
	case OP_SUB:
		wide := uint32(a) - uint32(b)
		result, overflow, set_overflow = uint16(wide), uint16(wide>>16), true
	case OP_MUL:
		wide := uint32(a) * uint32(b)
		result, overflow, set_overflow = uint16(wide), uint16(wide>>16), true
	case OP_DIV:
		set_overflow = true
		if b != 0 {
			result = a / b
			overflow = uint16((uint32(a) << 16) / uint32(b))
		}
	case OP_MOD:
		if b != 0 {
			result = a % b
		}
	case OP_SHL:
		wide := uint32(a) << b
		result, overflow, set_overflow = uint16(wide), uint16(wide>>16), true
	case OP_SHR:
		result = a >> b
		overflow, set_overflow = uint16((uint32(a)<<16)>>b), true
	case OP_AND:
		result = a & b
	case OP_BOR:
		result = a | b
	case OP_XOR:
		result = a ^ b
	case OP_IFE:
		cpu.Skip = !(a == b)
	case OP_IFN:
		cpu.Skip = !(a != b)
	case OP_IFG:
		cpu.Skip = !(a > b)
	case OP_IFB:
		cpu.Skip = !((a & b) != 0)
	default:
		cpu.Register[REG_PC] = addr
		err = &ErrOpcode{Address: addr, Code: code, Err: ErrOpcodeInvalid}
		return
	}

	if op.Writes() {
		cpu.store(dst, result)
	}
	if set_overflow {
		cpu.Register[REG_O] = overflow
	}

	return
}

// extended executes an OP_EXT instruction.
func (cpu *Cpu) extended(addr uint16, code Code) (err error) {
	switch code.Extended() {
	case EXT_HALT:
		cpu.Register[REG_PC] = addr
		cpu.Halted = true
		err = ErrHalted
	case EXT_JSR:
		target := cpu.load(cpu.resolve(code.B()))
		cpu.Register[REG_SP]--
		cpu.Mem[cpu.Register[REG_SP]] = cpu.Register[REG_PC]
		cpu.Register[REG_PC] = target
	default:
		cpu.Register[REG_PC] = addr
		err = &ErrOpcode{Address: addr, Code: code, Err: ErrExtendedInvalid}
	}

	return
}

// Run steps until a halt instruction executes, or limit steps have run.
// Skipped instructions count as steps.
func (cpu *Cpu) Run(limit int) (steps int, err error) {
	for steps < limit {
		err = cpu.Step()
		steps++
		if errors.Is(err, ErrHalted) {
			err = nil
			return
		}
		if err != nil {
			return
		}
	}

	err = ErrLimit
	return
}
