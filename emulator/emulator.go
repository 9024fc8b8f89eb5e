// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"io"
	"log"

	"github.com/ezrec/dcpu/cpu"
	"github.com/ezrec/dcpu/translate"
)

const (
	STEP_LIMIT = 1_000_000 // Default ceiling on steps for Run.
)

// Emulator state. CPU + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	Limit    int          // Maximum steps for Run; zero means STEP_LIMIT.
	Steps    int          // Steps since the last reset.

	trace io.Writer
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	// Never nil, so the register accessors always work.
	emu.Cpu, _ = cpu.NewCpu(nil)

	return
}

// Trace sends a line per executed instruction to w. A nil w disables it.
func (emu *Emulator) Trace(w io.Writer) {
	emu.trace = w
}

// Reset loads the program into a freshly powered-on CPU.
func (emu *Emulator) Reset() (err error) {
	cp, err := cpu.NewCpu(emu.Program.Words)
	if err != nil {
		return
	}

	emu.Cpu = cp
	emu.Steps = 0

	return
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() uint16 {
	return emu.Cpu.Register[cpu.REG_PC]
}

// Code returns the instruction at the program counter.
func (emu *Emulator) Code() (code cpu.Code) {
	code, _ = cpu.Decode(emu.Cpu.Memory(), int(emu.Pc()))
	return
}

// Tick performs a single step of the emulator. done is set once the
// CPU halts.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Pc()
	defer func() {
		if err != nil {
			err = emu.runtime(pc, err)
		}
	}()

	if emu.trace != nil || emu.Verbose {
		text, dis_err := cpu.DisassembleOne(emu.Cpu.Memory(), int(pc))
		if dis_err != nil {
			text = translate.From("%04x: dat 0x%04x", pc, emu.Cpu.Mem[pc])
		}
		if emu.Cpu.Skip {
			text += translate.From(" (skip)")
		}
		if emu.Verbose {
			dbg := emu.Program.Debug(pc)
			log.Printf("emulator: %v+%d %v", dbg.Label, dbg.Offset, text)
		}
		if emu.trace != nil {
			translate.Fprintln(emu.trace, text)
		}
	}

	err = emu.Cpu.Step()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	emu.Steps++

	return
}

// Run ticks until the CPU halts, or the step limit is reached.
func (emu *Emulator) Run() (err error) {
	limit := emu.Limit
	if limit <= 0 {
		limit = STEP_LIMIT
	}

	for range limit {
		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}

	err = emu.runtime(emu.Pc(), cpu.ErrLimit)
	return
}

func (emu *Emulator) runtime(pc uint16, err error) error {
	dbg := emu.Program.Debug(pc)
	return &ErrRuntime{
		Address: pc,
		Label:   dbg.Label,
		Offset:  dbg.Offset,
		Err:     err,
	}
}
