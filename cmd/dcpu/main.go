// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/dcpu/cpu"
	"github.com/ezrec/dcpu/emulator"
	"github.com/ezrec/dcpu/script"
	"github.com/ezrec/dcpu/translate"
	"github.com/ezrec/dcpu/words"
)

func main() {
	var compile string
	var dump string
	var output string
	var list bool
	var execute bool
	var steps int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".star build script to compile")
	flag.StringVar(&dump, "d", "", "word dump to load, - for stdin")
	flag.StringVar(&output, "o", "", "write the word dump, - for stdout")
	flag.BoolVar(&list, "l", false, "List the disassembly")
	flag.BoolVar(&execute, "x", false, "Execute until halt")
	flag.IntVar(&steps, "n", emulator.STEP_LIMIT, "Step ceiling when executing")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if (len(compile) == 0) == (len(dump) == 0) {
		log.Fatalf("%v: exactly one of -c or -d is required", os.Args[0])
	}

	prog := &cpu.Program{}

	// Compile a new program.
	if len(compile) != 0 {
		var err error
		cc := &script.Compiler{Verbose: verbose}
		prog, err = cc.Compile(compile, nil)
		if err != nil {
			log.Fatal(err)
		}
	}

	// Load a word dump.
	if len(dump) != 0 {
		inf := os.Stdin
		if dump != "-" {
			var err error
			inf, err = os.Open(dump)
			if err != nil {
				log.Fatalf("%v: %v", dump, err)
			}
			defer inf.Close()
		}

		ws, err := words.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", dump, err)
		}
		prog.Words = ws
	}

	if len(output) != 0 {
		ouf := os.Stdout
		if output != "-" {
			var err error
			ouf, err = os.Create(output)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			defer ouf.Close()
		}

		err := words.Write(ouf, prog.Words)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if list {
		text, err := cpu.Disassemble(prog.Words, 0, len(prog.Words))
		fmt.Print(text)
		if err != nil {
			log.Fatal(err)
		}
	}

	if execute {
		emu := emulator.NewEmulator()
		emu.Program = prog
		emu.Verbose = verbose
		emu.Limit = steps

		err := emu.Reset()
		if err != nil {
			log.Fatal(err)
		}

		err = emu.Run()
		fmt.Print(emu.Cpu.String())
		if err != nil {
			log.Fatal(err)
		}
		translate.Fprintf(os.Stdout, "halted after %d steps\n", emu.Steps)
	}
}
