package cpu

import (
	"iter"
)

// Program is an assembled memory image with its label table.
type Program struct {
	Words  []uint16
	Labels map[string]uint16
}

// Debug locates an address relative to the nearest preceding label.
type Debug struct {
	Label  string
	Offset int
}

func (prog *Program) Debug(addr uint16) (dbg Debug) {
	found := false
	for name, target := range prog.Labels {
		if target > addr {
			continue
		}
		offset := int(addr - target)
		// Closest label wins, then the lowest name for stability.
		if !found || offset < dbg.Offset || (offset == dbg.Offset && name < dbg.Label) {
			dbg = Debug{Label: name, Offset: offset}
			found = true
		}
	}

	if !found {
		dbg.Offset = int(addr)
	}

	return
}

// Codes iterates the program instructions in address order, stopping at
// the first word that does not decode.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for addr := 0; addr < len(prog.Words); {
			code, err := Decode(prog.Words, addr)
			if err != nil {
				return
			}
			if !yield(uint16(addr), code) {
				return
			}
			addr += code.Len()
		}
	}
}
