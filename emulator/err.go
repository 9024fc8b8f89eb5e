package emulator

import (
	"github.com/ezrec/dcpu/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Address uint16
	Label   string
	Offset  int
	Err     error
}

func (err *ErrRuntime) Error() string {
	if len(err.Label) == 0 {
		return f("0x%04x: %v", err.Address, err.Err)
	}
	return f("0x%04x (%v+%d): %v", err.Address, err.Label, err.Offset, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
