package script

import (
	"github.com/ezrec/dcpu/translate"
)

var f = translate.From

// ErrScript locates a build script failure.
type ErrScript struct {
	Filename string
	Err      error
}

func (err *ErrScript) Error() string {
	return f("%v: %v", err.Filename, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}

// ErrArgument is an argument of the wrong kind.
type ErrArgument struct {
	Func string
	Got  string
}

func (err *ErrArgument) Error() string {
	return f("%v: unexpected %v argument", err.Func, err.Got)
}
