package words

import (
	"github.com/ezrec/dcpu/translate"
)

var f = translate.From

// ErrCapacity reports a dump longer than the machine memory.
type ErrCapacity int

func (err ErrCapacity) Error() string {
	return f("dump of %d words exceeds %d", int(err), DUMP_LIMIT)
}

// ErrParseWord reports a dump token that is not a 16-bit hex value.
type ErrParseWord struct {
	Index int
	Token string
}

func (err *ErrParseWord) Error() string {
	return f("word %d '%v' is not a 16-bit hex value", err.Index, err.Token)
}
