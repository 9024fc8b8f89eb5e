package words

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	DUMP_LIMIT    = 0x10000 // Maximum words in a dump.
	DUMP_PER_LINE = 8       // Words per line written by Write.
)

// Parse reads a word dump: whitespace separated hexadecimal tokens, each a
// 16-bit value, in address order starting at zero.
func Parse(r io.Reader) (ws []uint16, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		token := scanner.Text()
		if len(ws) == DUMP_LIMIT {
			err = ErrCapacity(len(ws) + 1)
			return
		}
		digits := strings.TrimPrefix(strings.TrimPrefix(token, "0x"), "0X")
		var value uint64
		value, err = strconv.ParseUint(digits, 16, 16)
		if err != nil {
			err = &ErrParseWord{Index: len(ws), Token: token}
			return
		}
		ws = append(ws, uint16(value))
	}

	err = scanner.Err()
	return
}

// Write emits ws in the dump format read by Parse.
func Write(w io.Writer, ws []uint16) (err error) {
	out := bufio.NewWriter(w)

	for n, word := range ws {
		sep := " "
		if n%DUMP_PER_LINE == DUMP_PER_LINE-1 || n == len(ws)-1 {
			sep = "\n"
		}
		_, err = fmt.Fprintf(out, "%04x%s", word, sep)
		if err != nil {
			return
		}
	}

	err = out.Flush()
	return
}
