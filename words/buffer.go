// Package words holds the 16-bit word storage shared by the assembler and
// by memory dumps, and the textual word dump format.
package words

import (
	"slices"
)

// Buffer is a growable, index-addressable sequence of 16-bit words.
type Buffer struct {
	data []uint16
}

// NewBuffer returns a buffer with room for capacity words.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]uint16, 0, capacity)}
}

// Append adds words to the end of the buffer, and returns the index of
// the first appended word.
func (buf *Buffer) Append(ws ...uint16) (index int) {
	index = len(buf.data)
	buf.data = append(buf.data, ws...)
	return
}

// Set overwrites the word at index.
func (buf *Buffer) Set(index int, w uint16) {
	buf.data[index] = w
}

// Get returns the word at index.
func (buf *Buffer) Get(index int) uint16 {
	return buf.data[index]
}

// Len is the number of words written so far.
func (buf *Buffer) Len() int {
	return len(buf.data)
}

// Words returns a copy of the buffer contents.
func (buf *Buffer) Words() []uint16 {
	return slices.Clone(buf.data)
}

// Reset empties the buffer, keeping its storage.
func (buf *Buffer) Reset() {
	buf.data = buf.data[:0]
}
