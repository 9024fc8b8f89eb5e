package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// IterSeq2Rekey yields every pair of seq once per rekey function, with the
// key passed through that function.
func IterSeq2Rekey[T1 any, T2 any](seq iter.Seq2[T1, T2], rekeys ...func(T1) T1) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for val1, val2 := range seq {
			for _, rekey := range rekeys {
				if !yield(rekey(val1), val2) {
					return
				}
			}
		}
	}
}
