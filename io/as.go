package io

import (
	"iter"

	"github.com/ezrec/cpusim/value"
)

// ReceiveOne receives a single value from the channel. ok is false if the
// channel is empty.
func ReceiveOne(ch Channel) (v value.Value, ok bool) {
	for v = range ch.Receive() {
		ok = true
		break
	}
	return
}

// ReceiveAsString returns an iterator that reads values from the channel
// and yields them rendered in radix.
func ReceiveAsString(ch Channel, radix int) iter.Seq[string] {
	return func(yield func(text string) bool) {
		for v := range ch.Receive() {
			if !yield(v.Format(radix)) {
				return
			}
		}
	}
}
