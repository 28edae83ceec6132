package io

import (
	"iter"

	"github.com/ezrec/cpusim/value"
)

// Rom is a read only list of values. Each Receive starts from the
// current position and consumes what it yields; Rewind starts over.
type Rom struct {
	Data []value.Value

	index int
}

var _ Channel = (*Rom)(nil)

func (rc *Rom) Rewind() {
	rc.index = 0
}

func (rc *Rom) Receive() iter.Seq[value.Value] {
	return func(yield func(v value.Value) bool) {
		for rc.index < len(rc.Data) {
			v := rc.Data[rc.index]
			rc.index++
			if !yield(v) {
				return
			}
		}
	}
}

func (rc *Rom) Send(v value.Value) error {
	return ErrChannelReadOnly
}
