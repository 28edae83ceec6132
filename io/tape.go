package io

import (
	"bufio"
	"io"
	"iter"

	"github.com/ezrec/cpusim/value"
)

// Tape provides sequential text I/O, one value per line.
// Input lines follow the load file rules of value.Space.Parse; output
// values are written in Radix.
type Tape struct {
	Space  value.Space
	Radix  int // Output radix; 10 if unset.
	Input  io.Reader
	Output io.Writer

	scanner *bufio.Scanner
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Receive returns an iterator that yields one value per input line, until
// the input is exhausted.
func (tc *Tape) Receive() iter.Seq[value.Value] {
	return func(yield func(v value.Value) bool) {
		if tc.Input == nil {
			return
		}
		if tc.scanner == nil {
			tc.scanner = bufio.NewScanner(tc.Input)
		}
		for tc.scanner.Scan() {
			if !yield(tc.Space.Parse(tc.scanner.Text())) {
				return
			}
		}
	}
}

// Send writes a value to the output stream, followed by a newline.
func (tc *Tape) Send(v value.Value) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	radix := tc.Radix
	if radix == 0 {
		radix = 10
	}

	_, err = io.WriteString(tc.Output, v.Format(radix)+"\n")

	return
}
