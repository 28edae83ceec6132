// Package io provides the value channels that feed the input buffer and
// drain the output buffer of the simulator. It includes a FIFO of values
// (Temporary), a fixed list of values (Rom), and text streams (Tape).
package io

import (
	"iter"

	"github.com/ezrec/cpusim/value"
)

// Channel defines the interface for all value channels.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns an iterator that yields values from the channel.
	Receive() iter.Seq[value.Value]
	// Send writes a single value to the channel.
	Send(v value.Value) error
}
