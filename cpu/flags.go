package cpu

import (
	"strconv"

	"github.com/ezrec/cpusim/value"
)

// Flag is a condition code bit index.
type Flag int

//go:generate go tool stringer -linecomment -type=Flag
const (
	FLAG_ZERO     = Flag(0) // zero
	FLAG_OVERFLOW = Flag(1) // overflow
)

// FLAG_ALL is the mask of every declared flag.
const FLAG_ALL = (1 << FLAG_ZERO) | (1 << FLAG_OVERFLOW)

// Bit returns the mask bit of the flag.
func (fl Flag) Bit() int {
	return 1 << int(fl)
}

// Flags is the sticky condition code register.
// Until the first Set the mask is unknown, and reads as false.
type Flags struct {
	mask    int
	defined bool
}

// Defined is true once any flag has been written.
func (fl *Flags) Defined() bool {
	return fl.defined
}

// Get returns the state of a single flag.
func (fl *Flags) Get(flag Flag) bool {
	return fl.mask&flag.Bit() != 0
}

// Set writes a single flag. The first write defines the whole mask, with
// every other flag cleared.
func (fl *Flags) Set(flag Flag, state bool) {
	if !fl.defined {
		fl.defined = true
		fl.mask = 0
	}

	if state {
		fl.mask |= flag.Bit()
	} else {
		fl.mask &^= flag.Bit()
	}
}

// Mask returns the flag mask, and if it has been defined.
func (fl *Flags) Mask() (mask int, ok bool) {
	return fl.mask, fl.defined
}

// Reset returns the flags to the unknown state.
func (fl *Flags) Reset() {
	fl.mask = 0
	fl.defined = false
}

// Format renders the mask in radix, or value.UNSET before the first write.
func (fl *Flags) Format(radix int) string {
	if !fl.defined {
		return value.UNSET
	}
	return strconv.FormatInt(int64(fl.mask), radix)
}

func (fl *Flags) String() string {
	return fl.Format(10)
}
