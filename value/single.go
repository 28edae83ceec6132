package value

import (
	"strconv"
)

// Single is one digit in [0, max).
//
// The digit is stored unsigned. Signed() reads the upper half of the range
// as negative, so with max 8 the digits 4..7 are -4..-1. The signed mode only
// chooses which reading Int() and Format() use.
type Single struct {
	digit  int
	max    int
	signed bool
}

var _ Value = Single{}

func (s Single) IsUndefined() bool { return false }

func (s Single) Unsigned() int {
	return s.digit
}

func (s Single) Signed() int {
	if s.digit >= s.max-s.max/2 {
		return s.digit - s.max
	}
	return s.digit
}

func (s Single) Int() int {
	if s.signed {
		return s.Signed()
	}
	return s.Unsigned()
}

// Set returns a digit with the same mode holding n, wrapped into range.
func (s Single) Set(n int) Single {
	return Single{digit: mod(n, s.max), max: s.max, signed: s.signed}
}

// Add returns s + other. A Double operand absorbs the digit.
func (s Single) Add(other Value) Value {
	switch o := other.(type) {
	case Single:
		return s.Set(s.digit + o.digit)
	case *Double:
		return o.Add(s)
	}
	return Undefined
}

// Sub returns s - other.
func (s Single) Sub(other Value) Value {
	switch o := other.(type) {
	case Single:
		return s.Set(s.digit - o.digit)
	case *Double:
		if !o.Defined() {
			return Undefined
		}
		return o.composite(s.digit - o.Unsigned())
	}
	return Undefined
}

// Mul returns s * other.
func (s Single) Mul(other Value) Value {
	switch o := other.(type) {
	case Single:
		return s.Set(s.digit * o.digit)
	case *Double:
		return o.Mul(s)
	}
	return Undefined
}

func (s Single) Equals(n int) bool {
	return s.Unsigned() == n || s.Signed() == n
}

func (s Single) Format(radix int) string {
	return strconv.FormatInt(int64(s.Int()), radix)
}

func (s Single) String() string {
	return s.Format(10)
}
