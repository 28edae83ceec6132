package value

import (
	"strconv"
	"strings"
)

// Double is an address-width value of one or two digits, most significant
// first. Individual digits may be undefined while an address is assembled.
type Double struct {
	max    int
	digits []Value
}

var _ Value = (*Double)(nil)

// Width is the number of digits.
func (d *Double) Width() int {
	return len(d.digits)
}

// Limit is the number of distinct composite values, max^width.
func (d *Double) Limit() int {
	limit := 1
	for range d.digits {
		limit *= d.max
	}
	return limit
}

// Defined is true when every digit holds data.
func (d *Double) Defined() bool {
	for _, digit := range d.digits {
		if digit.IsUndefined() {
			return false
		}
	}
	return true
}

func (d *Double) IsUndefined() bool {
	return !d.Defined()
}

// Unsigned returns the composite of the digits, or 0 if any is undefined.
func (d *Double) Unsigned() int {
	if !d.Defined() {
		return 0
	}

	n := 0
	for _, digit := range d.digits {
		n = n*d.max + digit.Unsigned()
	}
	return n
}

// Signed is the same as Unsigned; addresses have no sign.
func (d *Double) Signed() int {
	return d.Unsigned()
}

func (d *Double) Int() int {
	return d.Unsigned()
}

// Digit returns digit i, 0 being the most significant.
func (d *Double) Digit(i int) Value {
	return d.digits[i]
}

// SetDigit replaces digit i. Defined values are reduced into digit range.
func (d *Double) SetDigit(i int, v Value) {
	if v.IsUndefined() {
		d.digits[i] = Undefined
		return
	}
	d.digits[i] = Single{digit: mod(v.Unsigned(), d.max), max: d.max}
}

// Set replaces the composite value in place with n, wrapped into range.
func (d *Double) Set(n int) *Double {
	n = mod(n, d.Limit())
	for i := len(d.digits) - 1; i >= 0; i-- {
		d.digits[i] = Single{digit: n % d.max, max: d.max}
		n /= d.max
	}
	return d
}

// Assign copies v into d. A Double is copied digit for digit, an undefined
// value clears every digit, a Single becomes the composite value.
func (d *Double) Assign(v Value) {
	switch o := v.(type) {
	case *Double:
		if o.Width() == d.Width() {
			copy(d.digits, o.digits)
			return
		}
	case Single:
		d.Set(o.Unsigned())
		return
	}

	if v.IsUndefined() {
		for i := range d.digits {
			d.digits[i] = Undefined
		}
		return
	}

	d.Set(v.Unsigned())
}

// Clone returns an independent copy.
func (d *Double) Clone() *Double {
	return &Double{
		max:    d.max,
		digits: append([]Value(nil), d.digits...),
	}
}

// GetAndAdvance returns a snapshot of d, then increments d by one. The
// carry propagates from the least significant digit; the largest value wraps
// to zero. An undefined digit absorbs the carry and stays undefined.
func (d *Double) GetAndAdvance() *Double {
	snapshot := d.Clone()

	for i := len(d.digits) - 1; i >= 0; i-- {
		digit := d.digits[i]
		if digit.IsUndefined() {
			break
		}
		next := digit.Unsigned() + 1
		if next < d.max {
			d.digits[i] = Single{digit: next, max: d.max}
			break
		}
		d.digits[i] = Single{digit: 0, max: d.max}
	}

	return snapshot
}

// composite builds a new Double of the same geometry holding n.
func (d *Double) composite(n int) *Double {
	out := &Double{max: d.max, digits: make([]Value, len(d.digits))}
	return out.Set(n)
}

func (d *Double) Add(other Value) Value {
	if d.IsUndefined() || other.IsUndefined() {
		return Undefined
	}
	return d.composite(d.Unsigned() + other.Unsigned())
}

func (d *Double) Sub(other Value) Value {
	if d.IsUndefined() || other.IsUndefined() {
		return Undefined
	}
	return d.composite(d.Unsigned() - other.Unsigned())
}

func (d *Double) Mul(other Value) Value {
	if d.IsUndefined() || other.IsUndefined() {
		return Undefined
	}
	return d.composite(d.Unsigned() * other.Unsigned())
}

func (d *Double) Equals(n int) bool {
	return d.Defined() && d.Unsigned() == n
}

// Format renders the composite in radix. If any digit is undefined each
// digit is rendered on its own, with UNSET for the missing ones.
func (d *Double) Format(radix int) string {
	if d.Defined() {
		return strconv.FormatInt(int64(d.Unsigned()), radix)
	}

	var sb strings.Builder
	for _, digit := range d.digits {
		sb.WriteString(digit.Format(radix))
	}
	return sb.String()
}

func (d *Double) String() string {
	return d.Format(10)
}
