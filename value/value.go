package value

// UNSET is the marker rendered for an undefined digit.
const UNSET = "?"

// Value is a single cell of machine state.
type Value interface {
	// IsUndefined is true if the cell, or any of its digits, holds no data.
	IsUndefined() bool
	// Signed returns the signed interpretation. Zero if undefined.
	Signed() int
	// Unsigned returns the unsigned interpretation. Zero if undefined.
	Unsigned() int
	// Int returns the interpretation selected when the value was created.
	Int() int
	// Add, Sub and Mul return a new value; the receiver is unchanged.
	Add(other Value) Value
	Sub(other Value) Value
	Mul(other Value) Value
	// Equals matches n against both the signed and unsigned interpretation.
	Equals(n int) bool
	// Format renders the value in the given radix.
	Format(radix int) string
	String() string
}

type undefined struct{}

// Undefined is the shared value of uninitialized storage.
var Undefined Value = undefined{}

func (undefined) IsUndefined() bool { return true }
func (undefined) Signed() int       { return 0 }
func (undefined) Unsigned() int     { return 0 }
func (undefined) Int() int          { return 0 }
func (undefined) Add(Value) Value   { return Undefined }
func (undefined) Sub(Value) Value   { return Undefined }
func (undefined) Mul(Value) Value   { return Undefined }
func (undefined) Equals(int) bool   { return false }
func (undefined) Format(int) string { return UNSET }
func (undefined) String() string    { return UNSET }

// mod is the euclidean modulus, always in [0, m).
func mod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}
