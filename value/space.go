package value

import (
	"log"
	"math"
	"strconv"
	"strings"
)

// Space is the numeric geometry shared by every value of one machine.
type Space struct {
	Max         int // Exclusive limit of a single digit.
	AddressSize int // Digits in an address, 1 or 2.
}

// Validate checks the geometry invariants.
func (sp Space) Validate() (err error) {
	switch {
	case sp.Max < 1:
		err = ErrSpaceMax
	case sp.AddressSize != 1 && sp.AddressSize != 2:
		err = ErrSpaceAddress
	case sp.AddressSize == 2 && sp.Max > math.MaxInt32:
		err = ErrSpaceLimit
	}
	return
}

// Limit is the number of addressable cells, Max^AddressSize.
func (sp Space) Limit() int {
	limit := 1
	for range sp.AddressSize {
		limit *= sp.Max
	}
	return limit
}

// Single creates a digit holding n modulo Max.
func (sp Space) Single(n int, signed bool) Single {
	return Single{digit: mod(n, sp.Max), max: sp.Max, signed: signed}
}

// Double creates an address holding n modulo Limit().
func (sp Space) Double(n int) *Double {
	return sp.Address().Set(n)
}

// Address creates an address with every digit undefined.
func (sp Space) Address() *Double {
	d := &Double{max: sp.Max, digits: make([]Value, sp.AddressSize)}
	for i := range d.digits {
		d.digits[i] = Undefined
	}
	return d
}

// Parse reads one line of a memory image. Empty lines, lines starting with
// UNSET and anything that is not an integer are Undefined. Negative literals
// keep the signed interpretation. Integers outside the digit range wrap,
// and the wrap is logged.
func (sp Space) Parse(line string) Value {
	line = strings.TrimSpace(line)
	if len(line) == 0 || strings.HasPrefix(line, UNSET) {
		return Undefined
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return Undefined
	}

	v := sp.Single(n, n < 0)
	if v.Int() != n {
		log.Printf("value: %v wrapped to %v", n, v)
	}

	return v
}
