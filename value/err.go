package value

import (
	"errors"

	"github.com/ezrec/cpusim/translate"
)

var f = translate.From

var (
	ErrSpaceMax     = errors.New(f("value max must be at least 1"))
	ErrSpaceAddress = errors.New(f("address size must be 1 or 2"))
	ErrSpaceLimit   = errors.New(f("address space too large"))
)
