package emulator

import (
	"github.com/ezrec/cpusim/translate"
)

var f = translate.From

// ErrRuntime locates a runtime error in the program, by source line when
// the program was assembled, and by memory address otherwise.
type ErrRuntime struct {
	LineNo  int // Source line, or 0 for a load image.
	Address int // Address of the executing operation.
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("address %d: %v", err.Address, err.Err)
	}
	return f("line %d: %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
