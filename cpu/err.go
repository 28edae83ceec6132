package cpu

import (
	"errors"

	"github.com/ezrec/cpusim/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrMemorySize       = errors.New(f("memory size out of range"))
	ErrCatalogEmpty     = errors.New(f("catalog missing"))
	ErrCatalogHalt      = errors.New(f("catalog halt invalid"))
	ErrCatalogUnknownOp = errors.New(f("catalog unknown operation missing"))
	ErrCatalogDuplicate = errors.New(f("catalog opcode duplicated"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrImageFull          = errors.New(f("program exceeds memory"))
)

type ErrCatalogUnknown CatalogId

func (ec ErrCatalogUnknown) Error() string {
	return f("catalog '%v' unknown", string(ec))
}

type ErrCatalogOperation string

func (eo ErrCatalogOperation) Error() string {
	return f("catalog operation '%v' invalid", string(eo))
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrOperandRange int

func (err ErrOperandRange) Error() string {
	return f("operand %v out of address range", int(err))
}
