package cpu

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/cpusim/value"
)

// Action performs one execute cycle of an operation. remaining counts down
// from the operation's cycle count to 1.
type Action func(cpu *Cpu, remaining int)

// Operation describes a single instruction.
type Operation struct {
	Opcode  int    // Numeric instruction code.
	Name    string // Mnemonic.
	Cycles  int    // Execute cycles.
	Address bool   // If set, the opcode is followed by an address operand.
	Action  Action // Behaviour of each execute cycle.
}

func (op *Operation) String() string {
	return fmt.Sprintf("%d %s", op.Opcode, op.Name)
}

// Catalog is an instruction set.
type Catalog interface {
	// Operations returns the instructions in table order.
	Operations() []*Operation
	// Halt returns the operation that stops execution.
	Halt() *Operation
	// Unknown returns the fallback for unrecognized opcodes.
	Unknown() *Operation
}

// CatalogId identifies a registered catalog.
type CatalogId string

const (
	CATALOG_3BIT = CatalogId("3bit") // Eight instruction table.
	CATALOG_4BIT = CatalogId("4bit") // Sixteen opcode table.
)

// CatalogBuilder builds a catalog for a numeric geometry; address operand
// cycle counts depend on the address size.
type CatalogBuilder func(space value.Space) Catalog

var catalogs = map[CatalogId]CatalogBuilder{}

// RegisterCatalog makes a catalog available by identifier. It is expected
// to be called from init().
func RegisterCatalog(id CatalogId, build CatalogBuilder) {
	if _, ok := catalogs[id]; ok {
		panic(fmt.Sprintf("cpu: catalog %v registered twice", id))
	}
	catalogs[id] = build
}

// Catalogs returns the registered identifiers in sorted order.
func Catalogs() iter.Seq[CatalogId] {
	return slices.Values(slices.Sorted(maps.Keys(catalogs)))
}

// LookupCatalog resolves an identifier into a validated catalog.
func LookupCatalog(id CatalogId, space value.Space) (cat Catalog, err error) {
	build, ok := catalogs[CatalogId(strings.ToLower(string(id)))]
	if !ok {
		err = ErrCatalogUnknown(id)
		return
	}

	cat = build(space)
	err = ValidateCatalog(cat)
	if err != nil {
		err = errors.Join(ErrCatalogUnknown(id), err)
		cat = nil
		return
	}

	return
}

// ValidateCatalog checks that a catalog can drive a Cpu.
func ValidateCatalog(cat Catalog) (err error) {
	if cat == nil {
		err = ErrCatalogEmpty
		return
	}

	halt := cat.Halt()
	unknown := cat.Unknown()
	if halt == nil {
		err = ErrCatalogHalt
		return
	}
	if unknown == nil {
		err = ErrCatalogUnknownOp
		return
	}

	seen := make(map[int]*Operation, len(cat.Operations()))
	for _, op := range slices.Concat(cat.Operations(), []*Operation{unknown}) {
		if op.Cycles < 1 || op.Action == nil {
			err = ErrCatalogOperation(op.Name)
			return
		}
		if other, ok := seen[op.Opcode]; ok && op != unknown {
			err = errors.Join(ErrCatalogDuplicate, ErrCatalogOperation(other.Name), ErrCatalogOperation(op.Name))
			return
		}
		seen[op.Opcode] = op
	}

	if !slices.Contains(cat.Operations(), halt) {
		err = ErrCatalogHalt
		return
	}

	return
}

// FindOpcode scans a catalog for an opcode.
func FindOpcode(cat Catalog, code int) (op *Operation, ok bool) {
	for _, op = range cat.Operations() {
		if op.Opcode == code {
			ok = true
			return
		}
	}
	op = cat.Unknown()
	return
}

// FindName scans a catalog for a mnemonic, ignoring case.
func FindName(cat Catalog, name string) (op *Operation, ok bool) {
	for _, op = range cat.Operations() {
		if strings.EqualFold(op.Name, name) {
			ok = true
			return
		}
	}
	op = nil
	return
}

// Table is a Catalog backed by a fixed list of operations.
type Table struct {
	Ops       []*Operation
	HaltOp    *Operation
	UnknownOp *Operation
}

var _ Catalog = (*Table)(nil)

func (t *Table) Operations() []*Operation { return t.Ops }
func (t *Table) Halt() *Operation         { return t.HaltOp }
func (t *Table) Unknown() *Operation      { return t.UnknownOp }
