package cpu

import (
	"github.com/ezrec/cpusim/value"
)

func init() {
	RegisterCatalog(CATALOG_4BIT, NewCatalog4Bit)
}

// NewCatalog4Bit is the extended table, with subtraction and
// unconditional jumps. Opcodes 10 through 14 are unassigned.
func NewCatalog4Bit(space value.Space) Catalog {
	address := 1 + space.AddressSize

	halt := &Operation{Opcode: 15, Name: "halt", Cycles: 1, Action: actNone}

	return &Table{
		Ops: []*Operation{
			{Opcode: 0, Name: "load", Cycles: address, Address: true, Action: addressed(actLoad)},
			{Opcode: 1, Name: "sto", Cycles: address, Address: true, Action: addressed(actStore)},
			{Opcode: 2, Name: "set", Cycles: 1, Action: actSet},
			{Opcode: 3, Name: "in", Cycles: 1, Action: actIn},
			{Opcode: 4, Name: "out", Cycles: 1, Action: actOut},
			{Opcode: 5, Name: "add", Cycles: 1, Action: actAdd},
			{Opcode: 6, Name: "sub", Cycles: 1, Action: actSub},
			{Opcode: 7, Name: "jmp", Cycles: address, Address: true, Action: jumpIf(nil)},
			{Opcode: 8, Name: "jpz", Cycles: address, Address: true, Action: jumpIf(ifFlag(FLAG_ZERO))},
			{Opcode: 9, Name: "jpo", Cycles: address, Address: true, Action: jumpIf(ifFlag(FLAG_OVERFLOW))},
			halt,
		},
		HaltOp:    halt,
		UnknownOp: &Operation{Opcode: 16, Name: "unknown", Cycles: 1, Action: actNone},
	}
}
