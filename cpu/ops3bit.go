package cpu

import (
	"github.com/ezrec/cpusim/value"
)

func init() {
	RegisterCatalog(CATALOG_3BIT, NewCatalog3Bit)
}

// NewCatalog3Bit is the default eight instruction table.
//
//	0 sto ADDR   memory[ADDR] = ACC
//	1 load ADDR  ACC = memory[ADDR]
//	2 out        OUT = ACC
//	3 in         ACC = IN
//	4 add        ACC = ACC + B
//	5 set        B = ACC
//	6 jpz ADDR   jump to ADDR if ZERO
//	7 halt
func NewCatalog3Bit(space value.Space) Catalog {
	address := 1 + space.AddressSize

	halt := &Operation{Opcode: 7, Name: "halt", Cycles: 1, Action: actNone}

	return &Table{
		Ops: []*Operation{
			{Opcode: 0, Name: "sto", Cycles: address, Address: true, Action: addressed(actStore)},
			{Opcode: 1, Name: "load", Cycles: address, Address: true, Action: addressed(actLoad)},
			{Opcode: 2, Name: "out", Cycles: 1, Action: actOut},
			{Opcode: 3, Name: "in", Cycles: 1, Action: actIn},
			{Opcode: 4, Name: "add", Cycles: 1, Action: actAdd},
			{Opcode: 5, Name: "set", Cycles: 1, Action: actSet},
			{Opcode: 6, Name: "jpz", Cycles: address, Address: true, Action: jumpIf(ifFlag(FLAG_ZERO))},
			halt,
		},
		HaltOp:    halt,
		UnknownOp: &Operation{Opcode: -1, Name: "unknown", Cycles: 1, Action: actNone},
	}
}
