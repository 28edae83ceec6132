package cpu

import (
	"log"
	"strings"

	"github.com/ezrec/cpusim/value"
)

// Dirty is a mask of register groups modified since last observed.
type Dirty int

const (
	DIRTY_MEMORY     = Dirty(1 << 0) // Central memory.
	DIRTY_ADDRESS    = Dirty(1 << 1) // MAR, MDR and Pointer.
	DIRTY_ARITHMETIC = Dirty(1 << 2) // ACC and B.
	DIRTY_IO         = Dirty(1 << 3) // Input and output buffers.
	DIRTY_ALL        = DIRTY_MEMORY | DIRTY_ADDRESS | DIRTY_ARITHMETIC | DIRTY_IO
)

var dirtyNames = []string{"memory", "address", "arithmetic", "io"}

// Has is true if any group of mask is dirty.
func (d Dirty) Has(mask Dirty) bool {
	return d&mask != 0
}

func (d Dirty) String() string {
	var names []string
	for n, name := range dirtyNames {
		if d&(1<<n) != 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, "|")
}

// Register names a machine register.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_PC      = Register(0) // pc
	REG_IR      = Register(1) // ir
	REG_MAR     = Register(2) // mar
	REG_MDR     = Register(3) // mdr
	REG_POINTER = Register(4) // pointer
	REG_ACC     = Register(5) // acc
	REG_B       = Register(6) // b
	REG_IN      = Register(7) // in
	REG_OUT     = Register(8) // out

	REG_COUNT = 9 // Number of registers.
)

// Group returns the dirty group a register belongs to. PC and IR are in no
// group.
func (reg Register) Group() (group Dirty) {
	switch reg {
	case REG_MAR, REG_MDR, REG_POINTER:
		group = DIRTY_ADDRESS
	case REG_ACC, REG_B:
		group = DIRTY_ARITHMETIC
	case REG_IN, REG_OUT:
		group = DIRTY_IO
	}
	return
}

// State is the register and memory file.
type State struct {
	space value.Space

	pc      *value.Double
	pointer *value.Double
	reg     [REG_COUNT]value.Value

	memory []value.Value

	Flags Flags // Condition codes.

	dirty   Dirty // Accumulated until cleared by an observer.
	changed Dirty // Groups modified by the current step.
}

// NewState creates a register file with size memory cells.
func NewState(space value.Space, size int) (state *State, err error) {
	err = space.Validate()
	if err != nil {
		return
	}

	if size < 1 || size > space.Limit() {
		err = ErrMemorySize
		return
	}

	state = &State{
		space:  space,
		memory: make([]value.Value, size),
	}
	state.Reset()

	return
}

// Reset returns every register to power on state: PC is zero, all other
// registers and memory are undefined, and every group is marked dirty.
func (s *State) Reset() {
	s.pc = s.space.Double(0)
	s.pointer = s.space.Address()
	for n := range s.reg {
		s.reg[n] = value.Undefined
	}
	s.reg[REG_PC] = s.pc
	s.reg[REG_POINTER] = s.pointer
	s.reg[REG_MAR] = s.space.Address()

	for n := range s.memory {
		s.memory[n] = value.Undefined
	}

	s.Flags.Reset()
	s.mark(DIRTY_ALL)
}

// Space returns the numeric geometry of the machine.
func (s *State) Space() value.Space {
	return s.space
}

func (s *State) mark(group Dirty) {
	s.dirty |= group
	s.changed |= group
}

// Dirty returns the groups modified since they were last cleared.
func (s *State) Dirty() Dirty {
	return s.dirty
}

// ClearDirty clears the given groups once an observer has consumed them.
func (s *State) ClearDirty(mask Dirty) {
	s.dirty &^= mask
}

// Register returns a register by name.
func (s *State) Register(reg Register) value.Value {
	return s.reg[reg]
}

// SetRegister sets a register by name, marking its group dirty.
// PC and Pointer take a copy of the value.
func (s *State) SetRegister(reg Register, v value.Value) {
	switch reg {
	case REG_PC:
		s.pc.Assign(v)
	case REG_POINTER:
		s.pointer.Assign(v)
	default:
		s.reg[reg] = v
	}
	s.mark(reg.Group())
}

// PC is the program counter. It is updated in place.
func (s *State) PC() *value.Double { return s.pc }

// SetPC jumps to v.
func (s *State) SetPC(v value.Value) { s.SetRegister(REG_PC, v) }

func (s *State) IR() value.Value      { return s.reg[REG_IR] }
func (s *State) SetIR(v value.Value)  { s.SetRegister(REG_IR, v) }
func (s *State) MAR() value.Value     { return s.reg[REG_MAR] }
func (s *State) SetMAR(v value.Value) { s.SetRegister(REG_MAR, v) }
func (s *State) MDR() value.Value     { return s.reg[REG_MDR] }
func (s *State) SetMDR(v value.Value) { s.SetRegister(REG_MDR, v) }
func (s *State) Acc() value.Value     { return s.reg[REG_ACC] }
func (s *State) SetAcc(v value.Value) { s.SetRegister(REG_ACC, v) }
func (s *State) B() value.Value       { return s.reg[REG_B] }
func (s *State) SetB(v value.Value)   { s.SetRegister(REG_B, v) }
func (s *State) In() value.Value      { return s.reg[REG_IN] }
func (s *State) SetIn(v value.Value)  { s.SetRegister(REG_IN, v) }
func (s *State) Out() value.Value     { return s.reg[REG_OUT] }
func (s *State) SetOut(v value.Value) { s.SetRegister(REG_OUT, v) }

// Pointer is the address assembled by multi-cycle operations.
func (s *State) Pointer() *value.Double { return s.pointer }

// SetPointer replaces the whole pointer.
func (s *State) SetPointer(v value.Value) { s.SetRegister(REG_POINTER, v) }

// SetPointerDigit replaces digit n of the pointer, 0 being most significant.
func (s *State) SetPointerDigit(n int, v value.Value) {
	s.pointer.SetDigit(n, v)
	s.mark(DIRTY_ADDRESS)
}

// MemorySize is the number of memory cells.
func (s *State) MemorySize() int {
	return len(s.memory)
}

// Memory reads a cell. Out of range reads are logged and return
// value.Undefined.
func (s *State) Memory(addr int) value.Value {
	if addr < 0 || addr >= len(s.memory) {
		log.Printf("cpu: memory read %v out of range (size %v)", addr, len(s.memory))
		return value.Undefined
	}
	return s.memory[addr]
}

// SetMemory writes a cell. Out of range writes are logged and ignored.
func (s *State) SetMemory(addr int, v value.Value) {
	if addr < 0 || addr >= len(s.memory) {
		log.Printf("cpu: memory write %v out of range (size %v)", addr, len(s.memory))
		return
	}
	s.memory[addr] = v
	s.mark(DIRTY_MEMORY)
}

// MemoryAt reads the cell addressed by a value. An undefined address reads
// as undefined.
func (s *State) MemoryAt(addr value.Value) value.Value {
	if addr.IsUndefined() {
		log.Printf("cpu: memory read at undefined address %v", addr)
		return value.Undefined
	}
	return s.Memory(addr.Unsigned())
}

// SetMemoryAt writes the cell addressed by a value. Writes to an undefined
// address are ignored.
func (s *State) SetMemoryAt(addr value.Value, v value.Value) {
	if addr.IsUndefined() {
		log.Printf("cpu: memory write at undefined address %v", addr)
		return
	}
	s.SetMemory(addr.Unsigned(), v)
}
