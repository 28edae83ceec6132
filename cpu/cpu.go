package cpu

import (
	"fmt"
	"log"
	"slices"

	"github.com/ezrec/cpusim/value"
)

// Cpu is the simulation context for the register machine.
//
// A Cpu is not safe for concurrent use; callers serialize Step and Load.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	*State // Register and memory file.

	catalog Catalog

	current   Phase      // Phase run by the last step.
	next      Phase      // Phase run by the next step.
	op        *Operation // Operation being executed.
	remaining int        // Execute cycles remaining.
	total     int        // Execute cycles of the operation.

	stepped bool // Set by every successful step.
	steps   int  // Successful steps since reset.

	dumped bool // Catalog has been logged for an unknown opcode.
}

// NewCpu creates a Cpu with size memory cells, executing from catalog.
// The catalog must pass ValidateCatalog, and its halt opcode must fit in a
// single digit.
func NewCpu(space value.Space, size int, catalog Catalog) (cpu *Cpu, err error) {
	err = ValidateCatalog(catalog)
	if err != nil {
		return
	}

	if catalog.Halt().Opcode >= space.Max {
		err = ErrCatalogHalt
		return
	}

	state, err := NewState(space, size)
	if err != nil {
		return
	}

	cpu = &Cpu{
		State:   state,
		catalog: catalog,
	}
	cpu.Reset()

	return
}

// Reset the Cpu to power on state, idle before the first fetch.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.State.Reset()
	cpu.current = PHASE_NONE
	cpu.next = PHASE_FETCH
	cpu.op = cpu.catalog.Unknown()
	cpu.remaining = 0
	cpu.total = -1
	cpu.stepped = false
	cpu.steps = 0
}

// Catalog returns the active instruction set.
func (cpu *Cpu) Catalog() Catalog {
	return cpu.catalog
}

// Phase returns the phase run by the last step.
func (cpu *Cpu) Phase() Phase {
	return cpu.current
}

// NextPhase returns the phase the next step will run.
func (cpu *Cpu) NextPhase() Phase {
	return cpu.next
}

// Operation returns the operation being decoded or executed.
func (cpu *Cpu) Operation() *Operation {
	return cpu.op
}

// Remaining returns the execute cycle countdown.
func (cpu *Cpu) Remaining() int {
	return cpu.remaining
}

// SetRemaining overrides the countdown; an action setting 1 ends its
// operation after the current cycle.
func (cpu *Cpu) SetRemaining(n int) {
	cpu.remaining = n
}

// Total returns the countdown set by the last decode.
func (cpu *Cpu) Total() int {
	return cpu.total
}

// Stepped is true if a step has run since ClearStepped.
func (cpu *Cpu) Stepped() bool {
	return cpu.stepped
}

// ClearStepped resets the Stepped indicator.
func (cpu *Cpu) ClearStepped() {
	cpu.stepped = false
}

// Steps returns the number of successful steps since reset.
func (cpu *Cpu) Steps() int {
	return cpu.steps
}

// Halted is true once the halt operation has executed.
func (cpu *Cpu) Halted() bool {
	return cpu.current == PHASE_EXECUTE && cpu.op == cpu.catalog.Halt()
}

// ByOpcode finds the operation for code. Unknown codes return the catalog's
// unknown operation; the first miss logs the whole table.
func (cpu *Cpu) ByOpcode(code int) (op *Operation) {
	op, ok := FindOpcode(cpu.catalog, code)
	if ok {
		return
	}

	log.Printf("cpu: invalid opcode %v", code)
	if !cpu.dumped {
		cpu.dumped = true
		for _, known := range cpu.catalog.Operations() {
			log.Printf("cpu:   %v", known)
		}
	}

	return
}

// Tick performs a single phase of the instruction cycle, returning the
// register groups it modified. ok is false, and nothing changes, once the
// Cpu has halted.
func (cpu *Cpu) Tick() (changed Dirty, ok bool) {
	if cpu.Halted() {
		return
	}

	cpu.State.changed = 0
	cpu.current = cpu.next
	if cpu.Verbose {
		log.Printf("cpu: %v pc=%v op=%v remaining=%v", cpu.current, cpu.PC(), cpu.op.Name, cpu.remaining)
	}

	cpu.current.Run(cpu)
	cpu.remaining--
	cpu.stepped = true
	cpu.steps++

	changed = cpu.State.changed
	ok = true
	return
}

// Step performs a single phase of the instruction cycle. It returns false,
// without changing state, once the Cpu has halted.
func (cpu *Cpu) Step() bool {
	_, ok := cpu.Tick()
	return ok
}

// StepN steps up to count times, stopping early on halt. It returns the
// number of successful steps.
func (cpu *Cpu) StepN(count int) (steps int) {
	for range count {
		if !cpu.Step() {
			break
		}
		steps++
	}
	return
}

// ReadMemory places addr in MAR and the addressed cell in MDR.
func (cpu *Cpu) ReadMemory(addr value.Value) {
	cpu.SetMAR(addr)
	cpu.SetMDR(cpu.MemoryAt(addr))
}

// WriteMemory places addr in MAR, v in MDR, and writes v to memory.
func (cpu *Cpu) WriteMemory(addr value.Value, v value.Value) {
	cpu.SetMAR(addr)
	cpu.SetMDR(v)
	cpu.SetMemoryAt(addr, v)
}

// ReadPointer reads one digit of an address operand at PC into the pointer.
// With remaining cycles r, digit AddressSize-(r-1) is read, so the most
// significant digit arrives first. Reading digit 0 clears the pointer.
func (cpu *Cpu) ReadPointer(remaining int) {
	size := cpu.Space().AddressSize
	digit := size - (remaining - 1)
	if digit < 0 || digit >= size {
		log.Printf("cpu: pointer read with %v cycles remaining out of range", remaining)
		return
	}

	if digit == 0 {
		cpu.SetPointer(value.Undefined)
	}

	cpu.ReadMemory(cpu.PC().GetAndAdvance())
	cpu.SetPointerDigit(digit, cpu.MDR())
}

// SkipOperand advances PC past an address operand and ends the operation.
func (cpu *Cpu) SkipOperand() {
	for range cpu.Space().AddressSize {
		cpu.PC().GetAndAdvance()
	}
	cpu.SetRemaining(1)
}

// Load writes image into memory starting at address 0. Cells past the end
// of memory are logged and dropped. It returns the number of cells written.
func (cpu *Cpu) Load(image []value.Value) (count int) {
	size := cpu.MemorySize()
	if len(image) > size {
		log.Printf("cpu: image of %v cells truncated to memory size %v", len(image), size)
	}

	for addr, v := range image[:min(len(image), size)] {
		cpu.SetMemory(addr, v)
		count++
	}

	return
}

// String returns the current Cpu state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"phase", "op", "cycle"}
	for reg := range Register(REG_COUNT) {
		regs = append(regs, reg.String())
	}
	regs = append(regs, "flags")

	for _, name := range regs {
		var strval string
		switch name {
		case "phase":
			strval = fmt.Sprintf("%v -> %v", cpu.current, cpu.next)
		case "op":
			strval = cpu.op.String()
		case "cycle":
			strval = fmt.Sprintf("%v/%v", cpu.remaining, cpu.total)
		case "flags":
			strval = cpu.Flags.String()
		default:
			reg := Register(slices.Index(regs, name) - 3)
			strval = cpu.Register(reg).String()
		}
		text += fmt.Sprintf("% 8s: %v\n", name, strval)
	}

	return
}
