package cpu

import (
	"log"
)

// Phase is a step of the instruction cycle.
type Phase int

//go:generate go tool stringer -linecomment -type=Phase
const (
	PHASE_FETCH   = Phase(0) // fetch
	PHASE_DECODE  = Phase(1) // decode
	PHASE_EXECUTE = Phase(2) // execute
	PHASE_NONE    = Phase(3) // none
)

// phaseAction is the behaviour run on entering each phase.
var phaseAction = [...]func(cpu *Cpu){
	PHASE_FETCH:   (*Cpu).fetch,
	PHASE_DECODE:  (*Cpu).decode,
	PHASE_EXECUTE: (*Cpu).execute,
	PHASE_NONE:    func(cpu *Cpu) {},
}

// Run performs the phase's action on the cpu.
func (ph Phase) Run(cpu *Cpu) {
	phaseAction[ph](cpu)
}

// fetch loads the instruction at PC into IR and advances PC.
func (cpu *Cpu) fetch() {
	cpu.ReadMemory(cpu.PC().GetAndAdvance())
	cpu.SetIR(cpu.MDR())

	cpu.next = PHASE_DECODE
	cpu.remaining = 0
	cpu.total = -1
	cpu.op = cpu.catalog.Unknown()
}

// decode looks up the operation for IR. The countdown is one more than the
// operation's cycles, as the engine decrements it after this phase.
func (cpu *Cpu) decode() {
	ir := cpu.IR()
	if ir.IsUndefined() {
		log.Printf("cpu: undefined opcode at %v", cpu.MAR())
		cpu.op = cpu.catalog.Unknown()
	} else {
		cpu.op = cpu.ByOpcode(ir.Unsigned())
	}

	cpu.total = cpu.op.Cycles + 1
	cpu.remaining = cpu.total
	cpu.next = PHASE_EXECUTE
}

// execute runs one cycle of the operation; the last cycle returns to fetch.
func (cpu *Cpu) execute() {
	cpu.op.Action(cpu, cpu.remaining)
	if cpu.remaining <= 1 {
		cpu.next = PHASE_FETCH
	}
}
