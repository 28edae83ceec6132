// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"io"
	"iter"
	"maps"
	"strconv"
	"sync"

	"github.com/ezrec/cpusim/config"
	"github.com/ezrec/cpusim/cpu"
	cio "github.com/ezrec/cpusim/io"
)

const (
	OUTPUT_CAPACITY = 1024 // Values kept when no output channel is set.
)

// Mnemonics of the operations that move values through the buffers.
const (
	MNEMONIC_IN  = "in"
	MNEMONIC_OUT = "out"
)

// Emulator state. Cpu + program listing + IO channels.
//
// Every method takes the emulator lock, so a user interface and a batch
// runner may share one Emulator.
type Emulator struct {
	Verbose bool         // If set, enables verbose logging.
	Program *cpu.Program // Listing of the loaded program, if assembled.
	Config  config.Config

	Input  cio.Channel // Source of the input buffer.
	Output cio.Channel // Sink of the output buffer.

	mutex     sync.Mutex
	cpu       *cpu.Cpu
	opAddress int // Address of the last fetched operation.
}

// NewEmulator creates a new emulator for the configuration.
func NewEmulator(conf config.Config) (emu *Emulator, err error) {
	machine, err := conf.NewCpu()
	if err != nil {
		return
	}

	emu = &Emulator{
		Config:  conf,
		Program: &cpu.Program{},
		Input:   &cio.Rom{},
		Output:  &cio.Temporary{Capacity: OUTPUT_CAPACITY},
		cpu:     machine,
	}

	return
}

// Defines returns an iterator over all of the assembler predefines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"MEMORY_SIZE": strconv.Itoa(emu.Config.MemorySize),
		"RADIX":       strconv.Itoa(emu.Config.Radix),
	})
}

// View calls fn with the Cpu while holding the emulator lock.
// fn must not retain the Cpu.
func (emu *Emulator) View(fn func(machine *cpu.Cpu)) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	fn(emu.cpu)
}

// Assemble parses source, and loads the program image into memory.
func (emu *Emulator) Assemble(source io.Reader) (err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	asm := &cpu.Assembler{
		Verbose: emu.Verbose,
		Space:   emu.cpu.Space(),
		Catalog: emu.cpu.Catalog(),
	}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(source)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.reset()

	return
}

// LoadImage reads a load file, and loads it into memory.
func (emu *Emulator) LoadImage(image io.Reader) (err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	values, err := cpu.ParseImage(image, emu.cpu.Space())
	if err != nil {
		return
	}

	emu.Program = &cpu.Program{
		Opcodes: []cpu.Opcode{{Values: values}},
	}
	emu.reset()

	return
}

// Reset the machine, reloading the program and the first input value.
func (emu *Emulator) Reset() {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	emu.reset()
}

func (emu *Emulator) reset() {
	emu.cpu.Verbose = emu.Verbose
	emu.cpu.Reset()
	emu.cpu.Load(emu.Program.Image())
	emu.opAddress = 0

	emu.Input.Rewind()
	emu.refill()
}

// refill moves the next input value into the input buffer.
func (emu *Emulator) refill() {
	v, ok := cio.ReceiveOne(emu.Input)
	if ok {
		emu.cpu.SetIn(v)
	}
}

// Steps returns the total steps since a reset.
func (emu *Emulator) Steps() int {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return emu.cpu.Steps()
}

// Halted is true once the program has executed halt.
func (emu *Emulator) Halted() bool {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return emu.cpu.Halted()
}

// LineNo returns the source line of the executing operation, or 0 if
// unknown.
func (emu *Emulator) LineNo() int {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	dbg := emu.Program.Debug(emu.opAddress)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single step of the emulator. done is set once the
// machine has halted.
func (emu *Emulator) Tick() (changed cpu.Dirty, done bool, err error) {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	return emu.tick()
}

func (emu *Emulator) tick() (changed cpu.Dirty, done bool, err error) {
	machine := emu.cpu
	machine.Verbose = emu.Verbose

	changed, ok := machine.Tick()
	if !ok {
		done = true
		return
	}

	switch machine.Phase() {
	case cpu.PHASE_FETCH:
		emu.opAddress = machine.MAR().Unsigned()
	case cpu.PHASE_EXECUTE:
		if machine.Remaining() > 0 {
			break
		}
		switch machine.Operation().Name {
		case MNEMONIC_IN:
			emu.refill()
		case MNEMONIC_OUT:
			err = emu.Output.Send(machine.Out())
		}
	}

	if err != nil {
		lineno := 0
		if dbg := emu.Program.Debug(emu.opAddress); dbg.Opcode != nil {
			lineno = dbg.LineNo
		}
		err = &ErrRuntime{LineNo: lineno, Address: emu.opAddress, Err: err}
		return
	}

	done = machine.Halted()

	return
}

// Run steps until halt, count steps (if count > 0), or until ctx is done.
func (emu *Emulator) Run(ctx context.Context, count int) (steps int, err error) {
	for count <= 0 || steps < count {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		emu.mutex.Lock()
		before := emu.cpu.Steps()
		_, done, err = emu.tick()
		steps += emu.cpu.Steps() - before
		emu.mutex.Unlock()
		if err != nil || done {
			return
		}
	}

	return
}
