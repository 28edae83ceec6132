package display

import (
	"fmt"
	"io"

	"github.com/ezrec/cpusim/cpu"
)

// REGISTER_GROUPS are the dirty groups shown in the register table.
const REGISTER_GROUPS = cpu.DIRTY_ADDRESS | cpu.DIRTY_ARITHMETIC | cpu.DIRTY_IO

// Watcher redraws the tables whose register groups have changed.
type Watcher struct {
	Display *Display
	Output  io.Writer
	Mask    cpu.Dirty // Groups of interest; every group if zero.
}

// Consume returns the dirty groups of interest, and clears them.
func (w *Watcher) Consume(machine *cpu.Cpu) (dirty cpu.Dirty) {
	mask := w.Mask
	if mask == 0 {
		mask = cpu.DIRTY_ALL
	}

	dirty = machine.Dirty() & mask
	machine.ClearDirty(dirty)

	return
}

// Refresh consumes the dirty groups and redraws the affected tables.
// The register table is always drawn when the machine has stepped.
func (w *Watcher) Refresh(machine *cpu.Cpu) (dirty cpu.Dirty, err error) {
	dirty = w.Consume(machine)

	if dirty.Has(REGISTER_GROUPS) || machine.Stepped() {
		machine.ClearStepped()
		_, err = fmt.Fprintln(w.Output, w.Display.Registers(machine))
		if err != nil {
			return
		}
	}

	if dirty.Has(cpu.DIRTY_MEMORY) {
		_, err = fmt.Fprintln(w.Output, w.Display.Memory(machine))
	}

	return
}
