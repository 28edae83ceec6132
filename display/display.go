// Package display renders the machine state as text tables.
package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/cpusim/cpu"
	"github.com/ezrec/cpusim/value"
)

// Display renders registers and memory in a radix.
type Display struct {
	Radix   int      // Radix of every rendered number.
	Columns int      // Memory cells per row; 8 if unset.
	Sampler *Sampler // If set, undefined values are rendered as noise.
}

func (d *Display) radix() int {
	if d.Radix == 0 {
		return 10
	}
	return d.Radix
}

// Format renders a value.
func (d *Display) Format(v value.Value) string {
	if d.Sampler != nil {
		v = d.Sampler.Sample(v)
	}
	return v.Format(d.radix())
}

// Registers renders the register file, flags and instruction cycle state.
func (d *Display) Registers(machine *cpu.Cpu) string {
	tw := table.NewWriter()
	tw.SetTitle("Registers")
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Register", "Value"})

	for reg := range cpu.Register(cpu.REG_COUNT) {
		tw.AppendRow(table.Row{reg.String(), d.Format(machine.Register(reg))})
	}

	flags := value.UNSET
	mask, ok := machine.Flags.Mask()
	if !ok && d.Sampler != nil {
		mask, ok = d.Sampler.rand.IntN(cpu.FLAG_ALL+1), true
	}
	if ok {
		flags = strconv.FormatInt(int64(mask), d.radix())
	}

	tw.AppendSeparator()
	tw.AppendRow(table.Row{"flags", flags})
	tw.AppendRow(table.Row{"phase", machine.Phase().String()})
	tw.AppendRow(table.Row{"op", machine.Operation().Name})
	tw.AppendRow(table.Row{"cycle", fmt.Sprintf("%v/%v", machine.Remaining(), machine.Total())})

	return tw.Render()
}

// Memory renders the memory array, Columns cells per row.
func (d *Display) Memory(machine *cpu.Cpu) string {
	columns := d.Columns
	if columns < 1 {
		columns = 8
	}

	tw := table.NewWriter()
	tw.SetTitle("Memory")
	tw.SetStyle(table.StyleLight)

	header := table.Row{"Address"}
	for n := range columns {
		header = append(header, "+"+strconv.FormatInt(int64(n), d.radix()))
	}
	tw.AppendHeader(header)

	size := machine.MemorySize()
	for base := 0; base < size; base += columns {
		row := table.Row{strconv.FormatInt(int64(base), d.radix())}
		for addr := base; addr < min(base+columns, size); addr++ {
			row = append(row, d.Format(machine.Memory(addr)))
		}
		tw.AppendRow(row)
	}

	return tw.Render()
}

// Render writes every table to w.
func (d *Display) Render(w io.Writer, machine *cpu.Cpu) (err error) {
	_, err = fmt.Fprintf(w, "%v\n%v\n", d.Registers(machine), d.Memory(machine))
	return
}
