package cpu

import (
	"bufio"
	"io"
	"iter"

	"github.com/ezrec/cpusim/value"
)

// Opcode is one assembled source line.
type Opcode struct {
	LineNo    int           // Source line number.
	Address   int           // Memory address of the first value.
	Words     []string      // Source words, after equate substitution.
	Values    []value.Value // Memory cells generated by the line.
	LinkLabel string        // Label resolved into the address operand.
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the source line that generated the cell at addr.
func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if addr >= op.Address && addr < op.Address+len(op.Values) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  addr - op.Address,
			}
			break
		}
	}

	return
}

// Image returns the memory image of the program, starting at address 0.
// Gaps are undefined.
func (prog *Program) Image() (image []value.Value) {
	for addr, v := range prog.Values() {
		for len(image) < addr {
			image = append(image, value.Undefined)
		}
		image = append(image, v)
	}

	return
}

// Values iterates the memory cells of the program by address.
func (prog *Program) Values() iter.Seq2[int, value.Value] {
	return func(yield func(addr int, v value.Value) bool) {
		for _, op := range prog.Opcodes {
			for n, v := range op.Values {
				if !yield(op.Address+n, v) {
					return
				}
			}
		}
	}
}

// ParseImage reads a load file: one cell per line, starting at address 0.
// Lines that are empty, start with '?' or do not hold an integer load as
// undefined.
func ParseImage(r io.Reader, space value.Space) (image []value.Value, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		image = append(image, space.Parse(scanner.Text()))
	}
	err = scanner.Err()

	return
}
