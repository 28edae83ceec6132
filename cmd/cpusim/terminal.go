package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/ezrec/cpusim/cpu"
	"github.com/ezrec/cpusim/display"
	"github.com/ezrec/cpusim/emulator"
	cio "github.com/ezrec/cpusim/io"
)

// Interactive keys.
const (
	KEY_QUIT   = 'q'
	KEY_RESET  = 'r'
	KEY_CTRL_C = 0x03
	KEY_CTRL_D = 0x04
)

// rawWriter adds the carriage returns a raw mode terminal no longer does.
type rawWriter struct {
	w io.Writer
}

func (rw *rawWriter) Write(data []byte) (n int, err error) {
	_, err = rw.w.Write(bytes.ReplaceAll(data, []byte("\n"), []byte("\r\n")))
	if err != nil {
		return
	}
	n = len(data)
	return
}

// runInteractive steps the emulator once per key press, redrawing the
// changed tables after every step.
func runInteractive(emu *emulator.Emulator, show *display.Display, ouf io.Writer, count int) (err error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	atexit.Register(func() {
		_ = term.Restore(fd, state)
	})

	screen := &rawWriter{w: os.Stdout}
	if ouf == os.Stdout {
		ouf = screen
	}
	emu.Output = &cio.Tape{Space: emu.Config.Space(), Radix: emu.Config.Radix, Output: ouf}

	watch := &display.Watcher{Display: show, Output: screen}
	refresh := func() {
		emu.View(func(machine *cpu.Cpu) {
			_, err = watch.Refresh(machine)
		})
	}

	refresh()
	if err != nil {
		return
	}

	key := make([]byte, 1)
	for count <= 0 || emu.Steps() < count {
		_, err = os.Stdin.Read(key)
		if err != nil {
			return
		}

		switch key[0] {
		case KEY_QUIT, KEY_CTRL_C, KEY_CTRL_D:
			return
		case KEY_RESET:
			emu.Reset()
		default:
			var done bool
			_, done, err = emu.Tick()
			if err != nil {
				return
			}
			if done {
				fmt.Fprintf(screen, "halted after %d steps\n", emu.Steps())
				refresh()
				return
			}
		}

		fmt.Fprintf(screen, "line %d, step %d\n", emu.LineNo(), emu.Steps())
		refresh()
		if err != nil {
			return
		}
	}

	return
}
