package emulator

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/cpusim/config"
	"github.com/ezrec/cpusim/cpu"
	cio "github.com/ezrec/cpusim/io"
	"github.com/ezrec/cpusim/value"
)

func newEmulator(t *testing.T, conf config.Config) *Emulator {
	emu, err := NewEmulator(conf)
	require.NoError(t, err)
	return emu
}

func conf4Bit() config.Config {
	conf := config.Default()
	conf.ValueMax = 16
	conf.Catalog = cpu.CATALOG_4BIT
	conf.MemorySize = 32
	return conf
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, config.Default())
	assert.False(emu.Verbose)
	assert.Equal(0, emu.Steps())
	assert.Equal(0, emu.LineNo())

	defines := make(map[string]string)
	for key, v := range emu.Defines() {
		defines[key] = v
	}
	assert.Equal("16", defines["MEMORY_SIZE"])

	conf := config.Default()
	conf.AddressSize = 0
	_, err := NewEmulator(conf)
	assert.Error(err)
}

func doRunTape(emu *Emulator, program []string, input string, t *testing.T) (output string) {
	assert := assert.New(t)

	var buf bytes.Buffer
	emu.Input = &cio.Tape{Space: emu.Config.Space(), Input: strings.NewReader(input)}
	emu.Output = &cio.Tape{Space: emu.Config.Space(), Radix: emu.Config.Radix, Output: &buf}

	err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	_, err = emu.Run(context.Background(), 1000)
	assert.NoError(err)
	assert.True(emu.Halted())

	output = buf.String()
	return
}

func TestEmulatorEcho(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, config.Default())
	program := []string{
		"in",
		"out",
		"in",
		"out",
		"in",
		"out",
		"halt",
	}

	output := doRunTape(emu, program, "3\n-2\n?\n", t)
	assert.Equal("3\n-2\n?\n", output)
}

func TestEmulatorAdd(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, config.Default())
	program := []string{
		"in",
		"set",
		"in",
		"add",
		"out",
		"jpz zero",
		"halt",
		"zero: in",
		"out",
		"halt",
	}

	assert.Equal("5\n", doRunTape(emu, program, "2\n3\n", t))
	assert.Equal("0\n7\n", doRunTape(emu, program, "4\n4\n7\n", t))
}

func TestEmulatorSubtract(t *testing.T) {
	assert := assert.New(t)

	conf := conf4Bit()
	conf.Radix = 16
	emu := newEmulator(t, conf)
	program := []string{
		".equ COUNT 3",
		"loop: load count",
		"      out",
		"      set",
		"      load one",
		"      set",
		"      load count",
		"      sub",
		"      sto count",
		"      jpz done",
		"      jmp loop",
		"done: out",
		"      halt",
		"one:  1",
		"count: COUNT",
	}

	assert.Equal("3\n2\n1\n0\n", doRunTape(emu, program, "", t))
}

func TestEmulatorLoadImage(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, config.Default())
	emu.Input = &cio.Rom{Data: []value.Value{emu.Config.Space().Single(5, false)}}

	assert.NoError(emu.LoadImage(strings.NewReader("3\n2\n7\n")))

	steps, err := emu.Run(context.Background(), 0)
	assert.NoError(err)
	assert.Equal(9, steps)

	out := emu.Output.(*cio.Temporary)
	assert.Equal([]string{"5"}, slices.Collect(cio.ReceiveAsString(out, 10)))

	steps, err = emu.Run(context.Background(), 0)
	assert.NoError(err)
	assert.Equal(0, steps)

	emu.Reset()
	assert.False(emu.Halted())
	emu.View(func(machine *cpu.Cpu) {
		assert.Equal(3, machine.Memory(0).Unsigned())
		assert.Equal(5, machine.In().Unsigned())
	})
}

func TestEmulatorLineNo(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, config.Default())
	program := []string{
		"; header",
		"in",
		"sto 9",
		"halt",
	}
	assert.NoError(emu.Assemble(strings.NewReader(strings.Join(program, "\n"))))

	var lines []int
	for {
		_, done, err := emu.Tick()
		assert.NoError(err)
		lines = append(lines, emu.LineNo())
		if done {
			break
		}
	}

	assert.Equal([]int{2, 2, 2, 3, 3, 3, 3, 3, 4, 4, 4}, lines)
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, config.Default())
	emu.Output = &cio.Temporary{Capacity: 1}

	program := []string{
		"out",
		"out",
		"halt",
	}
	assert.NoError(emu.Assemble(strings.NewReader(strings.Join(program, "\n"))))

	_, err := emu.Run(context.Background(), 0)
	assert.ErrorIs(err, cio.ErrChannelFull)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(2, runtime.LineNo)
		assert.Equal(1, runtime.Address)
		assert.Contains(runtime.Error(), "line 2")
	}

	emu.Output = &cio.Temporary{Capacity: 1}
	assert.NoError(emu.LoadImage(strings.NewReader("2\n2\n7\n")))
	_, err = emu.Run(context.Background(), 0)
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(0, runtime.LineNo)
		assert.Equal(1, runtime.Address)
		assert.Contains(runtime.Error(), "address 1")
	}
}

func TestEmulatorAssembleError(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, config.Default())
	err := emu.Assemble(strings.NewReader("in\nfoo"))
	assert.ErrorIs(err, cpu.ErrOpcodeInvalid)
}

func TestEmulatorRunCancel(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, conf4Bit())
	assert.NoError(emu.Assemble(strings.NewReader("loop: jmp loop")))

	steps, err := emu.Run(context.Background(), 100)
	assert.NoError(err)
	assert.Equal(100, steps)
	assert.False(emu.Halted())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	steps, err = emu.Run(ctx, 0)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(0, steps)
}

func TestEmulatorConcurrent(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, conf4Bit())
	assert.NoError(emu.Assemble(strings.NewReader("loop: jmp loop")))

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 100 {
				emu.Tick()
			}
		}()
		go func() {
			defer wg.Done()
			for range 100 {
				emu.View(func(machine *cpu.Cpu) {
					_ = machine.String()
				})
				emu.LineNo()
			}
		}()
	}
	wg.Wait()

	assert.Equal(400, emu.Steps())
}
