package io

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/cpusim/value"
)

var space8x2 = value.Space{Max: 8, AddressSize: 2}

func values(n ...int) (vs []value.Value) {
	for _, v := range n {
		vs = append(vs, space8x2.Single(v, false))
	}
	return
}

func formats(seq []value.Value) (text []string) {
	for _, v := range seq {
		text = append(text, v.String())
	}
	return
}

func TestRom_Receive(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: values(1, 2, 3)}

	assert.Equal([]string{"1", "2", "3"}, formats(slices.Collect(rom.Receive())))
	assert.Empty(slices.Collect(rom.Receive()))

	rom.Rewind()
	v, ok := ReceiveOne(rom)
	assert.True(ok)
	assert.Equal(1, v.Unsigned())
	assert.Equal([]string{"2", "3"}, formats(slices.Collect(rom.Receive())))
}

func TestRom_Receive_EarlyStop(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: values(1, 2, 3, 4)}

	count := 0
	for range rom.Receive() {
		count++
		if count == 2 {
			break
		}
	}

	assert.Equal(2, count)
	assert.Equal([]string{"3", "4"}, formats(slices.Collect(rom.Receive())))
}

func TestRom_Send(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	assert.ErrorIs(rom.Send(value.Undefined), ErrChannelReadOnly)
}

func TestTape_Receive(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{
		Space: space8x2,
		Input: strings.NewReader("3\n?\n-1\nfoo\n"),
	}

	v, ok := ReceiveOne(tape)
	assert.True(ok)
	assert.Equal("3", v.String())

	assert.Equal([]string{"?", "-1", "?"}, formats(slices.Collect(tape.Receive())))

	_, ok = ReceiveOne(tape)
	assert.False(ok)

	tape.Rewind()
	_, ok = ReceiveOne(tape)
	assert.False(ok)
}

func TestTape_Send(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	tape := &Tape{Space: space8x2, Radix: 2, Output: &buf}

	for _, v := range values(5, 1) {
		assert.NoError(tape.Send(v))
	}
	assert.NoError(tape.Send(value.Undefined))
	assert.NoError(tape.Send(space8x2.Double(20)))
	assert.Equal("101\n1\n?\n10100\n", buf.String())

	empty := &Tape{}
	assert.ErrorIs(empty.Send(value.Undefined), ErrChannelClosed)
	assert.Empty(slices.Collect(empty.Receive()))
}

func TestTemporary(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 3}

	for _, v := range values(1, 2, 3) {
		assert.NoError(temp.Send(v))
	}
	assert.ErrorIs(temp.Send(value.Undefined), ErrChannelFull)
	assert.Equal(3, temp.Size)

	v, ok := ReceiveOne(temp)
	assert.True(ok)
	assert.Equal(1, v.Unsigned())

	assert.NoError(temp.Send(value.Undefined))
	assert.Equal([]string{"2", "3", "?"}, slices.Collect(ReceiveAsString(temp, 10)))
	assert.Equal(0, temp.Size)

	assert.NoError(temp.Send(space8x2.Single(4, false)))
	temp.Rewind()
	_, ok = ReceiveOne(temp)
	assert.False(ok)
}
