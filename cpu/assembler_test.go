package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/cpusim/value"
)

func newAssembler() *Assembler {
	return &Assembler{Space: space8x2, Catalog: NewCatalog3Bit(space8x2)}
}

func formatImage(image []value.Value) (text []string) {
	for _, v := range image {
		text = append(text, v.String())
	}
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := newAssembler()

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("8", asm.Equate["VALUE_MAX"])
	assert.Equal("2", asm.Equate["ADDRESS_SIZE"])
	assert.Equal("64", asm.Equate["MEMORY_LIMIT"])
	assert.Equal("7", asm.Equate["OP_HALT"])
	assert.Equal("6", asm.Equate["OP_JPZ"])
}

func TestAssemblerProgram(t *testing.T) {
	assert := assert.New(t)

	asm := newAssembler()

	program := []string{
		"; count down",
		".equ SEVEN 7",
		"start: in",
		"       sto $(SEVEN - 1) ; scratch",
		"       jpz start",
		"data:  ? 3 -1",
		"       halt",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(0, asm.Label["start"])
	assert.Equal(7, asm.Label["data"])

	assert.Equal(5, len(prog.Opcodes))
	assert.Equal(Opcode{LineNo: 3, Address: 0, Words: []string{"in"}, Values: []value.Value{space8x2.Single(3, false)}}, prog.Opcodes[0])
	assert.Equal([]string{"sto", "6"}, prog.Opcodes[1].Words)
	assert.Equal("start", prog.Opcodes[2].LinkLabel)
	assert.Equal(4, prog.Opcodes[2].Address)

	expected := []string{
		"3",
		"0", "0", "6",
		"6", "0", "0",
		"?", "3", "-1",
		"7",
	}
	assert.Equal(expected, formatImage(prog.Image()))
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := newAssembler()
	asm.Predefine("TARGET", "13")
	asm.Predefine("TARGET", "21")

	prog, err := asm.Parse(strings.NewReader("load TARGET\nOP_OUT\n$(VALUE_MAX - 1)"))
	assert.NoError(err)
	assert.Equal([]string{"1", "2", "5", "2", "7"}, formatImage(prog.Image()))
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source string
		lineno int
		err    error
	}){
		{"invalid", "in\nbogus", 2, ErrOpcodeInvalid},
		{"missing", "sto", 1, ErrOpcodeValueMissing},
		{"extra", "sto 1 2", 1, ErrOpcodeExtraArgs},
		{"extra_none", "out 1", 1, ErrOpcodeExtraArgs},
		{"label_missing", "in\njpz nowhere", 2, ErrLabelMissing("nowhere")},
		{"label_duplicate", "a:\na:", 2, ErrLabelDuplicate},
		{"range", "sto 64", 1, ErrOperandRange(64)},
		{"equ_syntax", ".equ A", 1, ErrEquateSyntax},
		{"equ_duplicate", ".equ A 1\n.equ A 2", 2, ErrEquateDuplicate},
		{"data", "3 x", 1, ErrParseNumber("x")},
		{"expression", "$('a')", 1, ErrParseExpression("'a'")},
	}

	for _, entry := range table {
		asm := newAssembler()
		_, err := asm.Parse(strings.NewReader(entry.source))
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}

	asm := newAssembler()
	_, err := asm.Parse(strings.NewReader("$(1 +)"))
	assert.Error(err)
}

func TestAssemblerImageFull(t *testing.T) {
	assert := assert.New(t)

	space := value.Space{Max: 2, AddressSize: 1}
	asm := &Assembler{Space: space, Catalog: NewCatalog3Bit(space)}

	_, err := asm.Parse(strings.NewReader("1\n1\n1"))
	assert.ErrorIs(err, ErrImageFull)
}
