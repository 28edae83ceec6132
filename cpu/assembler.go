package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/cpusim/internal"
	"github.com/ezrec/cpusim/value"
)

// Assembler is a single pass assembler for the register machine.
//
// Source lines hold a mnemonic of the catalog, optionally followed by an
// address operand; a number or `?` as data; `label:` definitions; and
// `.equ NAME VALUE` equates. `$(expr)` is evaluated at assembly time.
type Assembler struct {
	Verbose bool        // If set, verbosely logs the assembler actions.
	Space   value.Space // Numeric geometry of the target.
	Catalog Catalog     // Instruction set of the target.
	Opcode  []Opcode    // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// sysEquate returns the predefined equates for the target.
func (asm *Assembler) sysEquate() map[string]string {
	equ := map[string]string{
		"LINENO":       "0",
		"VALUE_MAX":    strconv.Itoa(asm.Space.Max),
		"ADDRESS_SIZE": strconv.Itoa(asm.Space.AddressSize),
		"MEMORY_LIMIT": strconv.Itoa(asm.Space.Limit()),
	}

	// Mnemonic opcodes, as OP_<NAME>.
	for _, op := range asm.Catalog.Operations() {
		equ["OP_"+strings.ToUpper(op.Name)] = strconv.Itoa(op.Opcode)
	}

	return equ
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (n int, err error) {
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	n = int(v64)
	return
}

// isData is true if the word is a literal cell.
func (asm *Assembler) isData(word string) bool {
	if word == value.UNSET {
		return true
	}
	_, err := asm.valueOf(word)
	return err == nil
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (n int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be mnemonics
			// or labels.
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	for label, addr := range asm.Label {
		pred[label] = starlark.MakeInt(addr)
	}
	err = nil

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	n = int(st_int64)
	return
}

var reParen = regexp.MustCompile(`\$\([^\$]*\)`)

// parseLine parses a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		n, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", n)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentAddress()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// currentAddress gets the address of the next generated cell.
func (asm *Assembler) currentAddress() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Address + len(last.Values)
}

// operand expands an address into digits, most significant first.
func (asm *Assembler) operand(addr int) (digits []value.Value, err error) {
	if addr < 0 || addr >= asm.Space.Limit() {
		err = ErrOperandRange(addr)
		return
	}

	double := asm.Space.Double(addr)
	for n := range double.Width() {
		digits = append(digits, double.Digit(n))
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	err = asm.Space.Validate()
	if err != nil {
		return
	}
	err = ValidateCatalog(asm.Catalog)
	if err != nil {
		return
	}

	asm.Label = make(map[string]int, 16)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Collect(internal.IterSeq2Concat(
		maps.All(asm.sysEquate()),
		maps.All(asm.predefine),
	))

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}

		if asm.currentAddress() > asm.Space.Limit() {
			err = ErrImageFull
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		label := op.LinkLabel
		addr, ok := asm.Label[label]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(label)
			return
		}

		var digits []value.Value
		digits, err = asm.operand(addr)
		if err != nil {
			return
		}
		if len(op.Values) < 1+len(digits) {
			log.Fatalf("Unable to link label '%s' to line %d: %v", label, op.LineNo, op.Words)
		}
		copy(op.Values[len(op.Values)-len(digits):], digits)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var values []value.Value
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	defer func() {
		if len(values) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Address: asm.currentAddress(), Words: words, Values: values, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	// Data cells.
	if asm.isData(words[0]) {
		for _, word := range words {
			if word == value.UNSET {
				values = append(values, value.Undefined)
				continue
			}
			var n int
			n, err = asm.valueOf(word)
			if err != nil {
				values = nil
				return
			}
			values = append(values, asm.Space.Single(n, n < 0))
		}
		return
	}

	op, ok := FindName(asm.Catalog, words[0])
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	code := asm.Space.Single(op.Opcode, false)
	args := words[1:]

	if !op.Address {
		if len(args) > 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		values = []value.Value{code}
		return
	}

	if len(args) == 0 {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > 1 {
		err = ErrOpcodeExtraArgs
		return
	}

	var digits []value.Value
	addr, _err := asm.valueOf(args[0])
	if _err == nil {
		digits, err = asm.operand(addr)
		if err != nil {
			return
		}
	} else {
		label = args[0]
		digits = slices.Repeat([]value.Value{value.Undefined}, asm.Space.AddressSize)
	}

	values = append([]value.Value{code}, digits...)

	return
}
