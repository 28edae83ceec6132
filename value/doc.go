// Package value implements the numeric cells of the simulated machine.
//
// A cell is a Single digit in [0, Max), a Double of one or two digits used
// for addresses, or Undefined for storage that has never been written.
// Arithmetic between defined cells yields the wider variant; any undefined
// operand makes the result Undefined.
package value
