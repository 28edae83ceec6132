// Package cpu implements the register machine and its assembler.
//
// The machine has an address width program counter (PC), instruction register
// (IR), memory address and data registers (MAR, MDR), an address pointer
// assembled one digit at a time, an accumulator (ACC), a secondary operand
// register (B), and input/output buffers. Each Step performs one phase of the
// fetch, decode and execute cycle, consulting a swappable instruction
// catalog selected when the Cpu is created.
//
// The assembler turns mnemonic source for the active catalog into a memory
// image, supporting labels, equates, and compile-time expression evaluation.
package cpu
