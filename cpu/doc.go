// Package cpu implements the accumulator machine and its assembler.
//
// The CPU has an accumulator (A), a program counter (BZ), a register file
// of DATA_REGISTERS general-purpose registers (Rx), and a program image
// (RAM) of (opcode, operand) cells. The width of A and Rx is the type
// parameter V, so the same engine runs 16, 32 or 64 bit integer or
// floating point programs.
//
// The assembler is two-pass: lines are tokenized and checked first, then
// label declarations are collected and label references resolved to RAM
// addresses.
package cpu
