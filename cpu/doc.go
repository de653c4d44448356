// Package cpu implements the processor and assembler for the axy machine.
//
// The processor is an 8-bit register machine with a 16-bit address space:
// three general-purpose registers (A, X, Y), a program counter, four status
// flags (Zero, Overflow, Halt, Negative), and a flat byte-addressed RAM of
// 4KiB to 64KiB. Every instruction is one opcode byte followed by zero to
// two operand bytes; all arithmetic wraps modulo 256 and all addressing
// wraps modulo the RAM size.
//
// The assembler is a two-pass translator from mnemonic text to a loadable
// byte stream, supporting labels, equates, and compile-time expression
// evaluation.
package cpu
