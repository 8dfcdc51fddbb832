// Package cpu implements the microprocessor and assembler for a
// transputer-class stack machine.
//
// The CPU consists of a three-deep evaluation stack (A, B and C registers),
// an instruction pointer, an operand register that accumulates multi-byte
// operands through prefix instructions, a workspace descriptor addressing
// word-aligned local storage, and a status register. Byte-addressed memory
// is laid out relative to a configured origin. Floating-point operations are
// dispatched to the fpu package through the FPENTRY operation.
//
// The assembler encodes textual instructions into the prefix-chained byte
// stream that the CPU fetches and decodes.
package cpu
