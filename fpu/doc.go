// Package fpu implements the floating-point unit scaffold of the transputer.
//
// The unit holds a rounding mode and a sticky error flag. Floating-point
// operations reach it through the integer FPENTRY operation, which hands
// over a sub-opcode (an Entry). Only the rounding-mode and error-flag
// entries are implemented; no floating-point value stack is modelled.
package fpu
