package cpu

import (
	"iter"
)

// Instruction is a single assembled instruction.
type Instruction struct {
	LineNo int      // Source line of the instruction.
	Index  int      // Index of the instruction within the program.
	Offset int      // Byte offset of the instruction from the program start.
	Words  []string // Instruction words, after equate substitution.
	Bytes  []byte   // Encoded instruction.
}

// Program is an assembled program.
type Program struct {
	Instructions []Instruction
}

// Debug locates the byte at an offset within the program.
type Debug struct {
	*Instruction
	Index int // Index of the byte within the instruction.
}

// Debug returns the instruction containing the byte at offset.
func (prog *Program) Debug(offset int) (dbg Debug) {
	for n, inst := range prog.Instructions {
		if offset >= inst.Offset && offset < inst.Offset+len(inst.Bytes) {
			dbg = Debug{
				Instruction: &prog.Instructions[n],
				Index:       offset - inst.Offset,
			}
			break
		}
	}

	return
}

// Binary returns the encoded program.
func (prog *Program) Binary() (bins []byte) {
	for _, code := range prog.Codes() {
		bins = append(bins, code)
	}

	return
}

// Codes iterates the bytes of the program with their offsets.
func (prog *Program) Codes() iter.Seq2[int, byte] {
	return func(yield func(offset int, code byte) bool) {
		for _, inst := range prog.Instructions {
			for n, code := range inst.Bytes {
				if !yield(inst.Offset+n, code) {
					return
				}
			}
		}
	}
}
