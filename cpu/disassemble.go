package cpu

import (
	"fmt"
	"iter"
)

// Decode accumulates a prefix chain from the start of code, exactly as
// the CPU does, returning the final direct function, its operand, and the
// number of bytes consumed.
func Decode(code []byte) (direct Direct, operand int32, length int, err error) {
	for n, inst := range code {
		direct = Direct(inst >> 4)
		operand |= int32(inst & 0xf)
		switch direct {
		case DIRECT_PFIX:
			operand <<= 4
		case DIRECT_NFIX:
			operand = (^operand) << 4
		default:
			length = n + 1
			return
		}
	}

	err = ErrDecodeTruncated
	return
}

// Disassemble iterates the byte offset and text of each instruction in code.
// Operations are shown by mnemonic. A truncated prefix chain ends the
// iteration with its raw bytes.
func Disassemble(code []byte) iter.Seq2[int, string] {
	return func(yield func(offset int, text string) bool) {
		offset := 0
		for offset < len(code) {
			direct, operand, length, err := Decode(code[offset:])
			if err != nil {
				yield(offset, fmt.Sprintf(".byte % x", code[offset:]))
				return
			}

			var text string
			if direct == DIRECT_OPR {
				text = Operation(operand).String()
			} else {
				text = fmt.Sprintf("%v %d", direct, operand)
			}

			if !yield(offset, text) {
				return
			}
			offset += length
		}
	}
}
