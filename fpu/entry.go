package fpu

import (
	"fmt"
	"iter"
)

// Entry is an FPENTRY sub-opcode.
type Entry int

const (
	ENTRY_TABLE_SIZE = 0x30 // Entries at or above this are sparse.
)

const (
	ENTRY_FPUSQRTFIRST = Entry(0x01) // fpusqrtfirst
	ENTRY_FPUSQRTSTEP  = Entry(0x02) // fpusqrtstep
	ENTRY_FPUSQRTLAST  = Entry(0x03) // fpusqrtlast
	ENTRY_FPURP        = Entry(0x04) // fpurp
	ENTRY_FPURM        = Entry(0x05) // fpurm
	ENTRY_FPURZ        = Entry(0x06) // fpurz
	ENTRY_FPUR32TOR64  = Entry(0x07) // fpur32tor64
	ENTRY_FPUR64TOR32  = Entry(0x08) // fpur64tor32
	ENTRY_FPUEXPDEC32  = Entry(0x09) // fpuexpdec32
	ENTRY_FPUEXPINC32  = Entry(0x0A) // fpuexpinc32
	ENTRY_FPUABS       = Entry(0x0B) // fpuabs
	ENTRY_FPUNOROUND   = Entry(0x0D) // fpunoround
	ENTRY_FPUCHKI32    = Entry(0x0E) // fpuchki32
	ENTRY_FPUCHKI64    = Entry(0x0F) // fpuchki64
	ENTRY_FPUDIVBY2    = Entry(0x11) // fpudivby2
	ENTRY_FPUMULBY2    = Entry(0x12) // fpumulby2
	ENTRY_FPURN        = Entry(0x22) // fpurn
	ENTRY_FPUSETERR    = Entry(0x23) // fpuseterr
	ENTRY_FPUCLRERR    = Entry(0x9C) // fpuclrerr
)

// _entryMnemonics is the assembler mnemonic table for FPENTRY sub-opcodes.
var _entryMnemonics = []struct {
	name  string
	entry Entry
}{
	{"fpusqrtfirst", ENTRY_FPUSQRTFIRST},
	{"fpusqrtstep", ENTRY_FPUSQRTSTEP},
	{"fpusqrtlast", ENTRY_FPUSQRTLAST},
	{"fpurp", ENTRY_FPURP},
	{"fpurm", ENTRY_FPURM},
	{"fpurz", ENTRY_FPURZ},
	{"fpur32tor64", ENTRY_FPUR32TOR64},
	{"fpur64tor32", ENTRY_FPUR64TOR32},
	{"fpuexpdec32", ENTRY_FPUEXPDEC32},
	{"fpuexpinc32", ENTRY_FPUEXPINC32},
	{"fpuabs", ENTRY_FPUABS},
	{"fpunoround", ENTRY_FPUNOROUND},
	{"fpuchki32", ENTRY_FPUCHKI32},
	{"fpuchki64", ENTRY_FPUCHKI64},
	{"fpudivby2", ENTRY_FPUDIVBY2},
	{"fpumulby2", ENTRY_FPUMULBY2},
	{"fpurn", ENTRY_FPURN},
	{"fpuseterr", ENTRY_FPUSETERR},
	{"fpuclrerr", ENTRY_FPUCLRERR},
}

// Mnemonics iterates the FPENTRY mnemonic table in sub-opcode order.
func Mnemonics() iter.Seq2[string, Entry] {
	return func(yield func(string, Entry) bool) {
		for _, m := range _entryMnemonics {
			if !yield(m.name, m.entry) {
				return
			}
		}
	}
}

// String returns the mnemonic of the entry.
func (entry Entry) String() string {
	for name, e := range Mnemonics() {
		if e == entry {
			return name
		}
	}

	return fmt.Sprintf("fpentry#%x", int(entry))
}
