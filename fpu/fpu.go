// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package fpu

import (
	"errors"
	"log"
)

// RoundMode is the rounding mode applied to the next floating-point operation.
type RoundMode int

//go:generate go tool stringer -linecomment -type=RoundMode
const (
	ROUND_NEAREST        = RoundMode(0) // nearest
	ROUND_ZERO           = RoundMode(1) // zero
	ROUND_PLUS_INFINITY  = RoundMode(2) // +inf
	ROUND_MINUS_INFINITY = RoundMode(3) // -inf
)

// Fpu is the floating-point unit state.
type Fpu struct {
	Verbose bool // Set to enable verbose logging.

	RoundMode RoundMode // Rounding mode for the next operation.
	Error     bool      // Sticky floating-point error flag.
}

// Reset the FPU to round-to-nearest with the error flag clear.
func (fp *Fpu) Reset() {
	fp.RoundMode = ROUND_NEAREST
	fp.Error = false
}

// Execute performs a single FPENTRY sub-operation.
//
// Unimplemented entries reset the rounding mode to nearest before
// reporting ErrUnimplemented. Illegal entries leave the state alone.
func (fp *Fpu) Execute(entry Entry) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrEntry(entry), err)
		}
	}()

	if fp.Verbose {
		log.Printf("fpu: %v (round %v, error %v)", entry, fp.RoundMode, fp.Error)
	}

	switch entry {
	case ENTRY_FPURN:
		fp.RoundMode = ROUND_NEAREST
	case ENTRY_FPURP:
		fp.RoundMode = ROUND_PLUS_INFINITY
	case ENTRY_FPURM:
		fp.RoundMode = ROUND_MINUS_INFINITY
	case ENTRY_FPURZ:
		fp.RoundMode = ROUND_ZERO
	case ENTRY_FPUSETERR:
		fp.Error = true
		fp.RoundMode = ROUND_NEAREST
	case ENTRY_FPUCLRERR:
		fp.Error = false
		fp.RoundMode = ROUND_NEAREST
	case ENTRY_FPUSQRTFIRST, ENTRY_FPUSQRTSTEP, ENTRY_FPUSQRTLAST,
		ENTRY_FPUR32TOR64, ENTRY_FPUR64TOR32,
		ENTRY_FPUEXPDEC32, ENTRY_FPUEXPINC32,
		ENTRY_FPUABS, ENTRY_FPUNOROUND,
		ENTRY_FPUCHKI32, ENTRY_FPUCHKI64,
		ENTRY_FPUDIVBY2, ENTRY_FPUMULBY2:
		fp.RoundMode = ROUND_NEAREST
		err = ErrUnimplemented
	default:
		err = ErrIllegal
	}

	return
}
