package cpu

import (
	"errors"

	"github.com/ezrec/transputer/translate"
)

var f = translate.From

var (
	// Cpu faults
	ErrIllegalInstruction       = errors.New(f("illegal instruction"))
	ErrUnimplementedInstruction = errors.New(f("unimplemented instruction"))
	ErrProgramTooLarge          = errors.New(f("program too large"))

	// Decode errors
	ErrDecodeTruncated = errors.New(f("prefix chain truncated"))

	// Assembler errors
	ErrEquateSyntax     = errors.New(f(".equ syntax"))
	ErrEquateDuplicate  = errors.New(f(".equ duplicated"))
	ErrMnemonicUnknown  = errors.New(f("mnemonic unknown"))
	ErrImmediateMissing = errors.New(f("immediate missing"))
	ErrOpcodeExtraArgs  = errors.New(f("excessive arguments"))
)

// ErrMemoryBounds is an access outside of the memory store.
type ErrMemoryBounds struct {
	Address int32 // Address of the access.
	Width   int   // Width of the access, in bytes.
}

func (err ErrMemoryBounds) Error() string {
	return f("memory access 0x%08x width %d out of bounds", uint32(err.Address), err.Width)
}

func (err ErrMemoryBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrMemoryBounds)
	return
}

// Fault is the kind of fatal fault raised by a step.
type Fault int

//go:generate go tool stringer -linecomment -type=Fault
const (
	FAULT_NONE          = Fault(0) // none
	FAULT_ILLEGAL       = Fault(1) // illegal
	FAULT_UNIMPLEMENTED = Fault(2) // unimplemented
	FAULT_MEMORY_BOUNDS = Fault(3) // bounds
)

// ErrFault describes the instruction that faulted.
type ErrFault struct {
	Iptr    int32  // Address of the faulting instruction byte.
	Direct  Direct // Direct function of the faulting instruction.
	Operand int32  // Accumulated operand of the faulting instruction.
	Err     error
}

func (err *ErrFault) Error() string {
	what := err.Direct.String()
	if err.Direct == DIRECT_OPR {
		what = Operation(err.Operand).String()
	}
	return f("0x%08x: %v (0x%x) %v", uint32(err.Iptr), what, uint32(err.Operand), err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// Kind classifies the fault.
func (err *ErrFault) Kind() Fault {
	return FaultOf(err)
}

// FaultOf classifies an error returned by Step or Run.
func FaultOf(err error) Fault {
	switch {
	case err == nil:
		return FAULT_NONE
	case errors.Is(err, ErrMemoryBounds{}):
		return FAULT_MEMORY_BOUNDS
	case errors.Is(err, ErrUnimplementedInstruction):
		return FAULT_UNIMPLEMENTED
	default:
		return FAULT_ILLEGAL
	}
}

// ErrSyntax locates an assembler error.
type ErrSyntax struct {
	LineNo int    // Source line.
	Index  int    // Instruction index within the program.
	Text   string // Instruction text.
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Text, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
