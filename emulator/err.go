package emulator

import (
	"github.com/ezrec/transputer/translate"
)

var f = translate.From

// ErrRuntime indicates the source location of a runtime fault.
type ErrRuntime struct {
	LineNo int    // Source line of the faulting instruction.
	Text   string // Source text of the faulting instruction.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if len(err.Text) == 0 {
		return f("line %d: %v", err.LineNo, err.Err)
	}
	return f("line %d: %v: %v", err.LineNo, err.Text, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
