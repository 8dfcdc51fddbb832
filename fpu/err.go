package fpu

import (
	"errors"

	"github.com/ezrec/transputer/translate"
)

var f = translate.From

var (
	ErrIllegal       = errors.New(f("fpu illegal entry"))
	ErrUnimplemented = errors.New(f("fpu entry unimplemented"))
)

// ErrEntry identifies the entry that failed.
type ErrEntry Entry

func (ee ErrEntry) Error() string {
	return f("fpentry 0x%02x %v", int(ee), Entry(ee).String())
}

func (ee ErrEntry) Is(err error) (ok bool) {
	_, ok = err.(ErrEntry)
	return
}
