package config

import (
	"errors"
	"fmt"

	"github.com/ezrec/transputer/translate"
)

var f = translate.From

var (
	ErrMemorySize    = errors.New(f("memory size invalid"))
	ErrMemoryStart   = errors.New(f("memory start invalid"))
	ErrMemoryRange   = errors.New(f("memory range exceeds address space"))
	ErrBootPriority  = errors.New(f("boot priority invalid"))
	ErrDefineName    = errors.New(f("define name invalid"))
	ErrUndecodedKeys = errors.New(f("unknown configuration keys"))
)

// ErrConfig is an error in a configuration file.
type ErrConfig struct {
	Path string // Path of the configuration file.
	Err  error  // Underlying error.
}

func (err *ErrConfig) Error() string {
	return fmt.Sprintf("%v: %v", err.Path, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}
