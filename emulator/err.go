package emulator

import (
	"github.com/ezrec/dt31/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrState is a snapshot file that could not be loaded.
type ErrState struct {
	Path string
	Err  error
}

func (err *ErrState) Error() string {
	return f("state %v: %v", err.Path, err.Err)
}

func (err *ErrState) Unwrap() error {
	return err.Err
}
