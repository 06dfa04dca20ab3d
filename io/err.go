package io

import (
	"errors"

	"github.com/ezrec/dt31/translate"
)

var f = translate.From

var (
	// Tape errors
	ErrTapeInput  = errors.New(f("tape has no input"))
	ErrTapeOutput = errors.New(f("tape has no output"))
)

// ErrInputInvalid is an input line that could not be read as the requested value.
type ErrInputInvalid string

func (err ErrInputInvalid) Error() string {
	return f("input '%v' invalid", string(err))
}
