package config

import (
	"github.com/ezrec/dt31/cpu"
	"github.com/ezrec/dt31/translate"
)

var f = translate.From

// ErrConfig is a configuration source that failed to compile or validate.
type ErrConfig struct {
	Name string
	Err  error
}

func (err *ErrConfig) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrConfig) Unwrap() []error {
	return []error{cpu.ErrConfiguration, err.Err}
}
