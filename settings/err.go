package settings

import (
	"github.com/ezrec/kasm/translate"
)

var f = translate.From

// ErrCorrupt is a settings document that could not be decoded.
type ErrCorrupt struct {
	Err error
}

func (err *ErrCorrupt) Error() string {
	return f("settings corrupt: %v", err.Err)
}

func (err *ErrCorrupt) Unwrap() error {
	return err.Err
}

// ErrCpuMode is an unknown cpu mode.
type ErrCpuMode string

func (err ErrCpuMode) Error() string {
	return f("cpu mode '%v' unknown", string(err))
}
