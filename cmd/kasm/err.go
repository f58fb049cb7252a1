package main

import (
	"errors"

	"github.com/ezrec/kasm/translate"
)

var f = translate.From

var (
	ErrNoSource  = errors.New(f("no source file given"))
	ErrArguments = errors.New(f("expected at most one source file"))
	ErrRunOnly   = errors.New(f("only raw opcodes are accepted in run-only mode"))
	ErrJumpPoint = errors.New(f("jump points are not available in the shell"))
)

// ErrUnknownCommand is a shell command that does not exist.
type ErrUnknownCommand string

func (err ErrUnknownCommand) Error() string {
	return f("unknown command '%v', try /help", string(err))
}

// ErrFile names the file an error came from.
type ErrFile struct {
	Path string
	Err  error
}

func (err *ErrFile) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrFile) Unwrap() error {
	return err.Err
}
