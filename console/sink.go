// Package console provides the text sinks an engine prints into.
// A Tape forwards each line to an io.Writer, while a Buffer keeps the
// whole console in memory for hosts that render it themselves.
package console

import (
	"io"
)

// Sink accepts ordered lines of text from the engine.
type Sink interface {
	// WriteLine appends a line of text to the sink.
	WriteLine(text string) error
}

// Tape writes each line to an output stream.
type Tape struct {
	Output io.Writer
}

var _ Sink = (*Tape)(nil)

// WriteLine writes the text followed by a newline.
func (tc *Tape) WriteLine(text string) (err error) {
	if tc.Output == nil {
		err = ErrNoOutput
		return
	}

	_, err = io.WriteString(tc.Output, text+"\n")
	return
}

// Discard is a sink that drops everything.
type Discard struct{}

func (Discard) WriteLine(text string) error {
	return nil
}
