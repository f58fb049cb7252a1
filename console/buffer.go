package console

import (
	"strings"
	"sync"
	"unicode/utf8"
)

// Buffer is an in-memory console. It may be shared between the engine
// and a rendering host.
type Buffer struct {
	mutex sync.Mutex
	text  strings.Builder
}

var _ Sink = (*Buffer)(nil)

// NewBuffer creates a console pre-filled with text.
func NewBuffer(text string) (buf *Buffer) {
	buf = &Buffer{}
	buf.text.WriteString(text)
	return
}

// WriteLine appends the text and a newline.
func (buf *Buffer) WriteLine(text string) (err error) {
	buf.mutex.Lock()
	defer buf.mutex.Unlock()

	buf.text.WriteString(text)
	buf.text.WriteByte('\n')
	return
}

// Write appends raw bytes, which must be valid UTF-8.
func (buf *Buffer) Write(data []byte) (n int, err error) {
	if !utf8.Valid(data) {
		err = ErrInvalidUtf8
		return
	}

	buf.mutex.Lock()
	defer buf.mutex.Unlock()

	n, err = buf.text.Write(data)
	return
}

// Read returns a copy of the console text.
func (buf *Buffer) Read() string {
	buf.mutex.Lock()
	defer buf.mutex.Unlock()

	return buf.text.String()
}

// Clear empties the console.
func (buf *Buffer) Clear() {
	buf.mutex.Lock()
	defer buf.mutex.Unlock()

	buf.text.Reset()
}
