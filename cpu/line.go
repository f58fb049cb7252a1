package cpu

import (
	"strings"
)

// CodeLine is one or two tokens from a single source line.
// Second is nil on a single token line.
type CodeLine[V Value] struct {
	First  Token[V]
	Second *Token[V]
}

// trimComment removes everything from the first ';'.
func trimComment(text string) string {
	code, _, _ := strings.Cut(text, ";")
	return code
}

// ParseLine tokenizes a source line. Blank and comment-only lines
// return a nil line and no error.
func ParseLine[V Value](text string) (line *CodeLine[V], err error) {
	words := strings.Fields(trimComment(text))

	switch len(words) {
	case 0:
		return
	case 1, 2:
		// pass
	default:
		err = ErrTooManyTokens
		return
	}

	first, err := ParseToken[V](words[0], POSITION_FIRST)
	if err != nil {
		return
	}

	line = &CodeLine[V]{First: first}

	if len(words) == 2 {
		var second Token[V]
		second, err = ParseToken[V](words[1], POSITION_SECOND)
		if err != nil {
			line = nil
			return
		}
		line.Second = &second
	}

	return
}

// Check verifies that the tokens are legal in their positions, and that
// an argument is present exactly when the first token takes one.
func (line *CodeLine[V]) Check() (err error) {
	first := line.First

	if !first.CanBeFirst() {
		return &ErrToken{Token: first.String(), Err: ErrTokenMayNotBeFirst}
	}

	if line.Second == nil {
		if first.TakesSecond() {
			return &ErrToken{Token: first.String(), Err: ErrTokenDoesTakeAnArgument}
		}
		return
	}

	if !line.Second.CanBeSecond() {
		return &ErrToken{Token: line.Second.String(), Err: ErrTokenMayNotBeSecond}
	}

	if !first.TakesSecond() {
		return &ErrToken{Token: first.String(), Err: ErrTokenDoesNotTakeAnArgument}
	}

	return
}

// Cell converts the line to a program image cell. All jump points must
// have been resolved.
func (line *CodeLine[V]) Cell() (cell Cell[V]) {
	cell.Opcode = line.First.AsOpcode()
	if line.Second != nil {
		cell.Operand = line.Second.AsOperand()
	}

	return
}

func (line *CodeLine[V]) String() string {
	if line.Second == nil {
		return line.First.String()
	}
	return line.First.String() + " " + line.Second.String()
}
