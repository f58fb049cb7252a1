package cpu

import (
	"bufio"
	"io"
	"log"
	"strings"
)

// MAX_LINE_LENGTH is the longest source line, in bytes, the parser accepts.
const MAX_LINE_LENGTH = 1 << 20

// SourceLine is a non-blank source line and its 1-based line number.
type SourceLine[V Value] struct {
	LineNo int
	Text   string
	Code   *CodeLine[V]
}

// Document is a source text being assembled. The index of a line in
// Lines is its address in the program image.
type Document[V Value] struct {
	Verbose bool
	Lines   []SourceLine[V]
	Label   map[string]int // Map of jump points to addresses.

	labelLineNo map[string]int
}

// Expander rewrites a raw source line before it is tokenized.
type Expander func(text string, lineno int) (string, error)

// ParseDocument assembles a source text, resolving all jump points.
func ParseDocument[V Value](text string) (doc *Document[V], err error) {
	doc = &Document[V]{}
	err = doc.Assemble(strings.NewReader(text), nil)
	if err != nil {
		doc = nil
	}
	return
}

// Assemble runs both passes over the input. On error the document
// contents are unspecified and must not be used.
func (doc *Document[V]) Assemble(input io.Reader, expand Expander) (err error) {
	err = doc.parse(input, expand)
	if err != nil {
		return
	}

	err = doc.check()
	if err != nil {
		return
	}

	err = doc.collectJumpPoints()
	if err != nil {
		return
	}

	err = doc.resolveJumpPoints()
	return
}

// parse tokenizes every line of the input.
func (doc *Document[V]) parse(input io.Reader, expand Expander) (err error) {
	doc.Lines = doc.Lines[:0]

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 4096), MAX_LINE_LENGTH)

	var lineno int
	for scanner.Scan() {
		text := scanner.Text()
		lineno++

		if doc.Verbose {
			log.Printf("%v: %v", lineno, text)
		}

		expanded := text
		if expand != nil {
			expanded, err = expand(text, lineno)
			if err != nil {
				err = &ErrParsing{LineNo: lineno, Line: text, Err: err}
				return
			}
		}

		var code *CodeLine[V]
		code, err = ParseLine[V](expanded)
		if err != nil {
			err = &ErrParsing{LineNo: lineno, Line: text, Err: err}
			return
		}

		if code == nil {
			continue
		}

		doc.Lines = append(doc.Lines, SourceLine[V]{LineNo: lineno, Text: text, Code: code})
	}

	err = scanner.Err()
	if err != nil {
		err = &ErrParsing{LineNo: lineno + 1, Err: err}
		return
	}

	return
}

// check verifies the token arrangement of every line.
func (doc *Document[V]) check() (err error) {
	for _, line := range doc.Lines {
		err = line.Code.Check()
		if err != nil {
			err = &ErrArrangement{LineNo: line.LineNo, Line: line.Text, Err: err}
			return
		}
	}

	return
}

// collectJumpPoints records the address of every declaration, and
// replaces the declaration with a NOOP so it keeps its address.
func (doc *Document[V]) collectJumpPoints() (err error) {
	doc.Label = make(map[string]int)
	doc.labelLineNo = make(map[string]int)

	for addr := range doc.Lines {
		line := &doc.Lines[addr]
		if line.Code.First.Kind != TOKEN_JUMP_POINT_DECLARATION {
			continue
		}

		label := line.Code.First.Label
		if first, ok := doc.labelLineNo[label]; ok {
			err = &ErrLabelDuplicate{Name: label, LineNo: line.LineNo, First: first}
			return
		}

		doc.Label[label] = addr
		doc.labelLineNo[label] = line.LineNo
		line.Code.First = Token[V]{Kind: TOKEN_INSTRUCTION, Instruction: INST_NOOP}

		if doc.Verbose {
			log.Printf("jump point .%v = %d", label, addr)
		}
	}

	return
}

// resolveJumpPoints replaces every jump point with its address.
func (doc *Document[V]) resolveJumpPoints() (err error) {
	for _, line := range doc.Lines {
		second := line.Code.Second
		if second == nil || second.Kind != TOKEN_JUMP_POINT {
			continue
		}

		addr, ok := doc.Label[second.Label]
		if !ok {
			err = &ErrUndefinedJumpPoint{Name: second.Label, LineNo: line.LineNo}
			return
		}

		*second = Token[V]{Kind: TOKEN_VALUE, Value: V(addr)}
	}

	return
}

// Ram emits the program image.
func (doc *Document[V]) Ram() (ram Ram[V]) {
	ram = make(Ram[V], len(doc.Lines))
	for addr, line := range doc.Lines {
		ram[addr] = line.Code.Cell()
	}

	return
}
