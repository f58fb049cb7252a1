// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/kasm/internal"
)

var reParenEval = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler is a two pass assembler, with $(...) compile-time
// expressions evaluated before tokenizing.
type Assembler[V Value] struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]V // Predefines
}

// Assemble turns source text into a program image.
func Assemble[V Value](source string) (ram Ram[V], err error) {
	asm := &Assembler[V]{}
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	ram = prog.Ram
	return
}

// Predefine defines or redefines a name for $(...) expressions.
func (asm *Assembler[V]) Predefine(name string, value V) {
	if asm.predefine == nil {
		asm.predefine = map[string]V{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// Defines iterates over the names available to $(...) expressions,
// other than LINENO.
func (asm *Assembler[V]) Defines() iter.Seq2[string, V] {
	return internal.Concat2(
		ordinals[V](Instructions()),
		ordinals[V](Interrupts()),
		maps.All(map[string]V{"DATA_REGISTERS": DATA_REGISTERS}),
		maps.All(asm.predefine),
	)
}

// ordinals names each member of an enumeration by its ordinal.
func ordinals[V Value, E fmt.Stringer](seq iter.Seq2[uint64, E]) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for ordinal, member := range seq {
			if !yield(member.String(), V(ordinal)) {
				return
			}
		}
	}
}

// Parse parses an input stream into a Program. No partial program is
// returned on error.
func (asm *Assembler[V]) Parse(input io.Reader) (prog *Program[V], err error) {
	doc := &Document[V]{Verbose: asm.Verbose}

	err = doc.Assemble(input, asm.Expand)
	if err != nil {
		return
	}

	prog = &Program[V]{
		Ram:    doc.Ram(),
		LineNo: make([]int, len(doc.Lines)),
		Text:   make([]string, len(doc.Lines)),
	}
	for addr, line := range doc.Lines {
		prog.LineNo[addr] = line.LineNo
		prog.Text[addr] = line.Text
	}

	if asm.Verbose {
		log.Printf("assembled %d cells, %d jump points", len(prog.Ram), len(doc.Label))
	}

	return
}

// Expand replaces each $(...) outside of a comment by its value.
func (asm *Assembler[V]) Expand(text string, lineno int) (line string, err error) {
	code, comment, has_comment := strings.Cut(text, ";")
	if !strings.Contains(code, "$(") {
		line = text
		return
	}

	line = reParenEval.ReplaceAllStringFunc(code, func(str string) string {
		value, _err := asm.parenEval(str[2:len(str)-1], lineno)
		if _err != nil && err == nil {
			err = _err
		}
		return value
	})
	if err != nil {
		return
	}

	if has_comment {
		line += ";" + comment
	}

	return
}

// parenEval evaluates a single expression with Starlark.
func (asm *Assembler[V]) parenEval(expr string, lineno int) (value string, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	pred := starlark.StringDict{}
	for name, def := range asm.Defines() {
		pred[name] = toStarlark(def)
	}
	pred["LINENO"] = starlark.MakeInt(lineno)

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = &ErrExpression{Expr: expr, Err: err}
		return
	}

	switch rc := dict["rc"].(type) {
	case starlark.Int:
		i64, ok := rc.Int64()
		if !ok {
			err = &ErrExpression{Expr: expr}
			return
		}
		value = strconv.FormatInt(i64, 10)
	case starlark.Float:
		value = strconv.FormatFloat(float64(rc), 'g', -1, 64)
	case nil:
		err = &ErrExpression{Expr: expr}
		return
	default:
		err = &ErrExpression{Expr: expr, Err: fmt.Errorf("%v is a %v", rc, rc.Type())}
		return
	}

	if asm.Verbose {
		log.Printf("%v: $(%v) = %v", lineno, expr, value)
	}

	return
}

// toStarlark converts a register value for use in an expression.
func toStarlark[V Value](value V) starlark.Value {
	switch reflect.TypeFor[V]().Kind() {
	case reflect.Float32, reflect.Float64:
		return starlark.Float(float64(value))
	default:
		return starlark.MakeInt64(int64(value))
	}
}
