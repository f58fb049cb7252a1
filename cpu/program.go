package cpu

import (
	"fmt"
	"io"
	"iter"
)

// Program is an assembled program image with its source mapping.
type Program[V Value] struct {
	Ram    Ram[V]
	LineNo []int    // Source line number of each address.
	Text   []string // Source text of each address.
}

// Debug is the source location of an address.
type Debug struct {
	LineNo int
	Text   string
}

// NewProgram wraps a bare image that has no source.
func NewProgram[V Value](ram Ram[V]) (prog *Program[V]) {
	prog = &Program[V]{
		Ram:    ram,
		LineNo: make([]int, len(ram)),
		Text:   make([]string, len(ram)),
	}
	return
}

// Debug returns the source location of an address, or the zero Debug
// if the address has no source.
func (prog *Program[V]) Debug(addr uint64) (dbg Debug) {
	if addr >= uint64(len(prog.LineNo)) {
		return
	}

	dbg = Debug{
		LineNo: prog.LineNo[addr],
		Text:   prog.Text[addr],
	}
	return
}

// Cells iterates over the image in address order.
func (prog *Program[V]) Cells() iter.Seq2[uint64, Cell[V]] {
	return func(yield func(addr uint64, cell Cell[V]) bool) {
		for n, cell := range prog.Ram {
			if !yield(uint64(n), cell) {
				return
			}
		}
	}
}

// WriteListing writes the image as raw numeric source, one cell per
// line, optionally commented with the mnemonic. Operands of instructions
// that take none are omitted, so the listing assembles back into the
// same image.
func (prog *Program[V]) WriteListing(w io.Writer, names bool) (err error) {
	for addr, cell := range prog.Cells() {
		inst, ok := InstructionFrom(cell.Opcode)
		if !ok {
			err = &ErrInvalidInstruction{Opcode: cell.Opcode, Bz: addr}
			return
		}

		line := fmt.Sprintf("%02d", cell.Opcode)
		if inst.TakesOperand() {
			line += fmt.Sprintf(" %03v", cell.Operand)
		}
		if names {
			line += fmt.Sprintf("\t\t; %v", inst)
		}

		_, err = fmt.Fprintln(w, line)
		if err != nil {
			return
		}
	}

	return
}
