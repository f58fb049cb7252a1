package cpu

import (
	"fmt"
	"reflect"
	"strconv"
)

const (
	DATA_REGISTERS = 16 // Size of the register file.
)

// Value is the numeric type held by the accumulator and registers.
type Value interface {
	~int16 | ~int32 | ~int64 | ~float64
}

// Cell is a single assembled instruction in the program image.
type Cell[V Value] struct {
	Opcode  uint64
	Operand V
}

// String returns the cell as "(opcode, operand)".
func (cell Cell[V]) String() string {
	return fmt.Sprintf("(%d, %v)", cell.Opcode, cell.Operand)
}

// Ram is the program image. The index of a cell is its address.
type Ram[V Value] []Cell[V]

// parseValue parses a decimal literal into V.
func parseValue[V Value](word string) (value V, ok bool) {
	kind := reflect.TypeFor[V]()
	switch kind.Kind() {
	case reflect.Float32, reflect.Float64:
		f64, err := strconv.ParseFloat(word, kind.Bits())
		if err != nil {
			return
		}
		value = V(f64)
	default:
		i64, err := strconv.ParseInt(word, 10, kind.Bits())
		if err != nil {
			return
		}
		value = V(i64)
	}

	ok = true
	return
}

// parseOpcode parses an unsigned decimal literal as a raw opcode.
func parseOpcode(word string) (opcode uint64, ok bool) {
	opcode, err := strconv.ParseUint(word, 10, 64)
	ok = err == nil
	return
}

// asIndex converts a value to a non-negative integer below limit.
func asIndex[V Value](value V, limit int) (index int, ok bool) {
	if value < 0 || value >= V(limit) {
		return
	}

	index = int(value)
	if V(index) != value {
		// Fractional
		return
	}

	ok = true
	return
}

// asAddress converts a value to a RAM address.
func asAddress[V Value](value V) (addr uint64, ok bool) {
	if value < 0 {
		return
	}

	i64 := int64(value)
	if V(i64) != value {
		return
	}

	addr = uint64(i64)
	ok = true
	return
}
