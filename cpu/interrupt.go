package cpu

import (
	"iter"
	"strconv"
)

// Interrupt selects the diagnostic performed by an INT instruction.
// Its ordinal is the INT operand.
type Interrupt uint64

const (
	INT_PRINT       = Interrupt(0) // PRINT
	INT_PRINT_BYTES = Interrupt(1) // PRINT_BYTES
	INT_DUMP_A      = Interrupt(2) // DUMP_A
	INT_DUMP_BZ     = Interrupt(3) // DUMP_BZ
	INT_DUMP_RX     = Interrupt(4) // DUMP_RX
	INT_DUMP_RAM    = Interrupt(5) // DUMP_RAM
)

var interruptName = [...]string{
	INT_PRINT:       "PRINT",
	INT_PRINT_BYTES: "PRINT_BYTES",
	INT_DUMP_A:      "DUMP_A",
	INT_DUMP_BZ:     "DUMP_BZ",
	INT_DUMP_RX:     "DUMP_RX",
	INT_DUMP_RAM:    "DUMP_RAM",
}

// InterruptFrom decodes an interrupt ordinal.
func InterruptFrom(ordinal uint64) (irq Interrupt, ok bool) {
	if ordinal >= uint64(len(interruptName)) {
		return
	}

	return Interrupt(ordinal), true
}

// Interrupts iterates over every interrupt in ordinal order.
func Interrupts() iter.Seq2[uint64, Interrupt] {
	return func(yield func(uint64, Interrupt) bool) {
		for n := range interruptName {
			if !yield(uint64(n), Interrupt(n)) {
				return
			}
		}
	}
}

func (irq Interrupt) String() string {
	if uint64(irq) < uint64(len(interruptName)) {
		return interruptName[irq]
	}
	return "Interrupt(" + strconv.FormatUint(uint64(irq), 10) + ")"
}
