package cpu

import (
	"encoding/binary"
	"fmt"
	"log"
	"strings"

	"github.com/ezrec/kasm/console"
)

// Sink is the console the CPU prints into.
type Sink console.Sink

// Status is the notable outcome of executing instructions.
type Status int

const (
	STATUS_NONE         = Status(0) // none
	STATUS_ENDED        = Status(1) // ended
	STATUS_BREAKPOINT   = Status(2) // breakpoint
	STATUS_PRINT        = Status(3) // print
	STATUS_NOT_FINISHED = Status(4) // not finished
)

var statusName = [...]string{
	STATUS_NONE:         "none",
	STATUS_ENDED:        "ended",
	STATUS_BREAKPOINT:   "breakpoint",
	STATUS_PRINT:        "print",
	STATUS_NOT_FINISHED: "not finished",
}

func (status Status) String() string {
	if status >= 0 && int(status) < len(statusName) {
		return statusName[status]
	}
	return fmt.Sprintf("Status(%d)", int(status))
}

// Result is the outcome of a single instruction. Text is set for
// STATUS_PRINT.
type Result struct {
	Status Status
	Text   string
}

// Cpu is the simulation context of the machine.
type Cpu[V Value] struct {
	Verbose bool // Set to enable verbose logging.
	Sink    Sink // Console for printed text, may be nil.

	Bz  uint64            // Program counter.
	A   V                 // Accumulator.
	Rx  [DATA_REGISTERS]V // Register file.
	Ram Ram[V]            // Program image.

	Ticks int // Instructions retired since the last reset.
}

// NewCpu creates a CPU with a loaded program image.
func NewCpu[V Value](ram Ram[V], sink Sink) (cpu *Cpu[V]) {
	cpu = &Cpu[V]{
		Sink: sink,
		Ram:  ram,
	}

	return
}

// Load replaces the program image and resets the registers.
func (cpu *Cpu[V]) Load(ram Ram[V]) {
	cpu.Ram = ram
	cpu.ResetRegisters()
}

// ResetRegisters zeros A, BZ and Rx, leaving the program image alone.
func (cpu *Cpu[V]) ResetRegisters() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Bz = 0
	cpu.A = 0
	clear(cpu.Rx[:])
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu[V]) String() (text string) {
	text += fmt.Sprintf("% 5s: %v\n", "BZ", cpu.Bz)
	text += fmt.Sprintf("% 5s: %v\n", "A", cpu.A)
	for n, value := range cpu.Rx {
		text += fmt.Sprintf("% 5s: %v\n", fmt.Sprintf("R%d", n), value)
	}

	return
}

// Fetch returns the cell at BZ.
func (cpu *Cpu[V]) Fetch() (cell Cell[V], err error) {
	if cpu.Bz >= uint64(len(cpu.Ram)) {
		err = &ErrNoMoreInstructions{Bz: cpu.Bz}
		return
	}

	cell = cpu.Ram[cpu.Bz]
	return
}

// Step fetches and executes the instruction at BZ.
func (cpu *Cpu[V]) Step() (res Result, err error) {
	cell, err := cpu.Fetch()
	if err != nil {
		return
	}

	res, err = cpu.Execute(cell)
	return
}

// Execute executes a cell as though it was fetched from BZ. On error
// the CPU state is unchanged.
func (cpu *Cpu[V]) Execute(cell Cell[V]) (res Result, err error) {
	inst, ok := InstructionFrom(cell.Opcode)
	if !ok {
		err = &ErrInvalidInstruction{Opcode: cell.Opcode, Bz: cpu.Bz}
		return
	}

	if cpu.Verbose {
		log.Printf("%03d: %v %v", cpu.Bz, inst, cell.Operand)
	}

	next_bz := cpu.Bz + 1
	operand := cell.Operand

	var rx int
	switch inst {
	case INST_LOAD, INST_STORE, INST_ADD, INST_SUB, INST_MULT, INST_DIV:
		rx, err = cpu.rxIndex(operand)
		if err != nil {
			return
		}
	}

	switch inst {
	case INST_LOAD:
		cpu.A = cpu.Rx[rx]
	case INST_DLOAD:
		cpu.A = operand
	case INST_STORE:
		cpu.Rx[rx] = cpu.A
	case INST_ADD:
		cpu.A += cpu.Rx[rx]
	case INST_SUB:
		cpu.A -= cpu.Rx[rx]
	case INST_MULT:
		cpu.A *= cpu.Rx[rx]
	case INST_DIV:
		if cpu.Rx[rx] == 0 {
			err = &ErrDivideByZero{Dividend: cpu.A, Bz: cpu.Bz}
			return
		}
		cpu.A /= cpu.Rx[rx]
	case INST_JUMP, INST_JGE, INST_JGT, INST_JLE, INST_JLT, INST_JEQ, INST_JNE:
		if cpu.jumpTaken(inst) {
			addr, ok := asAddress(operand)
			if !ok {
				err = &ErrInvalidJumpTarget{Target: operand, Bz: cpu.Bz}
				return
			}
			next_bz = addr
		}
	case INST_END:
		res.Status = STATUS_ENDED
	case INST_BP:
		res.Status = STATUS_BREAKPOINT
	case INST_NOOP:
		// pass
	case INST_INT:
		ordinal, ok := asAddress(operand)
		var irq Interrupt
		if ok {
			irq, ok = InterruptFrom(ordinal)
		}
		if !ok {
			err = &ErrInvalidInterrupt{Interrupt: operand, Bz: cpu.Bz}
			return
		}
		res.Status = STATUS_PRINT
		res.Text = cpu.interrupt(irq)
	}

	cpu.Bz = next_bz
	cpu.Ticks++

	return
}

// StepToEnd steps until END, or until max_steps instructions have run.
// Breakpoints are ignored and printed text goes to the sink.
func (cpu *Cpu[V]) StepToEnd(max_steps uint64) (status Status, err error) {
	return cpu.stepTo(max_steps, false)
}

// StepToBreakpoint steps until END or BP, or until max_steps
// instructions have run. Printed text goes to the sink.
func (cpu *Cpu[V]) StepToBreakpoint(max_steps uint64) (status Status, err error) {
	return cpu.stepTo(max_steps, true)
}

// stepTo returns STATUS_NOT_FINISHED when the budget runs out, so the
// host may call again later.
func (cpu *Cpu[V]) stepTo(max_steps uint64, breakpoint bool) (status Status, err error) {
	for range max_steps {
		bz := cpu.Bz

		var res Result
		res, err = cpu.Step()
		if err != nil {
			return
		}

		switch res.Status {
		case STATUS_PRINT:
			if cpu.Sink != nil {
				err = cpu.Sink.WriteLine(res.Text)
				if err != nil {
					err = &ErrSink{Bz: bz, Err: err}
					return
				}
			}
		case STATUS_ENDED:
			status = STATUS_ENDED
			return
		case STATUS_BREAKPOINT:
			if breakpoint {
				status = STATUS_BREAKPOINT
				return
			}
		}
	}

	status = STATUS_NOT_FINISHED
	return
}

// rxIndex validates an operand used as a register index.
func (cpu *Cpu[V]) rxIndex(operand V) (index int, err error) {
	index, ok := asIndex(operand, len(cpu.Rx))
	if !ok {
		err = &ErrInvalidRxIndex{Index: operand, Bz: cpu.Bz}
	}
	return
}

// jumpTaken compares A against zero for a jump instruction.
func (cpu *Cpu[V]) jumpTaken(inst Instruction) bool {
	switch inst {
	case INST_JUMP:
		return true
	case INST_JGE:
		return cpu.A >= 0
	case INST_JGT:
		return cpu.A > 0
	case INST_JLE:
		return cpu.A <= 0
	case INST_JLT:
		return cpu.A < 0
	case INST_JEQ:
		return cpu.A == 0
	case INST_JNE:
		return cpu.A != 0
	}

	return false
}

// shortRx returns the register file up to the last non-zero register,
// but never fewer than ten registers.
func (cpu *Cpu[V]) shortRx() []V {
	last := min(9, len(cpu.Rx)-1)
	for n := len(cpu.Rx) - 1; n > last; n-- {
		if cpu.Rx[n] != 0 {
			last = n
			break
		}
	}

	return cpu.Rx[:last+1]
}

// rxBytes serializes the short register file, little-endian.
func (cpu *Cpu[V]) rxBytes() (data []byte) {
	data, err := binary.Append(nil, binary.LittleEndian, cpu.shortRx())
	if err != nil {
		panic(err)
	}
	return
}

// interrupt performs a read-only diagnostic and returns its text.
func (cpu *Cpu[V]) interrupt(irq Interrupt) (text string) {
	switch irq {
	case INT_PRINT:
		data := cpu.rxBytes()
		text = strings.ToValidUTF8(strings.ReplaceAll(string(data), "\x00", ""), "�")
	case INT_PRINT_BYTES:
		text = fmt.Sprint(cpu.rxBytes())
	case INT_DUMP_A:
		text = fmt.Sprintf("A: %v", cpu.A)
	case INT_DUMP_BZ:
		text = fmt.Sprintf("BZ: %d", cpu.Bz)
	case INT_DUMP_RX:
		text = fmt.Sprintf("Rx: %v", cpu.shortRx())
	case INT_DUMP_RAM:
		text = fmt.Sprintf("RAM: %v", cpu.Ram)
	}

	return
}
