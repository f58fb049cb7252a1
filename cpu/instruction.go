package cpu

import (
	"iter"
	"strconv"
	"strings"
)

// Instruction is an opcode of the machine. Its ordinal is the opcode
// stored in the program image.
type Instruction uint64

const (
	INST_LOAD  = Instruction(0)  // LOAD
	INST_DLOAD = Instruction(1)  // DLOAD
	INST_STORE = Instruction(2)  // STORE
	INST_ADD   = Instruction(3)  // ADD
	INST_SUB   = Instruction(4)  // SUB
	INST_MULT  = Instruction(5)  // MULT
	INST_DIV   = Instruction(6)  // DIV
	INST_JUMP  = Instruction(7)  // JUMP
	INST_JGE   = Instruction(8)  // JGE
	INST_JGT   = Instruction(9)  // JGT
	INST_JLE   = Instruction(10) // JLE
	INST_JLT   = Instruction(11) // JLT
	INST_JEQ   = Instruction(12) // JEQ
	INST_JNE   = Instruction(13) // JNE
	INST_END   = Instruction(14) // END
	INST_BP    = Instruction(15) // BP
	INST_NOOP  = Instruction(16) // NOOP
	INST_INT   = Instruction(17) // INT
)

var instructionName = [...]string{
	INST_LOAD:  "LOAD",
	INST_DLOAD: "DLOAD",
	INST_STORE: "STORE",
	INST_ADD:   "ADD",
	INST_SUB:   "SUB",
	INST_MULT:  "MULT",
	INST_DIV:   "DIV",
	INST_JUMP:  "JUMP",
	INST_JGE:   "JGE",
	INST_JGT:   "JGT",
	INST_JLE:   "JLE",
	INST_JLT:   "JLT",
	INST_JEQ:   "JEQ",
	INST_JNE:   "JNE",
	INST_END:   "END",
	INST_BP:    "BP",
	INST_NOOP:  "NOOP",
	INST_INT:   "INT",
}

var instructionMap = func() (m map[string]Instruction) {
	m = make(map[string]Instruction, len(instructionName))
	for n, name := range instructionName {
		m[name] = Instruction(n)
	}
	return
}()

// InstructionFrom decodes an opcode.
func InstructionFrom(opcode uint64) (inst Instruction, ok bool) {
	if opcode >= uint64(len(instructionName)) {
		return
	}

	return Instruction(opcode), true
}

// ParseInstruction looks up a mnemonic, ignoring case.
func ParseInstruction(word string) (inst Instruction, ok bool) {
	inst, ok = instructionMap[strings.ToUpper(word)]
	return
}

// Instructions iterates over every instruction in ordinal order.
func Instructions() iter.Seq2[uint64, Instruction] {
	return func(yield func(uint64, Instruction) bool) {
		for n := range instructionName {
			if !yield(uint64(n), Instruction(n)) {
				return
			}
		}
	}
}

// TakesOperand returns false for the instructions written without an
// operand.
func (inst Instruction) TakesOperand() bool {
	switch inst {
	case INST_END, INST_BP, INST_NOOP:
		return false
	default:
		return true
	}
}

// IsJump is true for the conditional and unconditional jumps.
func (inst Instruction) IsJump() bool {
	return inst >= INST_JUMP && inst <= INST_JNE
}

func (inst Instruction) String() string {
	if uint64(inst) < uint64(len(instructionName)) {
		return instructionName[inst]
	}
	return "Instruction(" + strconv.FormatUint(uint64(inst), 10) + ")"
}
