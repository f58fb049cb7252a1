package cpu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TokenKind classifies a source word.
type TokenKind int

const (
	TOKEN_INSTRUCTION            = TokenKind(0) // instruction
	TOKEN_OPCODE                 = TokenKind(1) // opcode
	TOKEN_VALUE                  = TokenKind(2) // value
	TOKEN_JUMP_POINT             = TokenKind(3) // jump point
	TOKEN_JUMP_POINT_DECLARATION = TokenKind(4) // jump point declaration
)

// Position is where a word sits on its line.
type Position int

const (
	POSITION_FIRST  = Position(0)
	POSITION_SECOND = Position(1)
)

var (
	reJumpPoint            = regexp.MustCompile(`^\.([^:]+)$`)
	reJumpPointDeclaration = regexp.MustCompile(`^\.([^:]+):$`)
)

// Token is a classified source word. Only the field matching Kind is set.
type Token[V Value] struct {
	Kind        TokenKind
	Instruction Instruction
	Opcode      uint64
	Value       V
	Label       string
}

// ParseToken classifies a single word, ignoring case. An unsigned number
// is a raw opcode in the first position and a value in the second.
func ParseToken[V Value](word string, pos Position) (token Token[V], err error) {
	word = strings.ToUpper(word)

	if inst, ok := ParseInstruction(word); ok {
		token = Token[V]{Kind: TOKEN_INSTRUCTION, Instruction: inst}
		return
	}

	if pos == POSITION_FIRST {
		if opcode, ok := parseOpcode(word); ok {
			token = Token[V]{Kind: TOKEN_OPCODE, Opcode: opcode}
			return
		}
	}

	if value, ok := parseValue[V](word); ok {
		token = Token[V]{Kind: TOKEN_VALUE, Value: value}
		return
	}

	if match := reJumpPoint.FindStringSubmatch(word); match != nil {
		token = Token[V]{Kind: TOKEN_JUMP_POINT, Label: match[1]}
		return
	}

	if match := reJumpPointDeclaration.FindStringSubmatch(word); match != nil {
		token = Token[V]{Kind: TOKEN_JUMP_POINT_DECLARATION, Label: match[1]}
		return
	}

	err = ErrUnknownToken(word)
	return
}

// CanBeFirst is true if the token may start a line.
func (token Token[V]) CanBeFirst() bool {
	switch token.Kind {
	case TOKEN_INSTRUCTION, TOKEN_OPCODE, TOKEN_JUMP_POINT_DECLARATION:
		return true
	default:
		return false
	}
}

// CanBeSecond is true if the token may be an argument.
func (token Token[V]) CanBeSecond() bool {
	switch token.Kind {
	case TOKEN_VALUE, TOKEN_JUMP_POINT:
		return true
	default:
		return false
	}
}

// TakesSecond is true if the token requires an argument. Unknown raw
// opcodes are assumed to take one.
func (token Token[V]) TakesSecond() bool {
	switch token.Kind {
	case TOKEN_INSTRUCTION:
		return token.Instruction.TakesOperand()
	case TOKEN_OPCODE:
		inst, ok := InstructionFrom(token.Opcode)
		if !ok {
			return true
		}
		return inst.TakesOperand()
	default:
		return false
	}
}

// IsResolved is false for jump points and their declarations.
func (token Token[V]) IsResolved() bool {
	return token.Kind != TOKEN_JUMP_POINT && token.Kind != TOKEN_JUMP_POINT_DECLARATION
}

// AsOpcode returns the token as a program image opcode.
// Panics unless the token is an instruction or a raw opcode.
func (token Token[V]) AsOpcode() (opcode uint64) {
	switch token.Kind {
	case TOKEN_INSTRUCTION:
		opcode = uint64(token.Instruction)
	case TOKEN_OPCODE:
		opcode = token.Opcode
	default:
		panic(fmt.Sprintf("%v cannot be used as an opcode", token))
	}

	return
}

// AsOperand returns the token as a program image operand.
// Panics on an unresolved jump point.
func (token Token[V]) AsOperand() (operand V) {
	switch token.Kind {
	case TOKEN_INSTRUCTION:
		operand = V(token.Instruction)
	case TOKEN_OPCODE:
		operand = V(token.Opcode)
	case TOKEN_VALUE:
		operand = token.Value
	default:
		panic(fmt.Sprintf("jump point %v must be resolved before use as an operand", token))
	}

	return
}

func (token Token[V]) String() string {
	switch token.Kind {
	case TOKEN_INSTRUCTION:
		return token.Instruction.String()
	case TOKEN_OPCODE:
		return strconv.FormatUint(token.Opcode, 10)
	case TOKEN_VALUE:
		return fmt.Sprintf("%v", token.Value)
	case TOKEN_JUMP_POINT:
		return "." + token.Label
	case TOKEN_JUMP_POINT_DECLARATION:
		return "." + token.Label + ":"
	}

	return "?"
}
