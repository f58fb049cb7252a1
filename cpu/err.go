package cpu

import (
	"errors"

	"github.com/ezrec/kasm/translate"
)

var f = translate.From

var (
	// Line errors
	ErrTooManyTokens              = errors.New(f("more than an instruction and a value"))
	ErrTokenMayNotBeFirst         = errors.New(f("may not start a line"))
	ErrTokenMayNotBeSecond        = errors.New(f("may not be an argument"))
	ErrTokenDoesTakeAnArgument    = errors.New(f("takes an argument"))
	ErrTokenDoesNotTakeAnArgument = errors.New(f("does not take an argument"))
)

// ErrUnknownToken is a word that is not an instruction, number or label.
type ErrUnknownToken string

func (err ErrUnknownToken) Error() string {
	return f("unknown token '%v'", string(err))
}

// ErrToken names the token that broke a line arrangement rule.
type ErrToken struct {
	Token string
	Err   error
}

func (err *ErrToken) Error() string {
	return f("'%v' %v", err.Token, err.Err)
}

func (err *ErrToken) Unwrap() error {
	return err.Err
}

// ErrParsing is a line that could not be tokenized.
type ErrParsing struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrParsing) Error() string {
	return f("line %d '%v' failed to parse: %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrParsing) Unwrap() error {
	return err.Err
}

// ErrArrangement is a line whose tokens are in an invalid arrangement.
type ErrArrangement struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrArrangement) Error() string {
	return f("line %d '%v' invalid token arrangement: %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrArrangement) Unwrap() error {
	return err.Err
}

// ErrUndefinedJumpPoint is a label that is referenced but never declared.
type ErrUndefinedJumpPoint struct {
	Name   string
	LineNo int
}

func (err *ErrUndefinedJumpPoint) Error() string {
	return f("line %d jump point .%v is not declared", err.LineNo, err.Name)
}

// ErrLabelDuplicate is a label declared more than once.
type ErrLabelDuplicate struct {
	Name   string
	LineNo int
	First  int
}

func (err *ErrLabelDuplicate) Error() string {
	return f("line %d jump point .%v already declared on line %d", err.LineNo, err.Name, err.First)
}

// ErrExpression is a $(...) expression that did not yield a number.
type ErrExpression struct {
	Expr string
	Err  error
}

func (err *ErrExpression) Error() string {
	if err.Err != nil {
		return f("$(%v) is not a valid expression: %v", err.Expr, err.Err)
	}
	return f("$(%v) is not a valid expression", err.Expr)
}

func (err *ErrExpression) Unwrap() error {
	return err.Err
}

// ErrNoMoreInstructions is a fetch past the end of the program image.
type ErrNoMoreInstructions struct {
	Bz uint64
}

func (err *ErrNoMoreInstructions) Error() string {
	return f("no instruction at BZ=%d, remember to end the program with END", err.Bz)
}

// ErrInvalidInstruction is an opcode that decodes to no instruction.
type ErrInvalidInstruction struct {
	Opcode uint64
	Bz     uint64
}

func (err *ErrInvalidInstruction) Error() string {
	return f("opcode %d at BZ=%d is not a valid instruction", err.Opcode, err.Bz)
}

// ErrInvalidInterrupt is an INT operand that decodes to no interrupt.
type ErrInvalidInterrupt struct {
	Interrupt any
	Bz        uint64
}

func (err *ErrInvalidInterrupt) Error() string {
	return f("%v at BZ=%d is not a valid interrupt", err.Interrupt, err.Bz)
}

// ErrInvalidRxIndex is an operand that does not address a register.
type ErrInvalidRxIndex struct {
	Index any
	Bz    uint64
}

func (err *ErrInvalidRxIndex) Error() string {
	return f("%v at BZ=%d is not a register index (0 to %d)", err.Index, err.Bz, DATA_REGISTERS-1)
}

// ErrInvalidJumpTarget is a jump operand that is not a RAM address.
type ErrInvalidJumpTarget struct {
	Target any
	Bz     uint64
}

func (err *ErrInvalidJumpTarget) Error() string {
	return f("%v at BZ=%d is not a jump target", err.Target, err.Bz)
}

// ErrDivideByZero is a DIV whose divisor register holds zero.
type ErrDivideByZero struct {
	Dividend any
	Bz       uint64
}

func (err *ErrDivideByZero) Error() string {
	return f("attempted to divide %v by zero at BZ=%d", err.Dividend, err.Bz)
}

// ErrSink is a printed line the console sink did not accept. Bz is the
// address of the INT that printed it.
type ErrSink struct {
	Bz  uint64
	Err error
}

func (err *ErrSink) Error() string {
	return f("console write for INT at BZ=%d failed: %v", err.Bz, err.Err)
}

func (err *ErrSink) Unwrap() error {
	return err.Err
}

// ErrTooManySteps is a run that did not finish within its step budget.
type ErrTooManySteps uint64

func (err ErrTooManySteps) Error() string {
	return f("program did not finish within %d steps", uint64(err))
}
