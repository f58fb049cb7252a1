package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	assert := assert.New(t)

	for _, text := range []string{"", "   ", "; comment only", "\t; DLOAD 5"} {
		line, err := ParseLine[int64](text)
		assert.NoError(err, text)
		assert.Nil(line, text)
	}

	line, err := ParseLine[int64]("  dload   5 ; five")
	assert.NoError(err)
	assert.Equal(Token[int64]{Kind: TOKEN_INSTRUCTION, Instruction: INST_DLOAD}, line.First)
	assert.Equal(&Token[int64]{Kind: TOKEN_VALUE, Value: 5}, line.Second)
	assert.Equal("DLOAD 5", line.String())
	assert.Equal(Cell[int64]{Opcode: 1, Operand: 5}, line.Cell())

	line, err = ParseLine[int64]("end")
	assert.NoError(err)
	assert.Nil(line.Second)
	assert.Equal(Cell[int64]{Opcode: 14}, line.Cell())

	line, err = ParseLine[int64]("DLOAD 5 6")
	assert.ErrorIs(err, ErrTooManyTokens)
	assert.Nil(line)

	line, err = ParseLine[int64]("DLOAD five")
	assert.Equal(ErrUnknownToken("FIVE"), err)
	assert.Nil(line)
}

func TestLineCheck(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text  string
		token string
		err   error
	}){
		{"DLOAD 5", "", nil},
		{"1 5", "", nil},
		{"99 5", "", nil},
		{"JUMP .end", "", nil},
		{"JUMP 7", "", nil},
		{"DLOAD 3", "", nil},
		{"NOOP", "", nil},
		{".start:", "", nil},
		{"-5", "-5", ErrTokenMayNotBeFirst},
		{".end", ".END", ErrTokenMayNotBeFirst},
		{"DLOAD DLOAD", "DLOAD", ErrTokenMayNotBeSecond},
		{"JUMP .end:", ".END:", ErrTokenMayNotBeSecond},
		{"DLOAD", "DLOAD", ErrTokenDoesTakeAnArgument},
		{"6", "6", ErrTokenDoesTakeAnArgument},
		{"END 3", "END", ErrTokenDoesNotTakeAnArgument},
		{"16 3", "16", ErrTokenDoesNotTakeAnArgument},
		{".start: 3", ".START:", ErrTokenDoesNotTakeAnArgument},
	}

	for _, entry := range table {
		line, err := ParseLine[int32](entry.text)
		if !assert.NoError(err, entry.text) {
			continue
		}

		err = line.Check()
		if entry.err == nil {
			assert.NoError(err, entry.text)
			continue
		}

		assert.ErrorIs(err, entry.err, entry.text)

		var token *ErrToken
		if assert.ErrorAs(err, &token, entry.text) {
			assert.Equal(entry.token, token.Token, entry.text)
		}
	}
}

func TestLineCellUnresolved(t *testing.T) {
	assert := assert.New(t)

	line, err := ParseLine[int64]("JEQ .done")
	assert.NoError(err)
	assert.NoError(line.Check())
	assert.Panics(func() { line.Cell() })
}
