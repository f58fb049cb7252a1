package emulator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/kasm/console"
	"github.com/ezrec/kasm/cpu"
	"github.com/ezrec/kasm/settings"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator[int64](console.Discard{})

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(settings.Default(), emu.Settings)
	assert.Equal(0, emu.LineNo())
}

func doCompile[V cpu.Value](emu *Emulator[V], program []string, t *testing.T) {
	err := emu.Compile(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)
}

func TestEmulatorSingleStep(t *testing.T) {
	assert := assert.New(t)

	buf := &console.Buffer{}
	emu := NewEmulator[int64](buf)

	program := []string{
		"; count down from 3",
		"DLOAD 1",
		"STORE 1",
		"DLOAD 3",
		"",
		".loop:",
		"SUB 1",
		"INT $(DUMP_A)",
		"JNE .loop",
		"END",
	}
	doCompile(emu, program, t)

	for addr, lineno := range emu.Program.LineNo {
		assert.Equal(uint64(addr), emu.Cpu.Bz)
		assert.Equal(lineno, emu.LineNo())
		_, err := emu.Step()
		assert.NoError(err, program[lineno-1])
		if addr == 6 {
			break
		}
	}

	// Back around the loop
	assert.Equal(uint64(3), emu.Cpu.Bz)

	assert.Equal("A: 2\n", buf.Read())

	status, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(cpu.STATUS_ENDED, status)
	assert.Equal("A: 2\nA: 1\nA: 0\n", buf.Read())
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	buf := &console.Buffer{}
	emu := NewEmulator[int64](buf)

	program := []string{
		"DLOAD 72  ; H",
		"STORE 0",
		"DLOAD 105 ; i",
		"STORE 1",
		"INT 0",
		"INT 1",
		"END",
	}
	doCompile(emu, program, t)

	status, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(cpu.STATUS_ENDED, status)

	bytes := "[72 0 0 0 0 0 0 0 105" + strings.Repeat(" 0", 7+8*8) + "]"
	assert.Equal("Hi\n"+bytes+"\n", buf.Read())
}

func TestEmulatorTooManySteps(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator[int32](console.Discard{})
	emu.Settings.MaxStepsBetweenRender = 10

	program := []string{
		"DLOAD 1",
		"STORE 1",
		"DLOAD 12",
		".loop:",
		"SUB 1",
		"JGT .loop",
		"END",
	}
	doCompile(emu, program, t)

	_, err := emu.Run(context.Background())
	var steps cpu.ErrTooManySteps
	assert.ErrorAs(err, &steps)
	assert.Equal(cpu.ErrTooManySteps(10), steps)
	assert.Equal(10, emu.Cpu.Ticks)

	// Resume where the budget ran out.
	emu.Settings.ContinueAfterMaxSteps = true
	status, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(cpu.STATUS_ENDED, status)
	assert.Equal(int32(0), emu.Cpu.A)
	assert.Equal(3+3*12+1, emu.Cpu.Ticks)
}

func TestEmulatorCancel(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator[int64](console.Discard{})
	emu.Settings.MaxStepsBetweenRender = 100
	emu.Settings.ContinueAfterMaxSteps = true

	doCompile(emu, []string{".forever:", "JUMP .forever"}, t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := emu.Run(ctx)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(0, emu.Cpu.Ticks)
}

func TestEmulatorBreakpoint(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator[int16](console.Discard{})

	program := []string{
		"DLOAD 1",
		"BP",
		"DLOAD 2",
		"BP",
		"DLOAD 3",
		"END",
	}
	doCompile(emu, program, t)

	for _, expected := range []int16{1, 2} {
		status, err := emu.RunToBreakpoint(context.Background())
		assert.NoError(err)
		assert.Equal(cpu.STATUS_BREAKPOINT, status)
		assert.Equal(expected, emu.Cpu.A)
	}

	status, err := emu.RunToBreakpoint(context.Background())
	assert.NoError(err)
	assert.Equal(cpu.STATUS_ENDED, status)
	assert.Equal(int16(3), emu.Cpu.A)
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator[int64](console.Discard{})

	program := []string{
		"DLOAD 10",
		"; r3 is still zero",
		"DIV 3",
		"END",
	}
	doCompile(emu, program, t)

	_, err := emu.Run(context.Background())

	var runtime *ErrRuntime
	assert.ErrorAs(err, &runtime)
	assert.Equal(3, runtime.LineNo)
	assert.Equal(uint64(1), runtime.Bz)

	var div *cpu.ErrDivideByZero
	assert.ErrorAs(err, &div)
	assert.Equal(int64(10), div.Dividend)

	// Nothing moved.
	assert.Equal(uint64(1), emu.Cpu.Bz)
	assert.Equal(int64(10), emu.Cpu.A)

	// Fix the divisor and carry on.
	emu.Cpu.Rx[3] = 5
	status, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(cpu.STATUS_ENDED, status)
	assert.Equal(int64(2), emu.Cpu.A)
}

func TestEmulatorSinkError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator[int64](&console.Tape{})

	program := []string{
		"DLOAD 10",
		"; nowhere to print",
		"INT $(DUMP_A)",
		"END",
	}
	doCompile(emu, program, t)

	_, err := emu.Run(context.Background())
	assert.ErrorIs(err, console.ErrNoOutput)

	var runtime *ErrRuntime
	if assert.ErrorAs(err, &runtime) {
		assert.Equal(3, runtime.LineNo)
		assert.Equal(uint64(1), runtime.Bz)
	}
	assert.Equal(uint64(2), emu.Cpu.Bz)

	// Single stepping reports the same location.
	emu.Reset()
	_, err = emu.Step()
	assert.NoError(err)
	_, err = emu.Step()
	assert.ErrorIs(err, console.ErrNoOutput)
	if assert.ErrorAs(err, &runtime) {
		assert.Equal(3, runtime.LineNo)
		assert.Equal(uint64(1), runtime.Bz)
	}
}

func TestEmulatorNoEnd(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator[int64](console.Discard{})
	doCompile(emu, []string{"NOOP"}, t)

	_, err := emu.Run(context.Background())

	var runtime *ErrRuntime
	assert.ErrorAs(err, &runtime)
	assert.Equal(0, runtime.LineNo)

	var more *cpu.ErrNoMoreInstructions
	assert.ErrorAs(err, &more)
	assert.Equal(uint64(1), more.Bz)
}

func TestEmulatorCompileError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator[int64](console.Discard{})
	doCompile(emu, []string{"DLOAD 4", "END"}, t)

	err := emu.Compile(strings.NewReader("DLOAD 1\nJUMP .nowhere\nEND"))
	var undefined *cpu.ErrUndefinedJumpPoint
	assert.ErrorAs(err, &undefined)
	assert.Equal(2, undefined.LineNo)

	assert.Equal(cpu.Ram[int64]{{Opcode: 1, Operand: 4}, {Opcode: 14}}, emu.Program.Ram)
}

func TestEmulatorExecute(t *testing.T) {
	assert := assert.New(t)

	buf := &console.Buffer{}
	emu := NewEmulator[float64](buf)

	_, err := emu.Execute(cpu.Cell[float64]{Opcode: uint64(cpu.INST_DLOAD), Operand: 2.5})
	assert.NoError(err)

	res, err := emu.Execute(cpu.Cell[float64]{Opcode: uint64(cpu.INST_INT), Operand: float64(cpu.INT_DUMP_A)})
	assert.NoError(err)
	assert.Equal(cpu.STATUS_PRINT, res.Status)
	assert.Equal("A: 2.5\n", buf.Read())
	assert.Equal(uint64(2), emu.Cpu.Bz)
}
