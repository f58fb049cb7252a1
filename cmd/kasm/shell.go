package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/kasm/cpu"
	"github.com/ezrec/kasm/emulator"
)

var shellHelp = [][2]string{
	{"/help", "this text"},
	{"/instructions", "list the instructions and their opcodes"},
	{"/interrupts", "list the interrupts and their ordinals"},
	{"/registers", "show the CPU registers"},
	{"/reset", "reset the CPU registers"},
	{"/toggle-run-only", "toggle run-only mode (raw opcodes only)"},
	{"/is-run-only", "show whether run-only mode is on"},
	{"/end", "leave the shell"},
}

// Shell executes lines typed by the user, one instruction at a time.
type Shell[V cpu.Value] struct {
	Emulator *emulator.Emulator[V]
	RunOnly  bool
	Output   io.Writer

	asm    cpu.Assembler[V]
	lineno int
}

// Run reads commands until /end, an executed END, end of input or
// cancellation. Errors
// from a single line are reported and the shell carries on.
func (sh *Shell[V]) Run(ctx context.Context, input io.Reader) (err error) {
	sh.asm.Verbose = sh.Emulator.Verbose

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = sh.Command(scanner.Text())
		if err != nil {
			sh.printf("error: %v\n", err)
			err = nil
		}
		if done {
			return
		}
	}

	err = scanner.Err()
	return
}

// Command runs a single shell line. done is set by /end, or when the
// line executed END.
func (sh *Shell[V]) Command(text string) (done bool, err error) {
	sh.lineno++

	words := strings.Fields(text)
	if len(words) == 0 || !strings.HasPrefix(words[0], "/") {
		done, err = sh.execute(text)
		return
	}

	command := strings.ToLower(words[0])
	switch command {
	case "/help":
		for _, help := range shellHelp {
			sh.printf("%-18s %v\n", help[0], help[1])
		}
		sh.printf("%-18s %v\n", "<line>", "assemble and execute a single line")
	case "/instructions":
		for ordinal, inst := range cpu.Instructions() {
			if inst.TakesOperand() {
				sh.printf("%02d %v <value>\n", ordinal, inst)
			} else {
				sh.printf("%02d %v\n", ordinal, inst)
			}
		}
	case "/interrupts":
		for ordinal, irq := range cpu.Interrupts() {
			sh.printf("%02d %v\n", ordinal, irq)
		}
	case "/registers":
		sh.printf("%v", sh.Emulator.Cpu)
	case "/reset":
		sh.Emulator.Reset()
	case "/toggle-run-only":
		sh.RunOnly = !sh.RunOnly
		sh.printf("run-only: %v\n", sh.RunOnly)
	case "/is-run-only":
		sh.printf("run-only: %v\n", sh.RunOnly)
	case "/end":
		done = true
	default:
		err = ErrUnknownCommand(command)
	}

	return
}

// execute assembles a single line and executes it at BZ.
func (sh *Shell[V]) execute(text string) (done bool, err error) {
	expanded, err := sh.asm.Expand(text, sh.lineno)
	if err != nil {
		return
	}

	code, err := cpu.ParseLine[V](expanded)
	if err != nil || code == nil {
		return
	}

	err = code.Check()
	if err != nil {
		return
	}

	if sh.RunOnly && code.First.Kind == cpu.TOKEN_INSTRUCTION {
		err = ErrRunOnly
		return
	}

	if !code.First.IsResolved() || (code.Second != nil && !code.Second.IsResolved()) {
		err = ErrJumpPoint
		return
	}

	res, err := sh.Emulator.Execute(code.Cell())
	if err != nil {
		return
	}

	switch res.Status {
	case cpu.STATUS_ENDED:
		sh.printf("%v\n", res.Status)
		done = true
	case cpu.STATUS_BREAKPOINT:
		sh.printf("%v\n", res.Status)
	}

	if sh.Emulator.Settings.ShowDataRegisters {
		sh.printf("%v", sh.Emulator.Cpu)
	}

	return
}

func (sh *Shell[V]) printf(format string, args ...any) {
	fmt.Fprintf(sh.Output, format, args...)
}
