// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/ezrec/kasm/console"
	"github.com/ezrec/kasm/cpu"
	"github.com/ezrec/kasm/settings"
)

// Emulator state. CPU + program listing + host settings.
type Emulator[V cpu.Value] struct {
	Verbose     bool              // If set, enables verbose logging.
	*cpu.Cpu[V]                   // Reference to the CPU simulation.
	Program     *cpu.Program[V]   // Reference to the currently loaded program listing.
	Settings    settings.Settings // Host preferences.
}

// NewEmulator creates a new emulator printing into sink.
func NewEmulator[V cpu.Value](sink console.Sink) (emu *Emulator[V]) {
	emu = &Emulator[V]{
		Cpu:      cpu.NewCpu[V](nil, sink),
		Program:  cpu.NewProgram[V](nil),
		Settings: settings.Default(),
	}

	return
}

// Compile assembles source text and loads it. On error the previously
// loaded program is kept.
func (emu *Emulator[V]) Compile(input io.Reader) (err error) {
	asm := &cpu.Assembler[V]{Verbose: emu.Verbose}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Load(prog)
	return
}

// Load replaces the program and resets the CPU registers.
func (emu *Emulator[V]) Load(prog *cpu.Program[V]) {
	emu.Program = prog
	emu.Reset()
}

// Reset the CPU registers, keeping the program image.
func (emu *Emulator[V]) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Load(emu.Program.Ram)
}

// LineNo returns the source line number of the instruction at BZ, or 0.
func (emu *Emulator[V]) LineNo() int {
	return emu.Program.Debug(emu.Cpu.Bz).LineNo
}

// Step executes the instruction at BZ. Printed text goes to the sink.
func (emu *Emulator[V]) Step() (res cpu.Result, err error) {
	cell, err := emu.Cpu.Fetch()
	if err != nil {
		err = emu.runtimeError(err)
		return
	}

	res, err = emu.Execute(cell)
	return
}

// Execute runs a single cell as though it was at BZ. Printed text goes
// to the sink.
func (emu *Emulator[V]) Execute(cell cpu.Cell[V]) (res cpu.Result, err error) {
	emu.Cpu.Verbose = emu.Verbose
	bz := emu.Cpu.Bz

	res, err = emu.Cpu.Execute(cell)
	if err != nil {
		err = emu.runtimeError(err)
		return
	}

	if res.Status == cpu.STATUS_PRINT && emu.Cpu.Sink != nil {
		err = emu.Cpu.Sink.WriteLine(res.Text)
		if err != nil {
			err = emu.runtimeError(&cpu.ErrSink{Bz: bz, Err: err})
		}
	}

	return
}

// Run steps until END. See run.
func (emu *Emulator[V]) Run(ctx context.Context) (status cpu.Status, err error) {
	return emu.run(ctx, false)
}

// RunToBreakpoint steps until END or BP. See run.
func (emu *Emulator[V]) RunToBreakpoint(ctx context.Context) (status cpu.Status, err error) {
	return emu.run(ctx, true)
}

// run steps in batches of Settings.MaxStepsBetweenRender. When a batch
// ends unfinished, the run fails with cpu.ErrTooManySteps unless
// Settings.ContinueAfterMaxSteps is set. The context is checked between
// batches.
func (emu *Emulator[V]) run(ctx context.Context, breakpoint bool) (status cpu.Status, err error) {
	emu.Cpu.Verbose = emu.Verbose

	budget := emu.Settings.MaxStepsBetweenRender
	if budget == 0 {
		budget = settings.DEFAULT_MAX_STEPS
	}

	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		if breakpoint {
			status, err = emu.Cpu.StepToBreakpoint(budget)
		} else {
			status, err = emu.Cpu.StepToEnd(budget)
		}
		if err != nil {
			err = emu.runtimeError(err)
			return
		}

		if status != cpu.STATUS_NOT_FINISHED {
			if emu.Verbose {
				log.Printf("emulator: %v after %d ticks", status, emu.Cpu.Ticks)
			}
			return
		}

		if !emu.Settings.ContinueAfterMaxSteps {
			err = cpu.ErrTooManySteps(budget)
			return
		}
	}
}

// runtimeError locates an execution error in the source. Console write
// failures are located at the INT that printed, as BZ has already moved on.
func (emu *Emulator[V]) runtimeError(err error) error {
	bz := emu.Cpu.Bz

	var sink *cpu.ErrSink
	if errors.As(err, &sink) {
		bz = sink.Bz
	}

	return &ErrRuntime{LineNo: emu.Program.Debug(bz).LineNo, Bz: bz, Err: err}
}
