// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/ezrec/kasm/console"
	"github.com/ezrec/kasm/cpu"
	"github.com/ezrec/kasm/emulator"
	"github.com/ezrec/kasm/settings"
	"github.com/ezrec/kasm/translate"
)

// options collected from the command line.
type options struct {
	source      string
	compile     bool
	run_only    bool
	load        bool
	interactive bool
	verbose     bool
	settings    settings.Settings
	input       io.Reader
	output      io.Writer
}

func main() {
	opts := &options{}

	var conf_path string
	var mode string
	var lang string

	flag.BoolVar(&opts.compile, "C", false, "Compile only, writing the .kbin listing")
	flag.BoolVar(&opts.run_only, "R", false, "Run only, do not write the .kbin listing")
	flag.BoolVar(&opts.load, "s", false, "Load the program without running it (lists it unless -i)")
	flag.BoolVar(&opts.interactive, "i", false, "Interactive shell after running the program")
	flag.StringVar(&conf_path, "settings", "", "Settings file (default in the user config directory)")
	flag.StringVar(&mode, "mode", "", "CPU mode: integer16, integer32, integer64 or float64")
	flag.StringVar(&lang, "lang", "", "Message language, as a BCP 47 tag")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose mode")

	flag.Parse()

	if len(lang) != 0 {
		translate.SetLanguage(lang)
	}

	if flag.NArg() > 1 {
		atexit.Fatalf("%v: %v: %v", os.Args[0], ErrArguments, flag.Args())
	}
	opts.source = flag.Arg(0)

	if len(conf_path) == 0 {
		var err error
		conf_path, err = settings.DefaultPath()
		if err != nil && opts.verbose {
			log.Printf("settings: %v", err)
		}
	}

	if len(conf_path) != 0 {
		var err error
		opts.settings, err = settings.Load(conf_path)
		if err != nil {
			log.Printf("%v: %v", conf_path, err)
		}
	} else {
		opts.settings = settings.Default()
	}

	if len(mode) != 0 {
		opts.settings.CpuMode = settings.CpuMode(mode)
		if !opts.settings.CpuMode.Valid() {
			atexit.Fatalf("%v: %v", os.Args[0], settings.ErrCpuMode(mode))
		}
	}

	if opts.interactive {
		opts.output = os.Stdout
	} else {
		stdout := bufio.NewWriter(os.Stdout)
		atexit.Register(func() { stdout.Flush() })
		opts.output = stdout
	}

	var err error
	switch opts.settings.CpuMode {
	case settings.CPU_MODE_INTEGER16:
		err = run[int16](opts)
	case settings.CPU_MODE_INTEGER32:
		err = run[int32](opts)
	case settings.CPU_MODE_FLOAT64:
		err = run[float64](opts)
	default:
		err = run[int64](opts)
	}

	if err != nil {
		atexit.Fatalf("%v: %v", os.Args[0], err)
	}

	atexit.Exit(0)
}

// run the emulator with registers of type V.
func run[V cpu.Value](opts *options) (err error) {
	emu := emulator.NewEmulator[V](&console.Tape{Output: opts.output})
	emu.Verbose = opts.verbose
	emu.Settings = opts.settings

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(opts.source) != 0 {
		err = compile(emu, opts)
		if err != nil {
			return
		}
	}

	if len(opts.source) == 0 && !opts.interactive {
		err = ErrNoSource
		return
	}

	if opts.compile {
		return
	}

	if len(opts.source) != 0 && !opts.load {
		var status cpu.Status
		status, err = emu.Run(ctx)
		if err != nil {
			err = &ErrFile{Path: opts.source, Err: err}
			return
		}

		if opts.verbose {
			log.Printf("%v: %v after %d instructions", opts.source, status, emu.Cpu.Ticks)
		}
	}

	if opts.interactive {
		input := opts.input
		if input == nil {
			input = os.Stdin
		}

		sh := &Shell[V]{
			Emulator: emu,
			RunOnly:  opts.run_only,
			Output:   opts.output,
		}
		err = sh.Run(ctx, input)
		return
	}

	if opts.load {
		err = emu.Program.WriteListing(opts.output, emu.Settings.ShowInstructionNames)
	}

	return
}

// compile the source file into the emulator, and unless in run-only
// mode write the listing next to it.
func compile[V cpu.Value](emu *emulator.Emulator[V], opts *options) (err error) {
	inf, err := os.Open(opts.source)
	if err != nil {
		return
	}
	defer inf.Close()

	err = emu.Compile(inf)
	if err != nil {
		err = &ErrFile{Path: opts.source, Err: err}
		return
	}

	if opts.run_only {
		return
	}

	listing := strings.TrimSuffix(opts.source, filepath.Ext(opts.source)) + ".kbin"
	if listing == opts.source {
		listing += ".kbin"
	}

	ouf, err := os.Create(listing)
	if err != nil {
		return
	}

	err = emu.Program.WriteListing(ouf, emu.Settings.ShowInstructionNames)
	err = errors.Join(err, ouf.Close())
	if err != nil {
		err = &ErrFile{Path: listing, Err: err}
		return
	}

	if opts.verbose {
		log.Printf("%v: %d cells", listing, len(emu.Program.Ram))
	}

	return
}
