// Package settings persists the host preferences of the emulator.
package settings

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CpuMode selects the register value type.
type CpuMode string

const (
	CPU_MODE_INTEGER16 = CpuMode("integer16")
	CPU_MODE_INTEGER32 = CpuMode("integer32")
	CPU_MODE_INTEGER64 = CpuMode("integer64")
	CPU_MODE_FLOAT64   = CpuMode("float64")
)

// CpuModes lists every valid mode.
var CpuModes = []CpuMode{
	CPU_MODE_INTEGER16,
	CPU_MODE_INTEGER32,
	CPU_MODE_INTEGER64,
	CPU_MODE_FLOAT64,
}

// Valid is true for a known mode.
func (mode CpuMode) Valid() bool {
	for _, known := range CpuModes {
		if mode == known {
			return true
		}
	}
	return false
}

const (
	DEFAULT_MAX_STEPS = 100_000            // Steps run between host updates.
	DEFAULT_CPU_MODE  = CPU_MODE_INTEGER64 // Register value type.
)

// Settings are the host preferences.
type Settings struct {
	MaxStepsBetweenRender uint64  `yaml:"max_steps_between_render"`
	ContinueAfterMaxSteps bool    `yaml:"continue_after_max_steps"`
	ShowInstructionNames  bool    `yaml:"show_instruction_names"`
	ShowDataRegisters     bool    `yaml:"show_data_registers"`
	CpuMode               CpuMode `yaml:"cpu_mode"`
}

// Default returns the settings used when none are stored.
func Default() Settings {
	return Settings{
		MaxStepsBetweenRender: DEFAULT_MAX_STEPS,
		ContinueAfterMaxSteps: false,
		ShowInstructionNames:  true,
		ShowDataRegisters:     true,
		CpuMode:               DEFAULT_CPU_MODE,
	}
}

// DefaultPath is the settings file in the user configuration directory.
func DefaultPath() (path string, err error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return
	}

	path = filepath.Join(dir, "kasm", "settings.yaml")
	return
}

// Decode reads settings. Missing fields keep their defaults. If the
// input is corrupt, the defaults are returned with the error.
func Decode(input io.Reader) (conf Settings, err error) {
	conf = Default()

	err = yaml.NewDecoder(input).Decode(&conf)
	if errors.Is(err, io.EOF) {
		// Empty document
		err = nil
		return
	}
	if err != nil {
		conf = Default()
		err = &ErrCorrupt{Err: err}
		return
	}

	err = conf.normalize()
	return
}

// Encode writes settings as YAML.
func (conf Settings) Encode(output io.Writer) (err error) {
	enc := yaml.NewEncoder(output)
	enc.SetIndent(2)

	err = enc.Encode(conf)
	if err != nil {
		return
	}

	err = enc.Close()
	return
}

// Load reads a settings file. An absent file yields the defaults and no
// error.
func Load(path string) (conf Settings, err error) {
	inf, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		conf = Default()
		err = nil
		return
	}
	if err != nil {
		conf = Default()
		return
	}
	defer inf.Close()

	conf, err = Decode(inf)
	return
}

// Save writes a settings file, creating its directory.
func (conf Settings) Save(path string) (err error) {
	err = os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return
	}

	ouf, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		_err := ouf.Close()
		if err == nil {
			err = _err
		}
	}()

	err = conf.Encode(ouf)
	return
}

// normalize replaces out-of-range values with their defaults.
func (conf *Settings) normalize() (err error) {
	if conf.MaxStepsBetweenRender == 0 {
		conf.MaxStepsBetweenRender = DEFAULT_MAX_STEPS
	}

	if !conf.CpuMode.Valid() {
		err = ErrCpuMode(conf.CpuMode)
		conf.CpuMode = DEFAULT_CPU_MODE
	}

	return
}
