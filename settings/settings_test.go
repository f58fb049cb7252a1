package settings

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	conf := Default()
	assert.Equal(uint64(100_000), conf.MaxStepsBetweenRender)
	assert.False(conf.ContinueAfterMaxSteps)
	assert.True(conf.ShowInstructionNames)
	assert.True(conf.ShowDataRegisters)
	assert.Equal(CPU_MODE_INTEGER64, conf.CpuMode)
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		text     string
		expected Settings
		err      bool
	}){
		{"empty", "", Default(), false},
		{"partial", "continue_after_max_steps: true\n", func() Settings {
			conf := Default()
			conf.ContinueAfterMaxSteps = true
			return conf
		}(), false},
		{"mode", "cpu_mode: float64\nmax_steps_between_render: 10\n", func() Settings {
			conf := Default()
			conf.CpuMode = CPU_MODE_FLOAT64
			conf.MaxStepsBetweenRender = 10
			return conf
		}(), false},
		{"zero steps", "max_steps_between_render: 0\n", Default(), false},
		{"bad mode", "cpu_mode: integer128\nshow_help: true\n", Default(), true},
		{"corrupt", "max_steps_between_render: [1, 2\n", Default(), true},
		{"wrong type", "show_instruction_names: maybe\n", Default(), true},
	}

	for _, entry := range table {
		conf, err := Decode(strings.NewReader(entry.text))
		if entry.err {
			assert.Error(err, entry.name)
		} else {
			assert.NoError(err, entry.name)
		}
		assert.Equal(entry.expected, conf, entry.name)
	}
}

func TestDecodeErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Decode(strings.NewReader("cpu_mode: integer128\n"))
	var mode ErrCpuMode
	assert.ErrorAs(err, &mode)
	assert.Equal(ErrCpuMode("integer128"), mode)

	_, err = Decode(strings.NewReader("{"))
	var corrupt *ErrCorrupt
	assert.ErrorAs(err, &corrupt)
}

func TestSaveLoad(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	conf, err := Load(path)
	assert.NoError(err)
	assert.Equal(Default(), conf)

	conf.ContinueAfterMaxSteps = true
	conf.CpuMode = CPU_MODE_INTEGER16
	conf.MaxStepsBetweenRender = 42
	require.NoError(t, conf.Save(path))

	loaded, err := Load(path)
	assert.NoError(err)
	assert.Equal(conf, loaded)
}

func TestLoadCorrupt(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_steps_between_render: [1, 2\n"), 0644))

	conf, err := Load(path)
	assert.Error(err)
	assert.Equal(Default(), conf)
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	assert.NoError(Default().Encode(out))

	text := out.String()
	assert.Contains(text, "max_steps_between_render: 100000\n")
	assert.Contains(text, "cpu_mode: integer64\n")
}

func TestCpuMode(t *testing.T) {
	assert := assert.New(t)

	for _, mode := range CpuModes {
		assert.True(mode.Valid(), mode)
	}
	assert.False(CpuMode("").Valid())
	assert.False(CpuMode("Integer64").Valid())
}
