package cmd

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	ucjs "github.com/lunixbochs/ucjs/go"
	"github.com/lunixbochs/ucjs/go/models"
)

func testCmd() (*UcCmd, *bytes.Buffer) {
	var stderr bytes.Buffer
	c := NewUcCmd("")
	c.Stdout = &stderr
	c.Stderr = &stderr
	c.Logger = zap.NewNop()
	return c, &stderr
}

func TestConfigureOverrides(t *testing.T) {
	c, _ := testCmd()
	args, err := c.configure([]string{"ucjs test", "-arch", "arm", "-backend", "sim", "-addr", "0x4000", "rest"})
	require.NoError(t, err)
	assert.Equal(t, []string{"rest"}, args)
	assert.Equal(t, "arm", c.Config.Arch)
	assert.Equal(t, "sim", c.Config.Backend)
	assert.Equal(t, uint64(0x4000), c.Config.Addr)
	// untouched values keep their defaults
	assert.Equal(t, uint64(0x10000), c.Config.MemSize)
}

func TestConfigureWasmImpliesBackend(t *testing.T) {
	c, _ := testCmd()
	_, err := c.configure([]string{"ucjs test", "-wasm", "unicorn.wasm"})
	require.NoError(t, err)
	assert.Equal(t, "wasm", c.Config.Backend)
	assert.Equal(t, "unicorn.wasm", c.Config.WasmPath)

	c, _ = testCmd()
	_, err = c.configure([]string{"ucjs test", "-backend", "unicorn", "-wasm", "unicorn.wasm"})
	require.NoError(t, err)
	assert.Equal(t, "unicorn", c.Config.Backend)
}

func TestConfigureFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "ucjs")
	require.NoError(t, err)
	path := filepath.Join(dir, "ucjs.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("arch: mips\naddr: 0x2000\n"), 0644))

	c, _ := testCmd()
	_, err = c.configure([]string{"ucjs test", "-config", path, "-addr", "0x3000"})
	require.NoError(t, err)
	assert.Equal(t, "mips", c.Config.Arch)
	assert.Equal(t, uint64(0x3000), c.Config.Addr)
}

func TestRunMachine(t *testing.T) {
	c, _ := testCmd()
	var got *ucjs.Machine
	c.RunMachine = func(m *ucjs.Machine, args []string) error {
		got = m
		pc, err := m.PC()
		assert.NoError(t, err)
		assert.Equal(t, uint64(0x8000), pc)
		return nil
	}
	assert.Equal(t, 0, c.Run([]string{"ucjs test", "-arch", "x86", "-backend", "sim", "-addr", "0x8000"}))
	require.NotNil(t, got)
	assert.Equal(t, "x86", got.Arch().Name)
}

func TestRunErrors(t *testing.T) {
	c, out := testCmd()
	assert.Equal(t, 1, c.Run([]string{"ucjs test", "-arch", "z80"}))
	assert.Contains(t, out.String(), "Error: ")

	c, _ = testCmd()
	assert.Equal(t, 2, c.Run([]string{"ucjs test", "-bogus"}))

	c, _ = testCmd()
	assert.Equal(t, 0, c.Run([]string{"ucjs test", "-h"}))
}

func TestRunArch(t *testing.T) {
	c, _ := testCmd()
	c.NoMachine = true
	var arch *models.Arch
	c.RunArch = func(a *models.Arch, args []string) error {
		arch = a
		return nil
	}
	assert.Equal(t, 0, c.Run([]string{"ucjs test", "-arch", "amd64"}))
	assert.Equal(t, "x86_64", arch.Name)
}

func TestNewLogger(t *testing.T) {
	_, err := NewLogger("warn", false)
	assert.NoError(t, err)
	_, err = NewLogger("", true)
	assert.NoError(t, err)
	_, err = NewLogger("loud", false)
	assert.Error(t, err)
}
