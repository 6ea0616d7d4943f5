package consts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lunixbochs/ucjs/go/arch/x86"
	"github.com/lunixbochs/ucjs/go/models/cpu"
)

func TestDumpAll(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, nil))
	var groups []cpu.ConstGroup
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &groups))
	assert.Equal(t, cpu.ConstTable(), groups)
}

func TestDumpGroup(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, []string{"prot"}))
	var groups []cpu.ConstGroup
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "prot", groups[0].Name)
	assert.Contains(t, buf.String(), "name: PROT_ALL")

	assert.Error(t, Dump(&buf, []string{"nope"}))
}

func TestDumpRegs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DumpRegs(&buf, x86.X86))
	var entry archEntry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "x86", entry.Name)
	assert.Equal(t, 32, entry.Bits)
	assert.Len(t, entry.Regs, len(x86.X86.Regs))
	assert.Equal(t, x86.X86.Regs[0].Name, entry.Regs[0].Name)
}

func TestMainRegs(t *testing.T) {
	assert.Equal(t, 0, Main([]string{"consts", "-arch", "x86", "-regs"}))
	assert.Equal(t, 1, Main([]string{"consts", "bogus"}))
	assert.Equal(t, 2, Main([]string{"consts", "-nope"}))
}
