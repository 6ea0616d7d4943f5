package repl

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	ucjs "github.com/lunixbochs/ucjs/go"
	"github.com/lunixbochs/ucjs/go/arch/x86"
	"github.com/lunixbochs/ucjs/go/cpu/sim"
	"github.com/lunixbochs/ucjs/go/models"
	"github.com/lunixbochs/ucjs/go/models/cpu"
)

func newContext(t *testing.T) (*Context, *bytes.Buffer) {
	config := models.DefaultConfig()
	m, err := ucjs.NewMachine(x86.X86, &sim.Builder{Arch: x86.X86}, config, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	var buf bytes.Buffer
	return &Context{Writer: &buf, M: m}, &buf
}

func TestParseNum(t *testing.T) {
	for in, want := range map[string]uint64{"10": 10, "0x10": 16, "0b101": 5, "0o17": 15, "-1": ^uint64(0)} {
		got, err := parseNum(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseNum("zz")
	assert.Error(t, err)
}

func TestRegCmd(t *testing.T) {
	c, buf := newContext(t)
	require.NoError(t, Run(c, "reg eax=0x1234 ebx=-1"))
	require.NoError(t, Run(c, "reg eax ebx"))
	assert.Equal(t, "eax 00001234\nebx ffffffff\n", buf.String())

	buf.Reset()
	require.NoError(t, Run(c, "reg nope eax=zz"))
	assert.Equal(t, "reg nope not found\ninvalid assignment: eax=zz\n", buf.String())

	buf.Reset()
	require.NoError(t, Run(c, "reg"))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, len(x86.X86.Regs))
	assert.Contains(t, lines[0], "eax")
}

func TestMapCmds(t *testing.T) {
	c, buf := newContext(t)
	require.NoError(t, Run(c, "map 0x200000 0x1000 r-x"))
	assert.Equal(t, "  0x200000-0x201000 r-x [user]\n", buf.String())

	buf.Reset()
	require.NoError(t, Run(c, "maps"))
	assert.Contains(t, buf.String(), "[code]")
	assert.Contains(t, buf.String(), "[user]")
	assert.Contains(t, buf.String(), "[stack]")

	err := Run(c, "map 0x200000")
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "usage: map")

	err = Run(c, "map 0x200000 0x1000")
	assert.Equal(t, cpu.Errno(cpu.ERR_MAP), errors.Cause(err))
}

func TestMemCmd(t *testing.T) {
	c, buf := newContext(t)
	require.NoError(t, c.M.MemWrite(0x10000, []byte("ABCD")))
	require.NoError(t, Run(c, "mem 0x10000 4"))
	assert.True(t, strings.HasPrefix(buf.String(), "  0x00010000: 41424344"), buf.String())

	assert.Error(t, Run(c, "mem 0x900000"))
}

func TestHexCmd(t *testing.T) {
	c, buf := newContext(t)
	require.NoError(t, Run(c, "hex 90 c3"))
	assert.Equal(t, "10000: 90 c3  nop; ret\n", buf.String())

	buf.Reset()
	require.NoError(t, Run(c, "hex b8010000 00"))
	assert.Equal(t, "10000: b8 01 00 00 00  mov eax, 1\n", buf.String())

	assert.Error(t, Run(c, "hex zz"))
	p, err := c.M.MemRead(0x10000, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, p)
}

func TestStrCmd(t *testing.T) {
	c, buf := newContext(t)
	require.NoError(t, c.M.MemWrite(0x10000, []byte("hi\x01\x00junk")))
	require.NoError(t, Run(c, "str 0x10000"))
	assert.Equal(t, `"hi\x01"`+"\n", buf.String())

	buf.Reset()
	require.NoError(t, Run(c, "str 0x10000 1"))
	assert.Equal(t, `"h"`+"\n", buf.String())

	// stops at the end of the mapping
	buf.Reset()
	require.NoError(t, c.M.MemWrite(0x1fffe, []byte("ok")))
	require.NoError(t, Run(c, "str 0x1fffe"))
	assert.Equal(t, `"ok"`+"\n", buf.String())

	assert.Error(t, Run(c, "str 0x900000"))
}

func TestSaveLoadCmds(t *testing.T) {
	c, _ := newContext(t)
	path := filepath.Join(t.TempDir(), "snap.bin")
	require.NoError(t, Run(c, "reg eax=7"))
	require.NoError(t, Run(c, "save "+path))
	require.NoError(t, Run(c, "reg eax=0"))
	require.NoError(t, Run(c, "load "+path))
	eax, err := c.M.RegRead(x86.EAX)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), eax)

	assert.Error(t, Run(c, "load "+filepath.Join(t.TempDir(), "missing")))
}

func TestRunCmd(t *testing.T) {
	c, _ := newContext(t)
	// the sim backend can't execute
	err := Run(c, "run")
	assert.Equal(t, cpu.Errno(cpu.ERR_ARCH), errors.Cause(err))
	err = Run(c, "step")
	assert.Equal(t, cpu.Errno(cpu.ERR_ARCH), errors.Cause(err))

	err = Run(c, "run 0x500000")
	assert.Equal(t, cpu.Errno(cpu.ERR_FETCH_UNMAPPED), errors.Cause(err))
	err = Run(c, "run 0x10000 0x10004")
	assert.Equal(t, cpu.Errno(cpu.ERR_ARCH), errors.Cause(err))
}

func TestUnknownAndHelp(t *testing.T) {
	c, buf := newContext(t)
	assert.Error(t, Run(c, "bogus"))
	assert.Equal(t, "command not found: bogus\n", buf.String())

	assert.NoError(t, Run(c, ""))
	assert.Error(t, Run(c, `reg "unterminated`))

	buf.Reset()
	require.NoError(t, Run(c, "help"))
	for _, name := range []string{"asm", "dis", "hex", "load", "map", "maps", "mem", "reg", "run", "save", "step", "str"} {
		assert.Contains(t, buf.String(), "  "+name)
	}
}
