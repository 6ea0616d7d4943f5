package asm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/ucjs/go/arch/x86"
)

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, x86.X86, 0x1000, "nop; nop"))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "90 90", lines[2])
	assert.True(t, strings.HasPrefix(lines[0], "1000: 90"))
	assert.True(t, strings.HasPrefix(lines[1], "1001: 90"))
}
