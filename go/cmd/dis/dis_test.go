package dis

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/ucjs/go/arch/x86"
)

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, x86.X86, 0x1000, "90 90"))
	assert.Equal(t, "0x1000: 90 nop\n0x1001: 90 nop\n", buf.String())

	assert.Error(t, Print(&buf, x86.X86, 0x1000, "zz"))
	assert.Error(t, Print(&buf, x86.X86, 0x1000, ""))
}
