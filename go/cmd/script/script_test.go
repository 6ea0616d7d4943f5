package script

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainScript(t *testing.T) {
	dir, err := ioutil.TempDir("", "ucjs")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	good := filepath.Join(dir, "good.star")
	require.NoError(t, ioutil.WriteFile(good, []byte("uc.reg_write('eax', 1)\nprint(uc.reg_read('eax'))\n"), 0644))
	assert.Equal(t, 0, Main([]string{"ucjs script", "-arch", "x86", "-backend", "sim", good}))

	bad := filepath.Join(dir, "bad.star")
	require.NoError(t, ioutil.WriteFile(bad, []byte("uc.reg_read('nope')\n"), 0644))
	assert.Equal(t, 1, Main([]string{"ucjs script", "-arch", "x86", "-backend", "sim", bad}))

	assert.Equal(t, 1, Main([]string{"ucjs script", "-arch", "x86", "-backend", "sim"}))
}
