package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSizes(t *testing.T) {
	r := SplitSizes(100, 40)
	assert.Equal(t, Rect{0, 0, 64, 25}, r[AsmView])
	assert.Equal(t, Rect{0, 26, 64, 39}, r[OutputView])
	assert.Equal(t, Rect{65, 0, 99, 25}, r[RegsView])
	assert.Equal(t, Rect{65, 26, 99, 39}, r[MemView])
}

func TestSplitSizesCover(t *testing.T) {
	for _, size := range [][2]int{{80, 24}, {200, 60}, {33, 17}} {
		maxX, maxY := size[0], size[1]
		r := SplitSizes(maxX, maxY)
		assert.Equal(t, r[AsmView].X1+1, r[RegsView].X0)
		assert.Equal(t, r[AsmView].Y1+1, r[OutputView].Y0)
		assert.Equal(t, r[RegsView].Y1+1, r[MemView].Y0)
		assert.Equal(t, maxX-1, r[MemView].X1)
		assert.Equal(t, maxY-1, r[MemView].Y1)
		assert.True(t, r[AsmView].Width() > r[RegsView].Width())
	}
}
