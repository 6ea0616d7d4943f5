package ui

// Pane names, in Tab order.
const (
	AsmView    = "asm"
	OutputView = "output"
	RegsView   = "regs"
	MemView    = "mem"
)

var paneOrder = []string{AsmView, RegsView, MemView, OutputView}

// splitRatio is the share of the first pane in every split.
const splitRatio = 0.65

type Rect struct {
	X0, Y0, X1, Y1 int
}

func (r Rect) Width() int  { return r.X1 - r.X0 - 1 }
func (r Rect) Height() int { return r.Y1 - r.Y0 - 1 }

func splitAt(n int) int {
	return int(float64(n) * splitRatio)
}

// SplitSizes lays the four panes out on a maxX by maxY screen. The screen
// is split 65/35 horizontally, then each side 65/35 vertically: assembler
// over output on the left, registers over memory on the right.
func SplitSizes(maxX, maxY int) map[string]Rect {
	midX, midY := splitAt(maxX), splitAt(maxY)
	return map[string]Rect{
		AsmView:    {0, 0, midX - 1, midY - 1},
		OutputView: {0, midY, midX - 1, maxY - 1},
		RegsView:   {midX, 0, maxX - 1, midY - 1},
		MemView:    {midX, midY, maxX - 1, maxY - 1},
	}
}
