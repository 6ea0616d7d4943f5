package ui

import (
	"fmt"
	"strings"

	"github.com/jroimartin/gocui"
	"github.com/lunixbochs/vtclean"
	"github.com/mgutz/ansi"
	"github.com/pkg/errors"

	"github.com/lunixbochs/ucjs/go/models"
)

// memory pane window, from the pane address
const memWindow = 0x200

// Tui is the four-pane inspector: assembler, output, registers and memory.
type Tui struct {
	m    models.Machine
	g    *gocui.Gui
	addr uint64
}

type tailWriter struct {
	*gocui.View
	line string
}

func (t *tailWriter) Write(p []byte) (int, error) {
	// overwrite the partial line with its extended version
	x, y := t.Cursor()
	t.Overwrite = true
	t.SetCursor(0, y)
	for i := 0; i < x; i++ {
		t.EditWrite(' ')
	}
	t.SetCursor(0, y)
	t.Overwrite = false

	t.line = vtclean.Clean(t.line+string(p), false)
	for _, c := range t.line {
		if c == '\n' {
			t.EditNewLine()
			t.line = ""
			y += 1
		} else {
			t.EditWrite(c)
		}
	}
	t.SetCursor(len(t.line), y)
	return len(p), nil
}

func NewTui(m models.Machine) (*Tui, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "gocui failed")
	}
	t := &Tui{m: m, g: g, addr: m.Config().Addr}
	g.SetManagerFunc(t.layout)
	if err := t.layout(g); err != nil {
		g.Close()
		return nil, err
	}
	if err := t.bindKeys(); err != nil {
		g.Close()
		return nil, err
	}
	g.Cursor = true
	if v, err := g.View(OutputView); err == nil {
		m.SetOutput(&tailWriter{View: v})
	}
	t.refresh()
	return t, nil
}

func (t *Tui) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	titles := map[string]string{
		AsmView:    fmt.Sprintf("asm @ 0x%x", t.addr),
		OutputView: "output",
		RegsView:   "registers",
		MemView:    fmt.Sprintf("memory @ 0x%x", t.addr),
	}
	for name, r := range SplitSizes(maxX, maxY) {
		v, err := g.SetView(name, r.X0, r.Y0, r.X1, r.Y1)
		if err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
			v.Title = titles[name]
			switch name {
			case AsmView:
				v.Editable = true
				v.Editor = gocui.EditorFunc(t.asmInput)
			case OutputView:
				v.Wrap = true
				v.Autoscroll = true
			}
		}
	}
	if g.CurrentView() == nil {
		if _, err := g.SetCurrentView(AsmView); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tui) bindKeys() error {
	g := t.g
	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, t.quit); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.KeyTab, gocui.ModNone, t.nextView); err != nil {
		return err
	}
	return g.SetKeybinding("", gocui.KeyF10, gocui.ModNone, t.step)
}

func (t *Tui) quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

func (t *Tui) nextView(g *gocui.Gui, v *gocui.View) error {
	cur := 0
	if v != nil {
		for i, name := range paneOrder {
			if name == v.Name() {
				cur = i
			}
		}
	}
	_, err := g.SetCurrentView(paneOrder[(cur+1)%len(paneOrder)])
	return err
}

// asmInput edits normally; Enter also reassembles and runs the whole buffer.
func (t *Tui) asmInput(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	gocui.DefaultEditor.Edit(v, key, ch, mod)
	if key == gocui.KeyEnter {
		t.assemble(v.Buffer())
	}
}

func (t *Tui) step(g *gocui.Gui, v *gocui.View) error {
	if err := t.m.Step(); err != nil {
		t.m.Printf("step: %v\n", err)
	}
	t.refresh()
	return nil
}

// assemble writes src at the pane address and runs it to the end.
func (t *Tui) assemble(src string) {
	ins, code, err := AssembleLines(t.m.Arch(), t.addr, src)
	if err != nil {
		t.m.Printf("%v\n", err)
		return
	}
	for _, i := range ins {
		t.m.Printf("%s\n", i)
	}
	if len(code) > 0 {
		if err := t.m.MemWrite(t.addr, code); err != nil {
			t.m.Printf("write: %v\n", err)
		} else if err := t.m.Run(t.addr, t.addr+uint64(len(code))); err != nil {
			t.m.Printf("%v\n", err)
		}
	}
	t.refresh()
}

// AssembleLines assembles one instruction per non-empty line starting at base.
func AssembleLines(arch *models.Arch, base uint64, src string) ([]*models.Instruction, []byte, error) {
	if arch.Asm == nil {
		return nil, nil, errors.Errorf("no assembler for %s", arch.Name)
	}
	var ins []*models.Instruction
	var code []byte
	addr := base
	for n, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		i := models.NewInstruction(addr, arch.Asm, arch.Dis)
		if err := i.SetAsm(line); err != nil {
			return nil, nil, errors.Wrapf(err, "line %d", n+1)
		}
		ins = append(ins, i)
		code = append(code, i.Bytes...)
		addr += uint64(i.Len())
	}
	return ins, code, nil
}

func (t *Tui) refresh() {
	if v, err := t.g.View(RegsView); err == nil {
		v.Clear()
		regs, err := t.m.Registers()
		if err != nil {
			fmt.Fprintf(v, "%v\n", err)
		}
		for _, r := range regs {
			value := r.Value
			if r.Changed {
				value = ansi.Color(value, "yellow+b")
			}
			fmt.Fprintf(v, "%6s %s\n", r.Name, value)
		}
	}
	if v, err := t.g.View(MemView); err == nil {
		v.Clear()
		width, height := v.Size()
		mem, err := t.m.MemRead(t.addr, memWindow)
		if err != nil {
			fmt.Fprintf(v, "%v\n", err)
			return
		}
		lines := models.HexDump(t.addr, mem, int(t.m.Bits()), width)
		if height > 0 && len(lines) > height {
			lines = lines[:height]
		}
		fmt.Fprint(v, strings.Join(lines, "\n"))
	}
}

// Run blocks until the user quits.
func (t *Tui) Run() error {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}
