package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/lunixbochs/ucjs/go/models"
	"github.com/lunixbochs/ucjs/go/repl"
)

// Session interprets REPL lines: ".cmd args" runs a command, anything else
// is assembled at pc, written and executed. Register changes are printed after each line.
type Session struct {
	m     models.Machine
	out   io.Writer
	ctx   *repl.Context
	diff  *models.StatusDiff
	color bool
}

func NewSession(m models.Machine, out io.Writer) *Session {
	s := &Session{
		m:     m,
		out:   out,
		ctx:   &repl.Context{Writer: out, M: m},
		diff:  &models.StatusDiff{M: m},
		color: m.Config().Color,
	}
	// baseline, so the first line only reports its own changes
	s.diff.Changes(true)
	return s
}

func (s *Session) Prompt() string {
	pc, err := s.m.PC()
	if err != nil {
		return "> "
	}
	return fmt.Sprintf("0x%x: ", pc)
}

func (s *Session) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	var err error
	if strings.HasPrefix(line, ".") {
		err = repl.Run(s.ctx, line[1:])
	} else {
		err = s.execAsm(line)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	s.printChanges()
	return err
}

func (s *Session) execAsm(line string) error {
	pc, err := s.m.PC()
	if err != nil {
		return err
	}
	code, err := s.m.Assemble(line, pc)
	if err != nil {
		return err
	}
	if len(code) == 0 {
		return nil
	}
	if err := s.m.MemWrite(pc, code); err != nil {
		return err
	}
	return s.m.Run(pc, pc+uint64(len(code)))
}

func (s *Session) printChanges() {
	changes, err := s.diff.Changes(true)
	if err != nil {
		fmt.Fprintf(s.out, "error reading registers: %v\n", err)
		return
	}
	fmt.Fprint(s.out, changes.String(s.color))
}
