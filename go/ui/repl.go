package ui

import (
	"io"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/shibukawa/configdir"

	"github.com/lunixbochs/ucjs/go/models"
)

type Repl struct {
	m       models.Machine
	rl      *readline.Instance
	session *Session
}

// HistoryPath is the per-user history file for mode ("repl" or "tui"),
// or "" when no cache folder can be created.
func HistoryPath(mode string) string {
	configDirs := configdir.New("ucjs", mode)
	cacheDir := configDirs.QueryCacheFolder()
	if err := cacheDir.MkdirAll(); err != nil {
		return ""
	}
	return filepath.Join(cacheDir.Path, "history")
}

func NewRepl(m models.Machine) (*Repl, error) {
	historyPath := m.Config().History
	if historyPath == "" {
		historyPath = HistoryPath("repl")
	}
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		HistoryFile:     historyPath,
	})
	if err != nil {
		return nil, err
	}
	// machine output goes through readline so the prompt is redrawn
	m.SetOutput(rl.Stderr())
	return &Repl{m: m, rl: rl, session: NewSession(m, rl.Stdout())}, nil
}

// Run reads lines until EOF. Ctrl-C stops the machine and clears the line.
func (r *Repl) Run() error {
	defer r.rl.Close()
	for {
		r.rl.SetPrompt(r.session.Prompt())
		line, err := r.rl.Readline()
		if err == readline.ErrInterrupt {
			r.m.Stop()
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		// failures are already printed
		r.session.Exec(line)
	}
}

func (r *Repl) Close() error {
	return r.rl.Close()
}
