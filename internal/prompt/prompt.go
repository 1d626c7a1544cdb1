// Package prompt collects an estimation target interactively: the name to
// search for and any additional draw pools whose early drawers should be
// excluded. It yields a typed value before the core runs; no interactive
// state leaks past this package.
package prompt

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrAborted is returned when the user cancels the session with Ctrl-C or
// end-of-input.
var ErrAborted = errors.New("prompt aborted")

// Target is the outcome of one interactive session.
type Target struct {
	FirstName string
	LastName  string
	// AuxPools holds extra pool source references in entry order.
	AuxPools []string
}

// lineSource is the part of a readline instance the session drives.
// *readline.Instance satisfies it.
type lineSource interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// Session runs the interactive collection flow over a line source.
type Session struct {
	rl     lineSource
	closer io.Closer
}

func filterInput(r rune) (rune, bool) {
	// block CtrlZ feature
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}

// NewSession opens a readline-backed session on the controlling terminal.
func NewSession() (*Session, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              "draw-odds> ",
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	return &Session{rl: rl, closer: rl}, nil
}

// Close releases the underlying terminal.
func (s *Session) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Collect walks the full flow: target name, then auxiliary pools until an
// empty entry. Ctrl-C on an empty line or EOF aborts with ErrAborted.
func (s *Session) Collect() (*Target, error) {
	first, err := s.ask("First name: ", true)
	if err != nil {
		return nil, err
	}
	last, err := s.ask("Last name: ", true)
	if err != nil {
		return nil, err
	}
	pools, err := s.collectPools()
	if err != nil {
		return nil, err
	}
	return &Target{FirstName: first, LastName: last, AuxPools: pools}, nil
}

// ask reads one answer. With required set it re-prompts until the answer is
// non-empty; otherwise an empty line is a valid answer.
func (s *Session) ask(label string, required bool) (string, error) {
	s.rl.SetPrompt(label)
	for {
		line, err := s.rl.Readline()
		switch {
		case err == readline.ErrInterrupt:
			if len(line) == 0 {
				return "", ErrAborted
			}
			continue
		case err == io.EOF:
			return "", ErrAborted
		case err != nil:
			return "", err
		}

		line = strings.TrimSpace(line)
		if line == "" && required {
			continue
		}
		return line, nil
	}
}

// collectPools gathers pool references until the user enters an empty line.
func (s *Session) collectPools() ([]string, error) {
	var pools []string
	for {
		entry, err := s.ask("Additional pool (empty to finish): ", false)
		if err != nil {
			return nil, err
		}
		if entry == "" {
			return pools, nil
		}
		pools = append(pools, entry)
	}
}
