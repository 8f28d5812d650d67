// Package testutil provides in-memory host collaborators for filterlines tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Iron-Ham/filterlines/internal/config"
	"github.com/Iron-Ham/filterlines/internal/host"
)

// Document is an in-memory host.Document.
type Document struct {
	Content  string
	DocName  string
	Language string
	Wrap     bool
	Err      error
}

func (d *Document) Text() (string, error) { return d.Content, d.Err }
func (d *Document) Name() string          { return d.DocName }
func (d *Document) Syntax() string        { return d.Language }
func (d *Document) WordWrap() bool        { return d.Wrap }

// Surface records everything written to it.
type Surface struct {
	Name     string
	Scratch  bool
	WordWrap bool
	Syntax   string
	buf      strings.Builder
}

func (s *Surface) SetName(name string)     { s.Name = name }
func (s *Surface) SetScratch(scratch bool) { s.Scratch = scratch }
func (s *Surface) SetWordWrap(wrap bool)   { s.WordWrap = wrap }
func (s *Surface) SetSyntax(syntax string) { s.Syntax = syntax }
func (s *Surface) Size() int               { return s.buf.Len() }

func (s *Surface) Append(text string) error {
	s.buf.WriteString(text)
	return nil
}

// Text returns the accumulated surface content.
func (s *Surface) Text() string { return s.buf.String() }

// Workspace hands out a fixed document and records created surfaces.
type Workspace struct {
	Doc      *Document
	Surfaces []*Surface
}

func (w *Workspace) ActiveDocument() (host.Document, bool) {
	if w.Doc == nil {
		return nil, false
	}
	return w.Doc, true
}

func (w *Workspace) NewSurface() (host.Surface, error) {
	s := &Surface{}
	w.Surfaces = append(w.Surfaces, s)
	return s, nil
}

// Answer is one scripted prompt response.
type Answer struct {
	Value    string
	Canceled bool
}

// Prompter replies to prompts from a script and records what was asked.
type Prompter struct {
	Answers  []Answer
	Labels   []string
	Initials []string
}

func (p *Prompter) Prompt(label, initial string) (string, bool, error) {
	p.Labels = append(p.Labels, label)
	p.Initials = append(p.Initials, initial)
	if len(p.Answers) == 0 {
		return "", false, nil
	}
	a := p.Answers[0]
	p.Answers = p.Answers[1:]
	return a.Value, !a.Canceled, nil
}

// Status records every status message.
type Status struct {
	Messages []string
}

func (s *Status) Status(msg string) { s.Messages = append(s.Messages, msg) }

// Last returns the most recent message.
func (s *Status) Last() string {
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[len(s.Messages)-1]
}

// Preferences is an in-memory preference store.
type Preferences struct {
	Prefs config.Preferences
	Saved []string
}

// NewPreferences returns a store holding the default preferences.
func NewPreferences() *Preferences {
	return &Preferences{Prefs: config.Default().Preferences}
}

func (p *Preferences) Load() config.Preferences { return p.Prefs }

func (p *Preferences) SaveLatestSearch(pattern string) error {
	p.Prefs.LatestSearch = pattern
	p.Saved = append(p.Saved, pattern)
	return nil
}

// WriteFile writes content to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
