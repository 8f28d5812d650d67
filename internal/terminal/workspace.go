package terminal

import (
	"io"
	"os"

	"github.com/Iron-Ham/filterlines/internal/errors"
	"github.com/Iron-Ham/filterlines/internal/host"
)

// Workspace serves a single document and writes every surface to out.
type Workspace struct {
	doc  host.Document
	out  io.Writer
	path string
	file *os.File
}

// NewWorkspace returns a workspace for doc. A nil doc means there is no
// active document.
func NewWorkspace(doc host.Document, out io.Writer) *Workspace {
	return &Workspace{doc: doc, out: out}
}

// NewFileWorkspace returns a workspace whose surfaces are written to the file
// at path. The file is created when the first surface is, so a run that
// fails or is canceled before producing results leaves it untouched.
func NewFileWorkspace(doc host.Document, path string) *Workspace {
	return &Workspace{doc: doc, path: path}
}

func (w *Workspace) ActiveDocument() (host.Document, bool) {
	if w.doc == nil {
		return nil, false
	}
	return w.doc, true
}

func (w *Workspace) NewSurface() (host.Surface, error) {
	if w.out == nil && w.path != "" {
		f, err := os.Create(w.path)
		if err != nil {
			return nil, errors.Wrapf(err, "create %s", w.path)
		}
		w.file = f
		w.out = f
	}
	if w.out == nil {
		return nil, errors.New("workspace has no output")
	}
	return &Surface{out: w.out}, nil
}

// Close closes the output file if one was created.
func (w *Workspace) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// Surface streams appended text to its writer. Name, scratch, wrap and syntax
// are kept for callers that want to describe the output.
type Surface struct {
	out      io.Writer
	name     string
	scratch  bool
	wordWrap bool
	syntax   string
	size     int
}

func (s *Surface) SetName(name string)     { s.name = name }
func (s *Surface) SetScratch(scratch bool) { s.scratch = scratch }
func (s *Surface) SetWordWrap(wrap bool)   { s.wordWrap = wrap }
func (s *Surface) SetSyntax(syntax string) { s.syntax = syntax }

func (s *Surface) Append(text string) error {
	n, err := io.WriteString(s.out, text)
	s.size += n
	if err != nil {
		return errors.Wrapf(err, "write %s", s.name)
	}
	return nil
}

func (s *Surface) Size() int      { return s.size }
func (s *Surface) Name() string   { return s.name }
func (s *Surface) Scratch() bool  { return s.scratch }
func (s *Surface) WordWrap() bool { return s.wordWrap }
func (s *Surface) Syntax() string { return s.syntax }
