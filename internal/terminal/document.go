// Package terminal implements the host collaborators for a command-line
// session: documents read from files or stdin, results written to a stream,
// prompts drawn with bubbletea and a status line on stderr.
package terminal

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Iron-Ham/filterlines/internal/errors"
)

// StdinName is the document name used when reading standard input.
const StdinName = "<stdin>"

var syntaxByExt = map[string]string{
	".go":   "Go",
	".py":   "Python",
	".js":   "JavaScript",
	".ts":   "TypeScript",
	".json": "JSON",
	".yaml": "YAML",
	".yml":  "YAML",
	".md":   "Markdown",
	".sh":   "Shell",
	".log":  "Log",
	".csv":  "CSV",
	".txt":  "Plain Text",
}

// SyntaxFor guesses a syntax tag from a file name. Unknown extensions give "".
func SyntaxFor(name string) string {
	return syntaxByExt[strings.ToLower(filepath.Ext(name))]
}

// Document is a text source read once on first use.
type Document struct {
	name     string
	syntax   string
	wordWrap bool
	open     func() (io.ReadCloser, error)

	once sync.Once
	text string
	err  error
}

// NewFileDocument returns a document backed by the file at path.
func NewFileDocument(path string, wordWrap bool) *Document {
	return &Document{
		name:     path,
		syntax:   SyntaxFor(path),
		wordWrap: wordWrap,
		open:     func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// NewReaderDocument returns a document backed by r, typically stdin.
func NewReaderDocument(name string, r io.Reader, wordWrap bool) *Document {
	return &Document{
		name:     name,
		syntax:   SyntaxFor(name),
		wordWrap: wordWrap,
		open:     func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
	}
}

func (d *Document) Text() (string, error) {
	d.once.Do(func() {
		rc, err := d.open()
		if err != nil {
			d.err = errors.Wrapf(err, "open %s", d.name)
			return
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			d.err = errors.Wrapf(err, "read %s", d.name)
			return
		}
		d.text = string(data)
	})
	return d.text, d.err
}

func (d *Document) Name() string   { return d.name }
func (d *Document) Syntax() string { return d.syntax }
func (d *Document) WordWrap() bool { return d.wordWrap }
