// Package host defines the editor-side collaborators a filter invocation talks
// to and the command that drives one invocation through them.
//
// The interfaces keep the filtering flow independent of any particular
// editor: a terminal implementation lives in internal/terminal, and tests use
// in-memory fakes.
package host

import (
	"github.com/Iron-Ham/filterlines/internal/config"
)

// Document is the text being filtered.
type Document interface {
	// Text returns the full document content.
	Text() (string, error)
	// Name identifies the document in logs and status messages.
	Name() string
	// Syntax is the language tag of the document, empty if unknown.
	Syntax() string
	// WordWrap reports whether the document is displayed with word wrap.
	WordWrap() bool
}

// Surface is a new output buffer that receives the filter results.
type Surface interface {
	SetName(name string)
	SetScratch(scratch bool)
	SetWordWrap(wrap bool)
	SetSyntax(syntax string)
	// Append writes text at the end of the surface.
	Append(text string) error
	// Size is the number of bytes written so far.
	Size() int
}

// Workspace gives access to the active document and creates surfaces.
type Workspace interface {
	// ActiveDocument returns the focused document, or false when there is none.
	ActiveDocument() (Document, bool)
	NewSurface() (Surface, error)
}

// Prompter asks the user for a line of text.
type Prompter interface {
	// Prompt shows label with initial as editable text. ok is false when the
	// user dismissed the prompt.
	Prompt(label, initial string) (value string, ok bool, err error)
}

// StatusReporter shows transient status messages. An empty message clears
// the status.
type StatusReporter interface {
	Status(msg string)
}

// Preferences is the persisted settings store.
type Preferences interface {
	Load() config.Preferences
	SaveLatestSearch(pattern string) error
}
