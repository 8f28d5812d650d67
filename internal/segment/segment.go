// Package segment splits document text into the units the filter engine
// evaluates: lines, or runs of text delimited by a user-supplied regular
// expression.
package segment

import (
	"iter"
	"regexp"

	"github.com/Iron-Ham/filterlines/internal/errors"
)

// Split returns the segments of text. An empty separator selects line mode;
// anything else is compiled as the separator expression.
func Split(text, separator string) (iter.Seq[string], error) {
	if separator == "" {
		return Lines(text), nil
	}
	s, err := New(separator)
	if err != nil {
		return nil, err
	}
	return s.Segments(text), nil
}

// Lines yields one segment per line of text with the terminator stripped.
// "\n", "\r\n" and a bare "\r" are each a single line boundary. A trailing
// terminator produces a final empty line; empty text produces no lines.
func Lines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if text == "" {
			return
		}
		start := 0
		for i := 0; i < len(text); i++ {
			switch text[i] {
			case '\n':
				if !yield(text[start:i]) {
					return
				}
				start = i + 1
			case '\r':
				if !yield(text[start:i]) {
					return
				}
				if i+1 < len(text) && text[i+1] == '\n' {
					i++
				}
				start = i + 1
			}
		}
		yield(text[start:])
	}
}

// Segmenter splits text on a compiled separator expression.
type Segmenter struct {
	separator *regexp.Regexp
}

// New compiles separator. A pattern that fails to compile is reported as an
// *errors.PatternError of kind separator.
func New(separator string) (*Segmenter, error) {
	re, err := regexp.Compile(separator)
	if err != nil {
		return nil, errors.NewPatternError(errors.PatternSeparator, separator, err)
	}
	return &Segmenter{separator: re}, nil
}

// Pattern returns the separator expression source.
func (s *Segmenter) Pattern() string {
	return s.separator.String()
}

// Segments yields the segments of text.
//
// When the first separator match starts at offset 0 the separator is treated
// as a leading delimiter: each segment is the text between two separators and
// the separators themselves are dropped. Otherwise the separator is a
// trailing delimiter and stays attached to the text before it. Text after the
// last separator is yielded only when non-empty. Empty separator matches
// never delimit anything.
func (s *Segmenter) Segments(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		pos := 0
		fromBegin := false
		first := true

		for _, m := range s.separator.FindAllStringIndex(text, -1) {
			start, end := m[0], m[1]
			if start == end {
				continue
			}

			switch {
			case first && start == 0:
				fromBegin = true
			case fromBegin:
				if !yield(text[pos:start]) {
					return
				}
			default:
				if !yield(text[pos:end]) {
					return
				}
			}

			first = false
			pos = end
		}

		if pos < len(text) {
			yield(text[pos:])
		}
	}
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq[string]) []string {
	var out []string
	for s := range seq {
		out = append(out, s)
	}
	return out
}
