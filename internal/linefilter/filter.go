// Package linefilter selects the segments of a document that match a regular
// expression and assembles them into the text written to the results surface.
package linefilter

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/Iron-Ham/filterlines/internal/errors"
	"github.com/Iron-Ham/filterlines/internal/logging"
	"github.com/Iron-Ham/filterlines/internal/segment"
)

// Matcher is a compiled match predicate.
type Matcher struct {
	pattern       string
	re            *regexp.Regexp
	caseSensitive bool
	invert        bool
}

// NewMatcher compiles pattern. When caseSensitive is false the expression is
// compiled with case folding. Invalid patterns are reported as an
// *errors.PatternError of kind search.
func NewMatcher(pattern string, caseSensitive, invert bool) (*Matcher, error) {
	expr := pattern
	if !caseSensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.NewPatternError(errors.PatternSearch, pattern, err)
	}
	return &Matcher{
		pattern:       pattern,
		re:            re,
		caseSensitive: caseSensitive,
		invert:        invert,
	}, nil
}

// Pattern returns the pattern as the user entered it.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// CaseSensitive reports whether matching distinguishes case.
func (m *Matcher) CaseSensitive() bool {
	return m.caseSensitive
}

// Inverted reports whether the match result is negated.
func (m *Matcher) Inverted() bool {
	return m.invert
}

// Match reports whether the expression occurs anywhere in s, negated when the
// matcher is inverted.
func (m *Matcher) Match(s string) bool {
	return m.re.MatchString(s) != m.invert
}

// LineMatches compiles pattern and evaluates it against text once.
func LineMatches(pattern, text string, caseSensitive, invert bool) (bool, error) {
	m, err := NewMatcher(pattern, caseSensitive, invert)
	if err != nil {
		return false, err
	}
	return m.Match(text), nil
}

// Result is the outcome of one filter invocation.
type Result struct {
	// Text is the concatenated kept segments, or the no-match report.
	Text string
	// MatchCount is the number of kept segments.
	MatchCount int
	// Segments is the number of segments evaluated.
	Segments int
	// Report is true when Text is the no-match report.
	Report bool
}

// Filter evaluates every segment against m in order and concatenates the
// ones that are kept. In line mode each kept segment is followed by "\n";
// otherwise segments are joined verbatim. Zero kept segments leave Text empty;
// Run is responsible for substituting the report.
func Filter(segments iter.Seq[string], m *Matcher, lineMode bool) Result {
	var b strings.Builder
	var res Result
	for seg := range segments {
		res.Segments++
		if !m.Match(seg) {
			continue
		}
		res.MatchCount++
		b.WriteString(seg)
		if lineMode {
			b.WriteByte('\n')
		}
	}
	res.Text = b.String()
	return res
}

// Options configures Run.
type Options struct {
	Pattern       string
	CaseSensitive bool
	Invert        bool
	// Separator is a regular expression splitting the document. Empty
	// selects line mode.
	Separator string
	// Logger receives debug output. Nil disables logging.
	Logger *logging.Logger
}

// Run filters text end to end. Both expressions are compiled before any
// segment is evaluated so an invalid pattern never yields partial output.
func Run(text string, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	m, err := NewMatcher(opts.Pattern, opts.CaseSensitive, opts.Invert)
	if err != nil {
		logger.Warn("search pattern rejected", "pattern", opts.Pattern, "error", err.Error())
		return Result{}, err
	}

	segments, err := segment.Split(text, opts.Separator)
	if err != nil {
		logger.Warn("separator rejected", "separator", opts.Separator, "error", err.Error())
		return Result{}, err
	}

	lineMode := opts.Separator == ""
	res := Filter(segments, m, lineMode)
	logger.Debug("filter complete",
		"line_mode", lineMode,
		"segments", res.Segments,
		"matches", res.MatchCount,
		"invert", opts.Invert,
		"case_sensitive", opts.CaseSensitive,
	)

	if res.MatchCount == 0 {
		res.Text = NoMatchReport(opts.Pattern, opts.CaseSensitive)
		res.Report = true
	}
	return res, nil
}

// NoMatchReport is the text written in place of results when nothing matched.
func NoMatchReport(pattern string, caseSensitive bool) string {
	return fmt.Sprintf("Filtering lines for \"%s\" %s\n\n0 matches\n", pattern, caseDescription(caseSensitive))
}

func caseDescription(caseSensitive bool) string {
	if caseSensitive {
		return "(case-sensitive)"
	}
	return "(not case-sensitive)"
}

// Prompt is the label shown when asking for a search pattern.
func Prompt(invert bool) string {
	if invert {
		return "Filter file for lines not matching regex: "
	}
	return "Filter file for lines matching regex: "
}
