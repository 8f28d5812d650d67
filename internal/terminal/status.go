package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/Iron-Ham/filterlines/internal/tui/styles"
	"github.com/Iron-Ham/filterlines/internal/util"
)

const (
	statusWidth = 120
	clearLine   = "\r\x1b[2K"
)

// StatusLine renders transient status messages on a single terminal line.
// It stays silent when the writer is not a terminal so that piped output is
// not polluted.
type StatusLine struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
	shown   bool
}

// NewStatusLine returns a status line writing to w. Output is enabled only
// when w is a terminal.
func NewStatusLine(w io.Writer) *StatusLine {
	return &StatusLine{w: w, enabled: IsTerminal(w)}
}

// NewForcedStatusLine returns a status line that always writes, regardless of
// whether w is a terminal.
func NewForcedStatusLine(w io.Writer) *StatusLine {
	return &StatusLine{w: w, enabled: true}
}

// Status shows msg, replacing the previous message. An empty msg clears the
// line. Failure messages stay on screen.
func (s *StatusLine) Status(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return
	}
	if msg == "" {
		if s.shown {
			fmt.Fprint(s.w, clearLine)
			s.shown = false
		}
		return
	}

	kind := classify(msg)
	line := util.TruncateANSI(styles.StatusStyle(kind).Render(util.OneLine(msg)), statusWidth)
	if kind == styles.StatusKindFailed {
		fmt.Fprint(s.w, clearLine+line+"\n")
		s.shown = false
		return
	}
	fmt.Fprint(s.w, clearLine+line)
	s.shown = true
}

func classify(msg string) styles.StatusKind {
	switch {
	case strings.HasPrefix(msg, "Filter failed"):
		return styles.StatusKindFailed
	case strings.HasSuffix(msg, "..."):
		return styles.StatusKindBusy
	default:
		return styles.StatusKindInfo
	}
}

// IsTerminal reports whether w is an *os.File attached to a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
