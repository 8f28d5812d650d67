package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// PatternError Tests
// -----------------------------------------------------------------------------

func TestNewPatternError(t *testing.T) {
	cause := errors.New("missing closing )")
	err := NewPatternError(PatternSearch, "a(b", cause)

	if err.Kind != PatternSearch {
		t.Errorf("Kind = %q, want %q", err.Kind, PatternSearch)
	}
	if err.Pattern != "a(b" {
		t.Errorf("Pattern = %q, want %q", err.Pattern, "a(b")
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
	if !err.IsUserFacing() {
		t.Error("IsUserFacing() = false, want true")
	}

	want := `invalid search pattern "a(b": missing closing )`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestPatternError_Is(t *testing.T) {
	cause := errors.New("boom")
	err := NewPatternError(PatternSeparator, "(", cause)

	if !Is(err, ErrInvalidPattern) {
		t.Error("PatternError should match ErrInvalidPattern")
	}
	if !Is(err, cause) {
		t.Error("PatternError should match its cause")
	}
	if Is(err, ErrInvalidInput) {
		t.Error("PatternError should not match ErrInvalidInput")
	}

	wrapped := fmt.Errorf("run filter: %w", err)
	var patternErr *PatternError
	if !As(wrapped, &patternErr) {
		t.Fatal("As() failed to find PatternError through wrapping")
	}
	if patternErr.Kind != PatternSeparator {
		t.Errorf("Kind = %q, want %q", patternErr.Kind, PatternSeparator)
	}
}

// -----------------------------------------------------------------------------
// ValidationError Tests
// -----------------------------------------------------------------------------

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "message only",
			err:  NewValidationError("pattern required"),
			want: "validation error: pattern required",
		},
		{
			name: "with field",
			err:  NewValidationError("pattern required").WithField("regex"),
			want: "validation error [field=regex]: pattern required",
		},
		{
			name: "with field and value",
			err:  NewValidationError("unknown level").WithField("logging.level").WithValue("loud"),
			want: "validation error [field=logging.level, value=loud]: unknown level",
		},
		{
			name: "with cause",
			err:  NewValidationError("bad separator").WithCause(errors.New("parse")),
			want: "validation error: bad separator: parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError("bad")
	if !Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
	if Is(err, ErrInvalidPattern) {
		t.Error("ValidationError should not match ErrInvalidPattern")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
}

// -----------------------------------------------------------------------------
// Classification Tests
// -----------------------------------------------------------------------------

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("internal"), false},
		{"pattern", NewPatternError(PatternSearch, "(", nil), true},
		{"validation", NewValidationError("x"), true},
		{"wrapped pattern", Wrap(NewPatternError(PatternSearch, "(", nil), "filter"), true},
		{"no document", ErrNoActiveDocument, true},
		{"canceled", Wrap(ErrPromptCanceled, "pattern prompt"), true},
		{"no terminal", Wrap(ErrNoTerminal, "pattern prompt"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	if got := GetSeverity(nil); got != SeverityDebug {
		t.Errorf("GetSeverity(nil) = %v, want %v", got, SeverityDebug)
	}
	if got := GetSeverity(errors.New("x")); got != SeverityError {
		t.Errorf("GetSeverity(plain) = %v, want %v", got, SeverityError)
	}
	if got := GetSeverity(ErrPromptCanceled); got != SeverityInfo {
		t.Errorf("GetSeverity(canceled) = %v, want %v", got, SeverityInfo)
	}
	if got := GetSeverity(NewValidationError("x")); got != SeverityWarning {
		t.Errorf("GetSeverity(validation) = %v, want %v", got, SeverityWarning)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrapf(ErrNoActiveDocument, "open %s", "notes.txt")
	if !Is(err, ErrNoActiveDocument) {
		t.Error("Wrapf should preserve the wrapped error")
	}
	if !strings.HasPrefix(err.Error(), "open notes.txt: ") {
		t.Errorf("Wrapf message = %q", err.Error())
	}
}
