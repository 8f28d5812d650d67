// Package logging provides structured logging for filterlines.
//
// This package wraps Go's log/slog to write JSON-formatted entries, either to
// a filterlines.log file in a configured directory or to stderr. Logging is
// off unless enabled in the configuration, in which case commands receive
// [NopLogger].
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("filter complete", "matches", 12)
//
// # Context Propagation
//
// Every filter invocation gets its own identifier so entries written by the
// prompt, the engine and the output surface can be correlated:
//
//	inv := logger.WithInvocation(logging.NewInvocationID())
//	inv.WithDocument("notes.txt").Debug("prompting for pattern")
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"prompting for pattern","invocation_id":"5b0e...","document":"notes.txt"}
//
// # Log Levels
//
//   - [LevelDebug]: Segment and match counts per invocation
//   - [LevelInfo]: Invocation start and finish (default)
//   - [LevelWarn]: Rejected patterns
//   - [LevelError]: Failures writing results
//
// Use [ValidLevels] to get the list of valid level strings, and [ParseLevel]
// to normalize user-provided level strings.
package logging
