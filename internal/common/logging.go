package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"
)

// LogOptions controls logger construction for a command.
type LogOptions struct {
	Quiet   bool
	Verbose bool
	File    string // optional JSON log file, appended to
}

// Level maps the quiet/verbose flags to a slog level. Quiet wins.
func (o LogOptions) Level() slog.Level {
	switch {
	case o.Quiet:
		return slog.LevelError
	case o.Verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the command logger. Without a log file it writes JSON to
// stderr. With one it fans out to text on stderr and JSON in the file.
// Every record carries a run_id. The returned func closes the log file.
func NewLogger(stderr io.Writer, opts LogOptions) (*slog.Logger, func() error, error) {
	level := opts.Level()
	closer := func() error { return nil }

	var handler slog.Handler
	if opts.File == "" {
		handler = slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level})
	} else {
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, closer, fmt.Errorf("failed to open log file: %w", err)
		}
		closer = file.Close
		handler = slogmulti.Fanout(
			slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
			slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}),
		)
	}

	return slog.New(handler).With("run_id", uuid.NewString()), closer, nil
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok || file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
