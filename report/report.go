// Package report delivers rendered workout summaries to their destination.
//
// The workout computations never perform I/O themselves. They hand each
// rendered line to a Reporter, which may print it, log it or append it to a file.
package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

const (
	// DestinationStdout writes summary lines to standard output.
	DestinationStdout = "stdout"
	// DestinationStderr writes summary lines to standard error.
	DestinationStderr = "stderr"
	// DestinationLog emits summary lines through the structured logger.
	DestinationLog = "log"
)

// Reporter receives one rendered summary line per workout.
type Reporter interface {
	Report(ctx context.Context, line string) error
}

// WriterReporter writes each line, newline terminated, to an io.Writer.
// It is safe for concurrent use.
type WriterReporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterReporter creates a WriterReporter.
func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{w: w}
}

// Report writes line followed by a newline.
func (r *WriterReporter) Report(_ context.Context, line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := io.WriteString(r.w, line+"\n"); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// LogReporter emits each line as an info record.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a LogReporter. A nil logger falls back to slog.Default().
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

// Report logs line at info level. It never fails.
func (r *LogReporter) Report(ctx context.Context, line string) error {
	r.logger.InfoContext(ctx, "workout summary", "summary", line)
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns the Reporter for destination, which is one of stdout, stderr,
// log or a file path. Files are created if needed and appended to. The returned
// io.Closer must be closed once reporting is finished.
func New(destination string, logger *slog.Logger) (Reporter, io.Closer, error) {
	switch destination {
	case "", DestinationStdout:
		return NewWriterReporter(os.Stdout), nopCloser{}, nil
	case DestinationStderr:
		return NewWriterReporter(os.Stderr), nopCloser{}, nil
	case DestinationLog:
		return NewLogReporter(logger), nopCloser{}, nil
	default:
		f, err := os.OpenFile(destination, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open report file %q: %w", destination, err)
		}
		return NewWriterReporter(f), f, nil
	}
}
