// Package progress reports scrape progress to an observer. Scrapers call the
// reporter at fixed stages; observers decide what to do with the updates.
package progress

import (
	"context"
	"log/slog"
)

// Reporter receives stage updates during a scrape. Implementations must be
// safe for use from a single scrape goroutine; scrapers never call a reporter
// concurrently.
type Reporter interface {
	// Start signals that a scrape of the given kind ("person" or "company")
	// has begun for url.
	Start(kind, url string)
	// Progress reports a stage message with a fixed percentage in [0, 100].
	Progress(message string, percent int)
	// Complete signals that the scrape finished, passing the assembled
	// record (*profile.Person or *profile.Company).
	Complete(kind string, result any)
	// Error signals a fatal scrape failure. Per-section failures are not
	// reported here; they surface on the scrape result instead.
	Error(err error)
}

// Nop is a Reporter that discards all updates.
type Nop struct{}

func (Nop) Start(string, string) {}
func (Nop) Progress(string, int) {}
func (Nop) Complete(string, any) {}
func (Nop) Error(error)          {}

// Log is a Reporter that writes updates to a slog logger at debug level,
// with errors at warn.
type Log struct {
	Logger *slog.Logger
}

// NewLog returns a Log reporter. A nil logger defaults to slog.Default().
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{Logger: logger}
}

func (l *Log) Start(kind, url string) {
	l.Logger.InfoContext(context.Background(), "scrape started", "kind", kind, "url", url)
}

func (l *Log) Progress(message string, percent int) {
	l.Logger.Debug("scrape progress", "message", message, "percent", percent)
}

func (l *Log) Complete(kind string, _ any) {
	l.Logger.Info("scrape complete", "kind", kind)
}

func (l *Log) Error(err error) {
	l.Logger.Warn("scrape failed", "error", err)
}
