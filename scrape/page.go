// Package scrape orchestrates profile and company scrapes over a rendered
// browser page. Extraction heuristics live in the extract package; this
// package drives navigation, runs the in-page collector scripts, and
// assembles the final records.
package scrape

import (
	"context"
	"fmt"
	"time"
)

// Page is the surface the scrapers need from a browser tab. The concrete
// implementation lives in the browser package; tests substitute a fake.
type Page interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, sel string, timeout time.Duration) error
	Evaluate(ctx context.Context, js string, out any) error
	OuterHTML(ctx context.Context, sel string) (string, error)
	Title(ctx context.Context) (string, error)
	URL(ctx context.Context) (string, error)
	Sleep(ctx context.Context, d time.Duration) error
	ScrollToBottom(ctx context.Context, maxSteps int, pause time.Duration) error
}

// SectionError records a recoverable failure of one profile section. The
// section's fields stay empty and the scrape continues.
type SectionError struct {
	Section string
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("section %s: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error { return e.Err }
