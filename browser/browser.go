// Package browser wraps a Chrome instance driven over the DevTools protocol.
// It owns the browser lifecycle and a persistent user profile directory;
// everything above it works against explicit Page handles.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/codeGROOVE-dev/retry"
)

// DefaultWaitTimeout bounds how long WaitVisible blocks before giving up.
const DefaultWaitTimeout = 10 * time.Second

// ErrNotStarted is returned when a page is requested before Start.
var ErrNotStarted = errors.New("browser not started")

// Manager owns one Chrome process and its allocator/browser contexts.
type Manager struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	logger        *slog.Logger
	userDataDir   string
	userAgent     string
	execPath      string
	headless      bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithUserDataDir sets the persistent Chrome profile directory. Session
// cookies survive restarts when the same directory is reused.
func WithUserDataDir(dir string) Option {
	return func(m *Manager) { m.userDataDir = dir }
}

// WithHeadless controls whether Chrome runs without a window.
func WithHeadless(headless bool) Option {
	return func(m *Manager) { m.headless = headless }
}

// WithUserAgent overrides the browser User-Agent string.
func WithUserAgent(ua string) Option {
	return func(m *Manager) { m.userAgent = ua }
}

// WithExecPath sets an explicit Chrome binary path.
func WithExecPath(path string) Option {
	return func(m *Manager) { m.execPath = path }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// DefaultUserDataDir returns the default persistent profile location.
func DefaultUserDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".linkedin-scraper", "browser_data")
}

// New creates a Manager. The browser process does not launch until Start.
func New(opts ...Option) *Manager {
	m := &Manager{
		logger:      slog.Default(),
		userDataDir: DefaultUserDataDir(),
		headless:    true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start launches Chrome with the persistent profile. Launch is retried on
// transient failure; a stale singleton lock from a crashed run is the usual
// cause.
func (m *Manager) Start(ctx context.Context) error {
	if err := os.MkdirAll(m.userDataDir, 0o750); err != nil {
		return fmt.Errorf("create user data dir: %w", err)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(m.userDataDir),
		chromedp.Flag("headless", m.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1280, 900),
	)
	if m.userAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(m.userAgent))
	}
	if m.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(m.execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	err := retry.Do(
		func() error {
			return chromedp.Run(browserCtx, chromedp.Navigate("about:blank"))
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			m.logger.Debug("retrying browser launch", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("browser launch failed: %w", err)
	}

	m.allocCancel = allocCancel
	m.browserCtx = browserCtx
	m.browserCancel = browserCancel

	m.logger.InfoContext(ctx, "browser started",
		"headless", m.headless, "user_data_dir", m.userDataDir)
	return nil
}

// UserDataDir returns the profile directory in use.
func (m *Manager) UserDataDir() string { return m.userDataDir }

// Page returns a handle bound to the browser's tab. The handle stays valid
// until Close.
func (m *Manager) Page() (*Page, error) {
	if m.browserCtx == nil {
		return nil, ErrNotStarted
	}
	return &Page{ctx: m.browserCtx, logger: m.logger}, nil
}

// Close shuts down the browser process. Safe to call more than once.
func (m *Manager) Close() {
	if m.browserCancel != nil {
		m.browserCancel()
		m.browserCancel = nil
	}
	if m.allocCancel != nil {
		m.allocCancel()
		m.allocCancel = nil
	}
	m.browserCtx = nil
}

// Page is a handle to one browser tab. Methods are not safe for concurrent
// use; sections of a scrape run strictly in sequence.
type Page struct {
	ctx    context.Context
	logger *slog.Logger
}

// Navigate loads url and waits for the load event.
func (p *Page) Navigate(ctx context.Context, url string) error {
	p.logger.Debug("navigate", "url", url)
	if err := run(ctx, p.ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// WaitVisible blocks until the selector matches a visible node or the
// timeout elapses. A zero timeout uses DefaultWaitTimeout.
func (p *Page) WaitVisible(ctx context.Context, sel string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := run(ctx, p.ctx, chromedp.WaitVisible(sel, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for %q: %w", sel, err)
	}
	return nil
}

// Evaluate runs a JavaScript expression and unmarshals its result into out.
// Pass nil when the result is not needed.
func (p *Page) Evaluate(ctx context.Context, js string, out any) error {
	if err := run(ctx, p.ctx, chromedp.Evaluate(js, out)); err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}

// OuterHTML returns the rendered HTML of the first node matching sel.
func (p *Page) OuterHTML(ctx context.Context, sel string) (string, error) {
	var html string
	if err := run(ctx, p.ctx, chromedp.OuterHTML(sel, &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("outer html %q: %w", sel, err)
	}
	return html, nil
}

// Title returns the document title.
func (p *Page) Title(ctx context.Context) (string, error) {
	var title string
	if err := run(ctx, p.ctx, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("read title: %w", err)
	}
	return strings.TrimSpace(title), nil
}

// URL returns the page's current location.
func (p *Page) URL(ctx context.Context) (string, error) {
	var loc string
	if err := run(ctx, p.ctx, chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return loc, nil
}

// Sleep pauses for d, honoring context cancellation.
func (p *Page) Sleep(ctx context.Context, d time.Duration) error {
	return run(ctx, p.ctx, chromedp.Sleep(d))
}

// ScrollToBottom scrolls the page in steps until the height stops growing or
// maxSteps is reached, pausing between steps so lazy sections can load.
func (p *Page) ScrollToBottom(ctx context.Context, maxSteps int, pause time.Duration) error {
	var lastHeight int
	for range maxSteps {
		var height int
		err := run(ctx, p.ctx,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight); document.body.scrollHeight`, &height),
			chromedp.Sleep(pause),
		)
		if err != nil {
			return fmt.Errorf("scroll: %w", err)
		}
		if height == lastHeight {
			break
		}
		lastHeight = height
	}
	return nil
}

// run executes chromedp actions on the browser context while honoring the
// caller's context. chromedp.Run only observes its own context, so a watcher
// goroutine bridges cancellation.
func run(ctx context.Context, browserCtx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(browserCtx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()

	err := chromedp.Run(runCtx, actions...)
	close(done)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
