// Package linkedinscraper fetches LinkedIn person and company profiles with
// a headless browser and an authenticated session. It wires cookie
// resolution, the browser lifecycle, scraping, and an optional on-disk
// result cache behind one call.
package linkedinscraper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/stickerdaniel/linkedin-scraper/auth"
	"github.com/stickerdaniel/linkedin-scraper/browser"
	"github.com/stickerdaniel/linkedin-scraper/pagecache"
	"github.com/stickerdaniel/linkedin-scraper/profile"
	"github.com/stickerdaniel/linkedin-scraper/progress"
	"github.com/stickerdaniel/linkedin-scraper/scrape"
)

// Client scrapes profiles with a managed browser session.
type Client struct {
	manager  *browser.Manager
	cache    *pagecache.Cache
	logger   *slog.Logger
	reporter progress.Reporter
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cookies        map[string]string
	cache          *pagecache.Cache
	logger         *slog.Logger
	reporter       progress.Reporter
	userDataDir    string
	cookieFile     string
	execPath       string
	headless       bool
	browserCookies bool
}

// WithCookies sets explicit session cookie values.
func WithCookies(cookies map[string]string) Option {
	return func(c *config) { c.cookies = cookies }
}

// WithBrowserCookies enables reading cookies from installed browser stores.
func WithBrowserCookies() Option {
	return func(c *config) { c.browserCookies = true }
}

// WithCookieFile sets a portable cookie file to import a session from.
func WithCookieFile(path string) Option {
	return func(c *config) { c.cookieFile = path }
}

// WithUserDataDir sets the persistent browser profile directory.
func WithUserDataDir(dir string) Option {
	return func(c *config) { c.userDataDir = dir }
}

// WithHeadless controls whether the browser runs without a window.
func WithHeadless(headless bool) Option {
	return func(c *config) { c.headless = headless }
}

// WithExecPath sets an explicit Chrome binary path.
func WithExecPath(path string) Option {
	return func(c *config) { c.execPath = path }
}

// WithCache sets the scraped-record cache. Without it every Fetch scrapes.
func WithCache(cache *pagecache.Cache) Option {
	return func(c *config) { c.cache = cache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithReporter sets a progress observer for scrapes.
func WithReporter(r progress.Reporter) Option {
	return func(c *config) { c.reporter = r }
}

// New creates a Client: resolves session cookies, launches the browser, and
// applies the session. Cookie sources are checked in order: WithCookies >
// environment > cookie file > browser stores. Close must be called when done.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &config{
		logger:      slog.Default(),
		reporter:    progress.Nop{},
		userDataDir: browser.DefaultUserDataDir(),
		headless:    true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.cookieFile == "" {
		cfg.cookieFile = browser.DefaultCookiePath(cfg.userDataDir)
	}

	// Build cookie sources chain
	var sources []auth.Source
	if len(cfg.cookies) > 0 {
		sources = append(sources, auth.NewStaticSource(cfg.cookies))
	}
	sources = append(sources, auth.EnvSource{}, auth.NewFileSource(cfg.cookieFile, cfg.logger))
	if cfg.browserCookies {
		sources = append(sources, auth.NewBrowserSource(cfg.logger))
	}

	cookies, err := auth.ChainSources(ctx, sources...)
	if err != nil {
		return nil, fmt.Errorf("cookie retrieval failed: %w", err)
	}

	// A fresh profile directory with no cookies cannot possibly hold a
	// session; fail before launching a browser that would hit the auth wall.
	if len(cookies) == 0 && !dirExists(cfg.userDataDir) {
		return nil, fmt.Errorf("%w: set %v, export a cookie file, or run create-session first",
			profile.ErrNoCookies, auth.EnvVarNames())
	}

	manager := browser.New(
		browser.WithUserDataDir(cfg.userDataDir),
		browser.WithHeadless(cfg.headless),
		browser.WithExecPath(cfg.execPath),
		browser.WithLogger(cfg.logger),
	)
	if err := manager.Start(ctx); err != nil {
		return nil, err
	}

	// Without fresh cookies the persistent profile may still hold a valid
	// session from an earlier run; the scrape's auth check decides.
	if len(cookies) > 0 {
		if err := manager.SetCookies(ctx, cookies); err != nil {
			manager.Close()
			return nil, err
		}
		cfg.logger.InfoContext(ctx, "session cookies applied", "cookie_count", len(cookies))
	} else {
		cfg.logger.InfoContext(ctx, "no cookies resolved, relying on persistent profile",
			"env_vars", auth.EnvVarNames())
	}

	return &Client{
		manager:  manager,
		cache:    cfg.cache,
		logger:   cfg.logger,
		reporter: cfg.reporter,
	}, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Close shuts down the browser.
func (c *Client) Close() {
	c.manager.Close()
}

// Manager exposes the underlying browser for session management (login,
// cookie export).
func (c *Client) Manager() *browser.Manager {
	return c.manager
}

// Fetch scrapes a person profile, consulting the cache first when one is
// configured. Failed scrapes are never cached.
func (c *Client) Fetch(ctx context.Context, urlStr string) (*profile.Person, error) {
	if c.cache == nil {
		res, err := c.scrapePerson(ctx, urlStr)
		if err != nil {
			return nil, err
		}
		return res.Person, nil
	}

	data, err := c.cache.GetSet(ctx, "person:"+pagecache.Key(urlStr), func(ctx context.Context) ([]byte, error) {
		res, err := c.scrapePerson(ctx, urlStr)
		if err != nil {
			return nil, err
		}
		return json.Marshal(res.Person)
	}, c.cache.TTL())
	if err != nil {
		return nil, err
	}

	var person profile.Person
	if err := json.Unmarshal(data, &person); err != nil {
		return nil, fmt.Errorf("decode cached record: %w", err)
	}
	return &person, nil
}

// FetchResult scrapes a person profile bypassing the cache and returns the
// full result including per-section failures.
func (c *Client) FetchResult(ctx context.Context, urlStr string) (*scrape.Result, error) {
	return c.scrapePerson(ctx, urlStr)
}

// FetchCompany scrapes a company page, consulting the cache first when one
// is configured.
func (c *Client) FetchCompany(ctx context.Context, urlStr string) (*profile.Company, error) {
	if c.cache == nil {
		return c.scrapeCompany(ctx, urlStr)
	}

	data, err := c.cache.GetSet(ctx, "company:"+pagecache.Key(urlStr), func(ctx context.Context) ([]byte, error) {
		company, err := c.scrapeCompany(ctx, urlStr)
		if err != nil {
			return nil, err
		}
		return json.Marshal(company)
	}, c.cache.TTL())
	if err != nil {
		return nil, err
	}

	var company profile.Company
	if err := json.Unmarshal(data, &company); err != nil {
		return nil, fmt.Errorf("decode cached record: %w", err)
	}
	return &company, nil
}

func (c *Client) scrapePerson(ctx context.Context, urlStr string) (*scrape.Result, error) {
	page, err := c.manager.Page()
	if err != nil {
		return nil, err
	}

	scraper := scrape.NewPersonScraper(page,
		scrape.WithLogger(c.logger), scrape.WithReporter(c.reporter))
	res, err := scraper.Scrape(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	for _, failure := range res.Failures {
		c.logger.WarnContext(ctx, "profile section incomplete",
			"section", failure.Section, "error", failure.Err)
	}
	return res, nil
}

func (c *Client) scrapeCompany(ctx context.Context, urlStr string) (*profile.Company, error) {
	page, err := c.manager.Page()
	if err != nil {
		return nil, err
	}

	scraper := scrape.NewCompanyScraper(page,
		scrape.WithLogger(c.logger), scrape.WithReporter(c.reporter))
	return scraper.Scrape(ctx, urlStr)
}

// Fetch scrapes one person profile with a throwaway client.
func Fetch(ctx context.Context, urlStr string, opts ...Option) (*profile.Person, error) {
	client, err := New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	defer client.Close()
	return client.Fetch(ctx, urlStr)
}

// FetchCompany scrapes one company page with a throwaway client.
func FetchCompany(ctx context.Context, urlStr string, opts ...Option) (*profile.Company, error) {
	client, err := New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	defer client.Close()
	return client.FetchCompany(ctx, urlStr)
}
