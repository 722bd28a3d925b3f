// Command linkedin-scraper fetches a LinkedIn person or company profile and
// prints it as JSON.
//
// Usage:
//
//	linkedin-scraper https://www.linkedin.com/in/johndoe/
//	linkedin-scraper -company https://www.linkedin.com/company/example/
//
// A session is required: set LINKEDIN_* env vars, point -cookies at an
// exported cookie file, pass -browser-cookies, or create a persistent
// session first with create-session.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	linkedinscraper "github.com/stickerdaniel/linkedin-scraper"
	"github.com/stickerdaniel/linkedin-scraper/auth"
	"github.com/stickerdaniel/linkedin-scraper/browser"
	"github.com/stickerdaniel/linkedin-scraper/pagecache"
	"github.com/stickerdaniel/linkedin-scraper/progress"
)

func main() {
	company := flag.Bool("company", false, "scrape a company page instead of a person profile")
	headless := flag.Bool("headless", true, "run the browser without a window")
	userDataDir := flag.String("user-data-dir", browser.DefaultUserDataDir(), "persistent browser profile directory")
	cookieFile := flag.String("cookies", "", "portable cookie file to import (default: next to the profile directory)")
	browserCookies := flag.Bool("browser-cookies", false, "read session cookies from installed browser stores")
	noCache := flag.Bool("no-cache", false, "disable result caching (enabled by default with 7-day TTL)")
	cacheTTL := flag.Duration("cache-ttl", 7*24*time.Hour, "cache time-to-live")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: linkedin-scraper [options] <url>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "\nSession cookies are resolved in order:")
		fmt.Fprintf(os.Stderr, "  1. environment variables %v (also read from .env)\n", auth.EnvVarNames())
		fmt.Fprintln(os.Stderr, "  2. an exported cookie file (-cookies, or the default path)")
		fmt.Fprintln(os.Stderr, "  3. installed browser cookie stores (-browser-cookies)")
		os.Exit(1)
	}

	// A .env next to the binary is a convenience, not a requirement.
	_ = godotenv.Load() //nolint:errcheck // missing .env is fine

	// Setup logger
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	// Build options
	opts := []linkedinscraper.Option{
		linkedinscraper.WithLogger(logger),
		linkedinscraper.WithHeadless(*headless),
		linkedinscraper.WithUserDataDir(*userDataDir),
	}
	if *cookieFile != "" {
		opts = append(opts, linkedinscraper.WithCookieFile(*cookieFile))
	}
	if *browserCookies {
		opts = append(opts, linkedinscraper.WithBrowserCookies())
	}
	if !*noCache {
		cache, err := pagecache.New(*cacheTTL)
		if err != nil {
			logger.Warn("failed to initialize cache, continuing without cache", "error", err)
		} else {
			opts = append(opts, linkedinscraper.WithCache(cache))
		}
	}
	if *verbose {
		opts = append(opts, linkedinscraper.WithReporter(progress.NewLog(logger)))
	}

	ctx := context.Background()
	urlStr := flag.Arg(0)

	var result any
	var err error
	if *company {
		result, err = linkedinscraper.FetchCompany(ctx, urlStr, opts...)
	} else {
		result, err = linkedinscraper.Fetch(ctx, urlStr, opts...)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := outputJSON(result); err != nil {
		fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		os.Exit(1)
	}
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
