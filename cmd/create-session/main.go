// Command create-session opens a visible browser for a manual LinkedIn
// login, then exports the session to a portable cookie file. The persistent
// profile directory keeps the session for future headless runs; the cookie
// file carries it to other machines.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/stickerdaniel/linkedin-scraper/browser"
)

func main() {
	userDataDir := flag.String("user-data-dir", browser.DefaultUserDataDir(), "persistent browser profile directory")
	cookieFile := flag.String("cookies", "", "where to export the cookie file (default: next to the profile directory)")
	email := flag.String("email", "", "log in automatically with this email (otherwise log in by hand)")
	password := flag.String("password", "", "password for -email")
	timeout := flag.Duration("timeout", 5*time.Minute, "how long to wait for a manual login")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	_ = godotenv.Load() //nolint:errcheck // missing .env is fine

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if *cookieFile == "" {
		*cookieFile = browser.DefaultCookiePath(*userDataDir)
	}

	ctx := context.Background()

	m := browser.New(
		browser.WithUserDataDir(*userDataDir),
		browser.WithHeadless(false),
		browser.WithLogger(logger),
	)
	if err := m.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	if *email != "" {
		if err := m.Login(ctx, *email, *password); err != nil {
			fmt.Fprintf(os.Stderr, "Login error: %v\n", err)
			os.Exit(1) //nolint:gocritic // exitAfterDefer is acceptable in main
		}
	} else {
		fmt.Println("A browser window is open. Log in to LinkedIn there.")
		if err := m.WaitForManualLogin(ctx, *timeout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if browser.CookieFileExists(*cookieFile) {
		logger.Info("overwriting existing cookie file", "path", *cookieFile)
	}
	if err := m.ExportCookies(ctx, *cookieFile); err != nil {
		fmt.Fprintf(os.Stderr, "Export error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Session saved. Profile: %s\nCookie file: %s\n", *userDataDir, *cookieFile)
}
