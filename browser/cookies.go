package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
)

// DefaultCookiePath returns the portable cookie file location for a profile
// directory: a sibling of the directory itself, so wiping the profile keeps
// the exported session.
func DefaultCookiePath(userDataDir string) string {
	return filepath.Join(filepath.Dir(userDataDir), "cookies.json")
}

// CookieFileExists reports whether a portable cookie file is present at path.
func CookieFileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ExportCookies writes all browser cookies to path as a JSON array in the
// DevTools cookie representation, portable across machines.
func (m *Manager) ExportCookies(ctx context.Context, path string) error {
	if m.browserCtx == nil {
		return ErrNotStarted
	}

	var cookies []*network.Cookie
	err := run(ctx, m.browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = storage.GetCookies().Do(ctx)
		return err
	}))
	if err != nil {
		return fmt.Errorf("read cookies: %w", err)
	}

	data, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cookies: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write cookie file: %w", err)
	}

	m.logger.InfoContext(ctx, "cookies exported", "path", path, "count", len(cookies))
	return nil
}

// ImportCookies loads a portable cookie file written by ExportCookies and
// applies every cookie to the running browser.
func (m *Manager) ImportCookies(ctx context.Context, path string) error {
	if m.browserCtx == nil {
		return ErrNotStarted
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read cookie file: %w", err)
	}

	var cookies []*network.CookieParam
	if err := json.Unmarshal(data, &cookies); err != nil {
		return fmt.Errorf("decode cookie file %s: %w", path, err)
	}

	err = run(ctx, m.browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		for _, c := range cookies {
			setCookie := network.SetCookie(c.Name, c.Value).
				WithDomain(c.Domain).
				WithPath(c.Path).
				WithHTTPOnly(c.HTTPOnly).
				WithSecure(c.Secure)
			if c.Expires != nil {
				setCookie = setCookie.WithExpires(c.Expires)
			}
			if err := setCookie.Do(ctx); err != nil {
				return fmt.Errorf("set cookie %s: %w", c.Name, err)
			}
		}
		return nil
	}))
	if err != nil {
		return fmt.Errorf("apply cookies: %w", err)
	}

	m.logger.InfoContext(ctx, "cookies imported", "path", path, "count", len(cookies))
	return nil
}

// SetCookies applies name/value pairs as session cookies for .linkedin.com.
func (m *Manager) SetCookies(ctx context.Context, cookies map[string]string) error {
	if m.browserCtx == nil {
		return ErrNotStarted
	}

	err := run(ctx, m.browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		for name, value := range cookies {
			err := network.SetCookie(name, value).
				WithDomain(".linkedin.com").
				WithPath("/").
				WithSecure(true).
				Do(ctx)
			if err != nil {
				return fmt.Errorf("set cookie %s: %w", name, err)
			}
		}
		return nil
	}))
	if err != nil {
		return fmt.Errorf("apply cookies: %w", err)
	}

	m.logger.Debug("session cookies applied", "count", len(cookies))
	return nil
}
