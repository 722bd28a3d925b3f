// Package auth resolves LinkedIn session cookies from the places they may
// live: explicit values, environment variables, an exported cookie file, or
// an installed browser's cookie store. Resolved cookies are applied to the
// automation browser, never to an HTTP client.
package auth

import "context"

// EssentialCookies are the cookie names a LinkedIn session needs. li_at is
// the session token proper; the rest keep the site from treating the session
// as suspicious.
var EssentialCookies = []string{"li_at", "JSESSIONID", "lidc", "bcookie"}

// Source represents a source of session cookies.
type Source interface {
	// Cookies returns name/value pairs, or nil if this source has none.
	Cookies(ctx context.Context) (map[string]string, error)
}

// ChainSources returns cookies from the first source that provides them.
func ChainSources(ctx context.Context, sources ...Source) (map[string]string, error) {
	for _, src := range sources {
		cookies, err := src.Cookies(ctx)
		if err != nil {
			return nil, err
		}
		if len(cookies) > 0 {
			return cookies, nil
		}
	}
	return nil, nil //nolint:nilnil // no source had cookies, but this is not an error
}
