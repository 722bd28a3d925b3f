package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/chromedp/cdproto/network"
)

// FileSource reads cookies from a portable JSON cookie file, the format
// written by a session export (a DevTools cookie list).
type FileSource struct {
	logger *slog.Logger
	path   string
}

// NewFileSource creates a cookie source reading from path.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{path: path, logger: logger}
}

// Cookies returns name/value pairs from the cookie file. A missing file is
// not an error; a present but malformed file is.
func (s *FileSource) Cookies(_ context.Context) (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil //nolint:nilnil // absent file means this source has nothing
	}
	if err != nil {
		return nil, fmt.Errorf("read cookie file: %w", err)
	}

	var list []*network.CookieParam
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode cookie file %s: %w", s.path, err)
	}

	cookies := make(map[string]string)
	for _, c := range list {
		if c.Name != "" && c.Value != "" {
			cookies[c.Name] = c.Value
		}
	}
	if len(cookies) == 0 {
		return nil, nil //nolint:nilnil // empty file is not an error
	}

	s.logger.Debug("cookies loaded from file", "path", s.path, "count", len(cookies))
	return cookies, nil
}
