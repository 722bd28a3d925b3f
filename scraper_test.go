package linkedinscraper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stickerdaniel/linkedin-scraper/auth"
	"github.com/stickerdaniel/linkedin-scraper/profile"
)

func TestNewFailsFastWithoutSession(t *testing.T) {
	for _, name := range auth.EnvVarNames() {
		t.Setenv(name, "")
	}

	// No cookies from any source and a profile directory that has never
	// been created: there is no session to find.
	dir := filepath.Join(t.TempDir(), "profile")
	_, err := New(context.Background(),
		WithUserDataDir(dir),
		WithCookieFile(filepath.Join(t.TempDir(), "missing.json")))
	if !errors.Is(err, profile.ErrNoCookies) {
		t.Fatalf("New error = %v, want ErrNoCookies", err)
	}
}

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	if !dirExists(dir) {
		t.Errorf("dirExists(%q) = false, want true", dir)
	}
	if dirExists(filepath.Join(dir, "missing")) {
		t.Errorf("dirExists on a missing path = true, want false")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if dirExists(file) {
		t.Errorf("dirExists on a regular file = true, want false")
	}
}
