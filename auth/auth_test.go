package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestEnvSource(t *testing.T) {
	// Set test env vars
	t.Setenv("LINKEDIN_LI_AT", "test-li-at")
	t.Setenv("LINKEDIN_JSESSIONID", "test-jsessionid")

	src := EnvSource{}
	cookies, err := src.Cookies(context.Background())
	if err != nil {
		t.Fatalf("Cookies failed: %v", err)
	}

	if cookies["li_at"] != "test-li-at" {
		t.Errorf("li_at = %q, want %q", cookies["li_at"], "test-li-at")
	}
	if cookies["JSESSIONID"] != "test-jsessionid" {
		t.Errorf("JSESSIONID = %q, want %q", cookies["JSESSIONID"], "test-jsessionid")
	}
}

func TestEnvSourceNoCookies(t *testing.T) {
	// Clear any ambient values; t.Setenv restores them afterwards.
	for _, v := range EnvVarNames() {
		t.Setenv(v, "")
	}

	src := EnvSource{}
	cookies, err := src.Cookies(context.Background())
	if err != nil {
		t.Fatalf("Cookies failed: %v", err)
	}

	if cookies != nil {
		t.Error("cookies should be nil when env vars not set")
	}
}

func TestStaticSource(t *testing.T) {
	input := map[string]string{
		"li_at":      "abc123",
		"JSESSIONID": "xyz789",
	}

	src := NewStaticSource(input)
	cookies, err := src.Cookies(context.Background())
	if err != nil {
		t.Fatalf("Cookies failed: %v", err)
	}

	if len(cookies) != 2 {
		t.Errorf("got %d cookies, want 2", len(cookies))
	}
	if cookies["li_at"] != "abc123" {
		t.Errorf("li_at = %q, want %q", cookies["li_at"], "abc123")
	}

	// Verify it's a copy
	cookies["li_at"] = "modified"
	cookies2, err := src.Cookies(context.Background())
	if err != nil {
		t.Fatalf("Cookies failed: %v", err)
	}
	if cookies2["li_at"] != "abc123" {
		t.Error("StaticSource should return copies")
	}
}

func TestStaticSourceEmpty(t *testing.T) {
	src := NewStaticSource(nil)
	cookies, err := src.Cookies(context.Background())
	if err != nil {
		t.Fatalf("Cookies failed: %v", err)
	}

	if cookies != nil {
		t.Error("cookies should be nil for empty source")
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cookies.json")
	data := `[
  {"name": "li_at", "value": "file-token", "domain": ".linkedin.com", "path": "/"},
  {"name": "JSESSIONID", "value": "\"ajax:42\"", "domain": ".www.linkedin.com", "path": "/"}
]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	src := NewFileSource(path, nil)
	cookies, err := src.Cookies(context.Background())
	if err != nil {
		t.Fatalf("Cookies failed: %v", err)
	}

	if cookies["li_at"] != "file-token" {
		t.Errorf("li_at = %q, want %q", cookies["li_at"], "file-token")
	}
	if cookies["JSESSIONID"] != `"ajax:42"` {
		t.Errorf("JSESSIONID = %q", cookies["JSESSIONID"])
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "absent.json"), nil)
	cookies, err := src.Cookies(context.Background())
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cookies != nil {
		t.Error("cookies should be nil for a missing file")
	}
}

func TestFileSourceMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cookies.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	src := NewFileSource(path, nil)
	if _, err := src.Cookies(context.Background()); err == nil {
		t.Error("malformed file should be an error")
	}
}

func TestChainSources(t *testing.T) {
	// First source returns nil
	src1 := NewStaticSource(nil)

	// Second source returns cookies
	src2 := NewStaticSource(map[string]string{"li_at": "from-src2"})

	// Third source also has cookies (should not be reached)
	src3 := NewStaticSource(map[string]string{"li_at": "from-src3"})

	cookies, err := ChainSources(context.Background(), src1, src2, src3)
	if err != nil {
		t.Fatalf("ChainSources failed: %v", err)
	}

	if cookies["li_at"] != "from-src2" {
		t.Errorf("li_at = %q, want %q", cookies["li_at"], "from-src2")
	}
}

func TestChainSourcesAllEmpty(t *testing.T) {
	src1 := NewStaticSource(nil)
	src2 := NewStaticSource(nil)

	cookies, err := ChainSources(context.Background(), src1, src2)
	if err != nil {
		t.Fatalf("ChainSources failed: %v", err)
	}

	if cookies != nil {
		t.Error("cookies should be nil when all sources empty")
	}
}

func TestEnvVarNames(t *testing.T) {
	vars := EnvVarNames()
	if len(vars) == 0 {
		t.Error("should return env var names")
	}

	varSet := make(map[string]bool)
	for _, v := range vars {
		varSet[v] = true
	}

	if !varSet["LINKEDIN_LI_AT"] {
		t.Error("should include LINKEDIN_LI_AT")
	}
}
