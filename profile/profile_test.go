package profile

import (
	"errors"
	"testing"
)

func TestErrorTypes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrNotAuthenticated", ErrNotAuthenticated, "not authenticated"},
		{"ErrNoCookies", ErrNoCookies, "no cookies available"},
		{"ErrProfileNotFound", ErrProfileNotFound, "profile not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.want {
				t.Errorf("got %q, want %q", tt.err.Error(), tt.want)
			}
		})
	}
}

func TestScrapeErrorWrapping(t *testing.T) {
	cause := errors.New("main content never appeared")
	err := &ScrapeError{URL: "https://www.linkedin.com/in/johndoe/", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("ScrapeError should unwrap to its cause")
	}
	want := "scrape https://www.linkedin.com/in/johndoe/: main content never appeared"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestPersonDefaults(t *testing.T) {
	p := Person{}

	if p.Name != "" {
		t.Error("Name should be empty by default")
	}
	if p.OpenToWork {
		t.Error("OpenToWork should be false by default")
	}
	if p.Experiences != nil {
		t.Error("Experiences should be nil by default")
	}
	if p.Contacts != nil {
		t.Error("Contacts should be nil by default")
	}
}
