package progress

import (
	"errors"
	"testing"
)

func TestNopImplementsReporter(t *testing.T) {
	var r Reporter = Nop{}
	r.Start("person", "https://example.com")
	r.Progress("working", 50)
	r.Complete("person", nil)
	r.Error(errors.New("boom"))
}

func TestNewLogDefaultsLogger(t *testing.T) {
	l := NewLog(nil)
	if l.Logger == nil {
		t.Fatal("NewLog(nil) should fall back to the default logger")
	}
	var _ Reporter = l
}
