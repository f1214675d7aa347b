package shared

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == b {
		t.Error("expected unique ids")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("expected a valid uuid, got %q", a)
	}
}

func TestNewLogger(t *testing.T) {
	if NewLogger(nil) == nil {
		t.Error("expected a logger with a nil writer")
	}
}

func TestOpenBrowser(t *testing.T) {
	t.Run("Unsupported Platform", func(t *testing.T) {
		original := getRuntime
		getRuntime = func() string { return "plan9" }
		defer func() { getRuntime = original }()

		err := OpenBrowser("https://example.com")
		if err == nil {
			t.Fatal("expected error for unsupported platform")
		}
		if errors.Is(err, ErrBrowserLaunch) {
			t.Error("unsupported platform is not a launch failure")
		}
	})
}
