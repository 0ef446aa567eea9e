package logging

import "testing"

func TestNewAcceptsKnownLevelsAndFormats(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		for _, format := range []string{"", "text", "logfmt", "json"} {
			if _, err := New(level, format); err != nil {
				t.Errorf("New(%q, %q) failed: %v", level, format, err)
			}
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", "text"); err == nil {
		t.Error("expected error for unknown level, got nil")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New("info", "xml"); err == nil {
		t.Error("expected error for unknown format, got nil")
	}
}
