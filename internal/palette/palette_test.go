package palette

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestColorStableAssignment(t *testing.T) {
	p := New()

	first := p.Color("Backlog")
	second := p.Color("Doing")
	if first == second {
		t.Errorf("distinct buckets share color %q", first)
	}
	if again := p.Color("Backlog"); again != first {
		t.Errorf("Backlog color changed: got %q, want %q", again, first)
	}

	buckets := p.Buckets()
	if len(buckets) != 2 || buckets[0] != "Backlog" || buckets[1] != "Doing" {
		t.Errorf("Buckets: got %v, want [Backlog Doing]", buckets)
	}
}

func TestColorCycleWrapsAround(t *testing.T) {
	p := New()
	for i := 0; i < len(defaultCycle); i++ {
		p.Color(strings.Repeat("b", i+1))
	}
	if got := p.Color("one more"); got != defaultCycle[0] {
		t.Errorf("wrap color: got %q, want %q", got, defaultCycle[0])
	}
}

func TestOverridesWinOverCycle(t *testing.T) {
	p := New()
	p.SetOverrides(map[string]string{"Backlog": "#112233"})

	if got := p.Color("Backlog"); got != "#112233" {
		t.Errorf("override color: got %q, want #112233", got)
	}
	if got := p.Color("Doing"); got != defaultCycle[0] {
		t.Errorf("non-override color: got %q, want %q", got, defaultCycle[0])
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.json")
	if err := os.WriteFile(path, []byte(`{"Backlog": "#ff0000", "Doing": "#00ff00"}`), 0644); err != nil {
		t.Fatalf("write palette: %v", err)
	}

	colors, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("LoadOverrides failed: %v", err)
	}
	if colors["Backlog"] != "#ff0000" {
		t.Errorf("Backlog: got %q, want #ff0000", colors["Backlog"])
	}
}

func TestLoadOverridesRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not an object", `["#ff0000"]`},
		{"non-string value", `{"Backlog": 42}`},
		{"bad color format", `{"Backlog": "red"}`},
		{"short hex", `{"Backlog": "#fff"}`},
		{"not json", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "palette.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write palette: %v", err)
			}
			if _, err := LoadOverrides(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadOverridesMissingFile(t *testing.T) {
	if _, err := LoadOverrides(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}
