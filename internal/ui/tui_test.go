package ui

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/taskspan/taskspan/internal/resolve"
)

func testRecord(name string) resolve.TaskRecord {
	return resolve.TaskRecord{
		Name:   name,
		Bucket: "Backlog",
		Start:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestRenderLineTruncatesLongNames(t *testing.T) {
	tests := []struct {
		name string
		task string
	}{
		{"ascii", strings.Repeat("x", 40)},
		{"multibyte", strings.Repeat("計画タスク", 8)},
		{"mixed", "Überarbeitung der Projektplanung für Q3 – Teil zwei"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel("test", []resolve.TaskRecord{testRecord(tt.task)})
			line := m.renderLine(testRecord(tt.task), 20, m.max.Sub(m.min))

			if !utf8.ValidString(line) {
				t.Fatalf("rendered line is not valid UTF-8: %q", line)
			}
			if !strings.Contains(line, "…") {
				t.Errorf("long name not truncated: %q", line)
			}
			shown := []rune(tt.task)[:nameColumnWidth-1]
			if !strings.Contains(line, string(shown)+"…") {
				t.Errorf("line %q missing truncated prefix %q", line, string(shown)+"…")
			}
		})
	}
}

func TestRenderLineKeepsShortNames(t *testing.T) {
	m := newModel("test", []resolve.TaskRecord{testRecord("短い名前")})
	line := m.renderLine(testRecord("短い名前"), 20, m.max.Sub(m.min))
	if !strings.Contains(line, "短い名前") {
		t.Errorf("short name altered: %q", line)
	}
	if strings.Contains(line, "…") {
		t.Errorf("short name should not be truncated: %q", line)
	}
}

func TestNewModelDateRange(t *testing.T) {
	records := []resolve.TaskRecord{
		{Start: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{Start: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), End: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)},
	}
	m := newModel("range", records)
	if got, want := m.min, records[1].Start; !got.Equal(want) {
		t.Errorf("min: got %v, want %v", got, want)
	}
	if got, want := m.max, records[1].End; !got.Equal(want) {
		t.Errorf("max: got %v, want %v", got, want)
	}
}
