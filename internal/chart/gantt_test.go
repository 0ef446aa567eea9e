package chart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/taskspan/taskspan/internal/palette"
	"github.com/taskspan/taskspan/internal/resolve"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPrepareSortsByStartEndName(t *testing.T) {
	records := []resolve.TaskRecord{
		{Name: "c", Start: day(2024, 2, 1), End: day(2024, 2, 10)},
		{Name: "b", Start: day(2024, 1, 1), End: day(2024, 1, 20)},
		{Name: "a", Start: day(2024, 1, 1), End: day(2024, 1, 5)},
		{Name: "z", Start: day(2024, 1, 1), End: day(2024, 1, 5)},
	}

	rows, epoch := Prepare(records, palette.New())
	if !epoch.Equal(day(2024, 1, 1)) {
		t.Errorf("epoch: got %v, want 2024-01-01", epoch)
	}
	want := []string{"a", "z", "b", "c"}
	for i, name := range want {
		if rows[i].Name != name {
			t.Errorf("rows[%d].Name: got %q, want %q", i, rows[i].Name, name)
		}
	}
}

func TestPrepareGeometry(t *testing.T) {
	records := []resolve.TaskRecord{
		{Name: "first", Start: day(2024, 1, 1), End: day(2024, 1, 11)},
		{Name: "second", Start: day(2024, 1, 6), End: day(2024, 1, 8)},
	}

	rows, _ := Prepare(records, palette.New())
	if rows[0].OffsetDays != 0 || rows[0].LengthDays != 10 {
		t.Errorf("first geometry: got offset %v length %v, want 0 and 10", rows[0].OffsetDays, rows[0].LengthDays)
	}
	if rows[0].SpanDays != 11 {
		t.Errorf("first SpanDays: got %d, want 11", rows[0].SpanDays)
	}
	if rows[1].OffsetDays != 5 || rows[1].LengthDays != 2 {
		t.Errorf("second geometry: got offset %v length %v, want 5 and 2", rows[1].OffsetDays, rows[1].LengthDays)
	}
}

func TestPrepareClampsInvertedWindow(t *testing.T) {
	records := []resolve.TaskRecord{
		{Name: "inverted", Start: day(2024, 3, 10), End: day(2024, 3, 1)},
	}

	rows, _ := Prepare(records, palette.New())
	if !rows[0].End.Equal(rows[0].Start) {
		t.Errorf("End: got %v, want clamped to %v", rows[0].End, rows[0].Start)
	}
	if rows[0].LengthDays != 0 {
		t.Errorf("LengthDays: got %v, want 0", rows[0].LengthDays)
	}
	if rows[0].SpanDays != 1 {
		t.Errorf("SpanDays: got %d, want 1", rows[0].SpanDays)
	}
}

func TestPrepareSameBucketSharesColor(t *testing.T) {
	records := []resolve.TaskRecord{
		{Name: "a", Bucket: "Backlog", Start: day(2024, 1, 1), End: day(2024, 1, 2)},
		{Name: "b", Bucket: "Backlog", Start: day(2024, 1, 3), End: day(2024, 1, 4)},
		{Name: "c", Bucket: "Doing", Start: day(2024, 1, 5), End: day(2024, 1, 6)},
	}

	rows, _ := Prepare(records, palette.New())
	if rows[0].Color != rows[1].Color {
		t.Error("same bucket should share a color")
	}
	if rows[0].Color == rows[2].Color {
		t.Error("different buckets should not share a color")
	}
}

func TestPrepareEmpty(t *testing.T) {
	rows, _ := Prepare(nil, palette.New())
	if len(rows) != 0 {
		t.Errorf("rows: got %d, want 0", len(rows))
	}
}

func TestRenderWritesStandaloneHTML(t *testing.T) {
	records := []resolve.TaskRecord{
		{ID: "T1", Name: "Design phase", Bucket: "Backlog", ProgressPct: 50,
			Start: day(2024, 1, 1), End: day(2024, 1, 10)},
		{ID: "T2", Name: "Build phase", Bucket: "Doing",
			Start: day(2024, 1, 8), End: day(2024, 1, 20)},
	}

	outPath := filepath.Join(t.TempDir(), "nested", "dir", "gantt.html")
	if err := Render(records, palette.New(), "Project Plan", outPath); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	out := string(data)
	for _, want := range []string{"Project Plan", "Design phase", "Build phase", "echarts", "Today"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestTooltipFormatterCarriesFields(t *testing.T) {
	rows := []Row{{
		TaskRecord: resolve.TaskRecord{
			ID: "T1", Name: "Design <script>", Bucket: "Backlog",
			ProgressPct: 100, Priority: "Urgent", Assignee: "sam",
			Creator: "alex", IsLate: true,
			Start: day(2024, 1, 1), End: day(2024, 1, 5),
		},
		SpanDays: 5,
	}}

	js := tooltipFormatter(rows)
	for _, want := range []string{"T1", "Backlog", "100%", "Urgent", "sam", "alex", "late: true", "2024-01-01", "2024-01-05", "5 days"} {
		if !strings.Contains(js, want) {
			t.Errorf("formatter missing %q", want)
		}
	}
	if strings.Contains(js, "<script>") {
		t.Error("formatter should HTML-escape task fields")
	}
	if strings.Contains(js, "notes") {
		t.Error("description must not appear in hover content")
	}
}
