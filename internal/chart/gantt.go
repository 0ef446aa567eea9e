// Package chart renders resolved tasks as a standalone interactive HTML
// timeline. The chart is a horizontal stacked bar: a transparent offset
// series positions each task, a colored span series draws its window.
package chart

import (
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/taskspan/taskspan/internal/palette"
	"github.com/taskspan/taskspan/internal/resolve"
)

const hoursPerDay = 24

// Row is one plotted task with chart-ready geometry.
type Row struct {
	resolve.TaskRecord
	// OffsetDays is the distance from the chart epoch to Start.
	OffsetDays float64
	// LengthDays is the plotted bar length.
	LengthDays float64
	// SpanDays is the inclusive day count shown in the hover.
	SpanDays int
	Color    string
}

// Prepare sorts records by (start, end, name), clamps inverted windows to
// zero length, and computes bar geometry against the earliest start. The
// resolver emits inverted windows as parsed; correcting them for display
// happens here.
func Prepare(records []resolve.TaskRecord, pal *palette.Palette) ([]Row, time.Time) {
	if len(records) == 0 {
		return nil, time.Time{}
	}

	sorted := make([]resolve.TaskRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		if !sorted[i].End.Equal(sorted[j].End) {
			return sorted[i].End.Before(sorted[j].End)
		}
		return sorted[i].Name < sorted[j].Name
	})

	epoch := sorted[0].Start

	rows := make([]Row, len(sorted))
	for i, rec := range sorted {
		if rec.End.Before(rec.Start) {
			rec.End = rec.Start
		}
		rows[i] = Row{
			TaskRecord: rec,
			OffsetDays: rec.Start.Sub(epoch).Hours() / hoursPerDay,
			LengthDays: rec.End.Sub(rec.Start).Hours() / hoursPerDay,
			SpanDays:   int(rec.End.Sub(rec.Start).Hours()/hoursPerDay) + 1,
			Color:      pal.Color(rec.Bucket),
		}
	}
	return rows, epoch
}

// Render writes the timeline chart for records to an HTML file at outPath,
// creating parent directories as needed.
func Render(records []resolve.TaskRecord, pal *palette.Palette, title, outPath string) error {
	rows, epoch := Prepare(records, pal)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1200px",
			Height:    chartHeight(len(rows)),
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: opts.FuncOpts(tooltipFormatter(rows)),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Schedule",
			AxisLabel: &opts.AxisLabel{
				Formatter: opts.FuncOpts(axisLabelFormatter(epoch)),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Tasks"}),
		charts.WithGridOpts(opts.Grid{Left: "240", Right: "80"}),
	)

	names := make([]string, len(rows))
	offsets := make([]opts.BarData, len(rows))
	spans := make([]opts.BarData, len(rows))
	for i, row := range rows {
		names[i] = row.Name
		offsets[i] = opts.BarData{
			Value:     row.OffsetDays,
			ItemStyle: &opts.ItemStyle{Color: "rgba(0,0,0,0)"},
		}
		length := row.LengthDays
		if length == 0 {
			length = 0.25 // keep same-day tasks visible
		}
		spans[i] = opts.BarData{
			Value:     length,
			ItemStyle: &opts.ItemStyle{Color: row.Color},
		}
	}

	bar.SetXAxis(names).
		AddSeries("offset", offsets,
			charts.WithBarChartOpts(opts.BarChart{Stack: "schedule"}),
		).
		AddSeries("span", spans,
			charts.WithBarChartOpts(opts.BarChart{Stack: "schedule"}),
			charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
				Name:  "Today",
				XAxis: todayOffset(epoch),
			}),
			charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
				Symbol:    []string{"none", "none"},
				LineStyle: &opts.LineStyle{Color: "red", Type: "dashed", Width: 2},
			}),
		)
	bar.XYReversal()

	if dir := filepath.Dir(outPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func chartHeight(n int) string {
	height := 40*n + 200
	if height < 600 {
		height = 600
	}
	return fmt.Sprintf("%dpx", height)
}

// tooltipFormatter builds a JS formatter with the per-task hover content
// baked in. The hover shows every display field; Description is carried in
// the record but deliberately not shown.
func tooltipFormatter(rows []Row) string {
	metas := make([]string, len(rows))
	for i, row := range rows {
		metas[i] = fmt.Sprintf(
			"<b>%s</b><br/>id: %s<br/>bucket: %s<br/>progress: %d%%<br/>priority: %s<br/>assignee: %s<br/>creator: %s<br/>late: %t<br/>start: %s<br/>end: %s<br/>duration: %d days",
			html.EscapeString(row.Name),
			html.EscapeString(row.ID),
			html.EscapeString(row.Bucket),
			row.ProgressPct,
			html.EscapeString(row.Priority),
			html.EscapeString(row.Assignee),
			html.EscapeString(row.Creator),
			row.IsLate,
			row.Start.Format("2006-01-02"),
			row.End.Format("2006-01-02"),
			row.SpanDays,
		)
	}
	blob, _ := json.Marshal(metas)
	return fmt.Sprintf("function (params) { var meta = %s; return meta[params.dataIndex]; }", blob)
}

// axisLabelFormatter converts day offsets back to calendar dates on the
// value axis.
func axisLabelFormatter(epoch time.Time) string {
	return fmt.Sprintf(
		"function (value) { var d = new Date(%d + value * 86400000); return (d.getUTCMonth() + 1) + '/' + d.getUTCDate() + '/' + d.getUTCFullYear(); }",
		epoch.UnixMilli(),
	)
}

func todayOffset(epoch time.Time) float64 {
	return time.Since(epoch).Hours() / hoursPerDay
}
