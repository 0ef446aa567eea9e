// Package ui provides an optional terminal preview of the resolved schedule.
package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskspan/taskspan/internal/resolve"
)

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// Run shows the resolved schedule in a scrollable read-only view.
// q, esc, or ctrl+c quits.
func Run(ctx context.Context, title string, records []resolve.TaskRecord) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	program := tea.NewProgram(newModel(title, records), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

const nameColumnWidth = 24

type model struct {
	title    string
	records  []resolve.TaskRecord
	min, max time.Time
	offset   int
	width    int
	height   int
}

func newModel(title string, records []resolve.TaskRecord) *model {
	m := &model{title: title, records: records, width: 80, height: 24}
	for i, rec := range records {
		end := rec.End
		if end.Before(rec.Start) {
			end = rec.Start
		}
		if i == 0 || rec.Start.Before(m.min) {
			m.min = rec.Start
		}
		if i == 0 || end.After(m.max) {
			m.max = end
		}
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < len(m.records)-1 {
				m.offset++
			}
		case "home", "g":
			m.offset = 0
		}
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s — %d tasks, %s to %s\n",
		m.title, len(m.records),
		m.min.Format("2006-01-02"), m.max.Format("2006-01-02"))
	b.WriteString(strings.Repeat("─", min(m.width, 80)) + "\n")

	visible := m.height - 4
	if visible < 1 {
		visible = 1
	}
	end := m.offset + visible
	if end > len(m.records) {
		end = len(m.records)
	}

	barWidth := m.width - nameColumnWidth - 26
	if barWidth < 10 {
		barWidth = 10
	}
	span := m.max.Sub(m.min)

	for _, rec := range m.records[m.offset:end] {
		b.WriteString(m.renderLine(rec, barWidth, span))
		b.WriteByte('\n')
	}

	b.WriteString("\n↑/↓ scroll · q quit")
	return b.String()
}

func (m *model) renderLine(rec resolve.TaskRecord, barWidth int, span time.Duration) string {
	name := rec.Name
	if name == "" {
		name = rec.ID
	}
	if runes := []rune(name); len(runes) > nameColumnWidth {
		name = string(runes[:nameColumnWidth-1]) + "…"
	}

	recEnd := rec.End
	if recEnd.Before(rec.Start) {
		recEnd = rec.Start
	}

	lead, width := 0, 1
	if span > 0 {
		lead = int(float64(barWidth) * float64(rec.Start.Sub(m.min)) / float64(span))
		width = int(float64(barWidth) * float64(recEnd.Sub(rec.Start)) / float64(span))
		if width < 1 {
			width = 1
		}
		if lead+width > barWidth {
			width = barWidth - lead
		}
	}

	bar := strings.Repeat(" ", lead) + strings.Repeat("█", width) +
		strings.Repeat(" ", barWidth-lead-width)

	return fmt.Sprintf("%-*s %s %s %3d%% %s",
		nameColumnWidth, name, bar,
		rec.Start.Format("01/02"), rec.ProgressPct, rec.Bucket)
}
