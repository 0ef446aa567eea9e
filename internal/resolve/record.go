// Package resolve normalizes raw task-export rows into schedulable records.
package resolve

import (
	"strings"
	"time"
)

// Column names recognized in a Planner-style task export. The loader trims
// header cells, so matching here is exact.
const (
	ColTaskID        = "Task ID"
	ColTaskName      = "Task Name"
	ColBucketName    = "Bucket Name"
	ColProgress      = "Progress"
	ColPriority      = "Priority"
	ColAssignedTo    = "Assigned To"
	ColCreatedBy     = "Created By"
	ColCreatedDate   = "Created Date"
	ColStartDate     = "Start date"
	ColDueDate       = "Due date"
	ColCompletedDate = "Completed Date"
	ColLate          = "Late"
	ColDescription   = "Description"
)

// DateLayout is the month/day/year format used by the export's date columns.
const DateLayout = "01/02/2006"

// DefaultDurationDays is the fallback window width used to synthesize a
// missing endpoint from the other one.
const DefaultDurationDays = 7

// RawRow is one input record: column name mapped to raw cell text. Missing
// columns read as blank.
type RawRow map[string]string

// Get returns the trimmed value of a column and whether it is non-blank.
func (r RawRow) Get(col string) (string, bool) {
	v := strings.TrimSpace(r[col])
	return v, v != ""
}

// TaskRecord is a normalized task with a resolved schedule window. Start and
// End are always populated on every record the resolver emits.
type TaskRecord struct {
	ID          string
	Name        string
	Bucket      string
	ProgressPct int
	Priority    string
	Assignee    string
	Creator     string
	IsLate      bool
	Description string
	Start       time.Time
	End         time.Time
}

// progressLabels maps normalized progress labels to percentages. Unknown
// labels map to 0.
var progressLabels = map[string]int{
	"not started": 0,
	"in progress": 50,
	"complete":    100,
	"completed":   100,
}

// ProgressPercent converts a free-text progress label to a percentage.
// Matching is case-insensitive and whitespace-tolerant.
func ProgressPercent(label string) int {
	return progressLabels[strings.ToLower(strings.TrimSpace(label))]
}

// ParseLateFlag parses the Late column. Only the literal token "true"
// (case-insensitive) counts as late.
func ParseLateFlag(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

// Fallback chains: candidate columns consulted in order until one yields a
// parseable date. Kept as plain lists so adding a source is a one-line change.
var (
	startSources = []string{ColStartDate, ColCreatedDate}
	endSources   = []string{ColDueDate, ColCompletedDate}
)
