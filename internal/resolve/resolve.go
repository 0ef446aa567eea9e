package resolve

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taskspan/taskspan/internal/parallel"
)

// Options controls a resolution pass.
type Options struct {
	// DefaultDurationDays is the window width used to synthesize a missing
	// endpoint. Values <= 0 fall back to DefaultDurationDays.
	DefaultDurationDays int
	// Workers > 1 resolves rows concurrently. Rows are independent, so this
	// only affects throughput; output order always matches input order.
	Workers int
	// Logger receives per-row diagnostics (malformed dates, dropped rows).
	// Nil disables them.
	Logger *log.Logger
}

// Report summarizes one resolution pass.
type Report struct {
	Total          int
	Emitted        int
	Dropped        int
	MalformedDates int
}

// rowResult carries one row's outcome out of the (possibly parallel) map.
type rowResult struct {
	record         TaskRecord
	ok             bool
	malformedDates int
}

// Resolve maps each raw row to at most one TaskRecord, preserving input
// order. Rows where neither endpoint can be resolved are dropped. Data-level
// problems (unparseable dates, unknown labels) never abort the pass; only
// the counts in the Report reflect them. The only error condition is a
// cancelled context, which aborts the pass without counting the skipped
// rows as dropped.
func Resolve(ctx context.Context, rows []RawRow, opts Options) ([]TaskRecord, Report, error) {
	duration := opts.DefaultDurationDays
	if duration <= 0 {
		duration = DefaultDurationDays
	}
	if ctx == nil {
		ctx = context.Background()
	}

	results, err := parallel.Map(ctx, len(rows), opts.Workers, func(i int) rowResult {
		return resolveRow(i, rows[i], duration, opts.Logger)
	})
	if err != nil {
		return nil, Report{Total: len(rows)}, err
	}

	report := Report{Total: len(rows)}
	records := make([]TaskRecord, 0, len(rows))
	for _, res := range results {
		report.MalformedDates += res.malformedDates
		if !res.ok {
			report.Dropped++
			continue
		}
		records = append(records, res.record)
		report.Emitted++
	}
	return records, report, nil
}

// resolveRow applies the per-row algorithm: extract fields, resolve both
// endpoints through their fallback chains, synthesize a missing side from
// the default duration, or drop the row when both sides are unresolved.
func resolveRow(index int, row RawRow, durationDays int, logger *log.Logger) rowResult {
	var res rowResult

	start, startOK := resolveDate(index, row, startSources, &res.malformedDates, logger)
	end, endOK := resolveDate(index, row, endSources, &res.malformedDates, logger)

	name, _ := row.Get(ColTaskName)

	switch {
	case !startOK && !endOK:
		if logger != nil {
			logger.Debug("dropping unschedulable row", "row", index, "task", name)
		}
		return res
	case startOK && !endOK:
		end = start.AddDate(0, 0, durationDays)
	case endOK && !startOK:
		start = end.AddDate(0, 0, -durationDays)
	}
	// Both resolved: use as parsed, even if end < start. Correcting an
	// inverted window is the renderer's call, not the resolver's.

	id, _ := row.Get(ColTaskID)
	bucket, _ := row.Get(ColBucketName)
	progress, _ := row.Get(ColProgress)
	priority, _ := row.Get(ColPriority)
	assignee, _ := row.Get(ColAssignedTo)
	creator, _ := row.Get(ColCreatedBy)
	late, _ := row.Get(ColLate)
	description, _ := row.Get(ColDescription)

	res.record = TaskRecord{
		ID:          id,
		Name:        name,
		Bucket:      bucket,
		ProgressPct: ProgressPercent(progress),
		Priority:    priority,
		Assignee:    assignee,
		Creator:     creator,
		IsLate:      ParseLateFlag(late),
		Description: description,
		Start:       start,
		End:         end,
	}
	res.ok = true
	return res
}

// resolveDate walks a fallback chain and returns the first parseable date.
// A non-blank value that fails to parse counts as malformed and falls
// through to the next source, exactly as a blank would.
func resolveDate(index int, row RawRow, sources []string, malformed *int, logger *log.Logger) (time.Time, bool) {
	for _, col := range sources {
		raw, ok := row.Get(col)
		if !ok {
			continue
		}
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			*malformed++
			if logger != nil {
				logger.Warn("unparseable date, treating as blank", "row", index, "column", col, "value", raw)
			}
			continue
		}
		return t, true
	}
	return time.Time{}, false
}
