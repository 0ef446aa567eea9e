package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskspan configuration file
# Values can be overridden by TASKSPAN_* environment variables or CLI flags

# Task export to read (CSV or XLSX)
input = "input.csv"

# Destination HTML file for the timeline chart
output = "gantt.html"

# Chart title (defaults to the input filename)
# title = "Project Plan"

# Worksheet name for workbook inputs
sheet = "Tasks"

# Window width (days) used when only one of start/end is present
default_duration_days = 7

# Concurrent row resolution; 0 resolves rows sequentially
workers = 0

# Optional bucket-to-color JSON file, e.g. {"Backlog": "#636efa"}
# palette_file = "palette.json"

# Logging
log_level = "info"    # debug, info, warn, error
log_format = "text"   # text, logfmt, json
`
}
