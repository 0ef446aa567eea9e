// Package logging configures the console logger.
package logging

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// New builds a leveled console logger writing to stderr. Supported formats
// are "text", "logfmt", and "json".
func New(level, format string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var formatter log.Formatter
	switch format {
	case "", "text":
		formatter = log.TextFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	case "json":
		formatter = log.JSONFormatter
	default:
		return nil, fmt.Errorf("invalid log format %q (expected text|logfmt|json)", format)
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: false,
		Prefix:          "taskspan",
	}), nil
}
