// Package cmd implements the CLI command structure for taskspan.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/taskspan/taskspan/internal/chart"
	"github.com/taskspan/taskspan/internal/config"
	"github.com/taskspan/taskspan/internal/export"
	"github.com/taskspan/taskspan/internal/logging"
	"github.com/taskspan/taskspan/internal/palette"
	"github.com/taskspan/taskspan/internal/resolve"
	"github.com/taskspan/taskspan/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskspan CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskspan", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")

	// A leading flag other than help/version means "render" with flags,
	// e.g. `taskspan --input plan.csv --output plan.html`. Those flags
	// belong to the render FlagSet, so hand the args over untouched.
	if len(args) > 0 && strings.HasPrefix(args[0], "-") && !isHelpOrVersionFlag(args[0]) {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return renderCommand(ctx, cfg, args)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand. With no args, default to "render".
	subcommand := "render"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "render":
		return renderCommand(ctx, cfg, remainingArgs)
	case "inspect":
		return inspectCommand(ctx, cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		// A bare existing file path means render with that input.
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			cfg.Input = subcommand
			return renderCommand(ctx, cfg, remainingArgs)
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// isHelpOrVersionFlag reports whether a leading flag argument asks for help
// or the version rather than a render option.
func isHelpOrVersionFlag(arg string) bool {
	switch strings.TrimLeft(arg, "-") {
	case "h", "help", "v", "version":
		return true
	}
	return false
}

// commonFlags registers the flags shared by render, inspect, and tui.
func commonFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.Input, "input", cfg.Input, "Path to the task export (CSV or XLSX)")
	fs.StringVar(&cfg.Sheet, "sheet", cfg.Sheet, "Worksheet name for workbook inputs")
	fs.IntVar(&cfg.DefaultDurationDays, "duration-days", cfg.DefaultDurationDays, "Window width (days) when only one endpoint is present")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent row resolution (0 = sequential)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|logfmt|json)")
}

// consumeInputArg treats a single positional argument as the input path.
func consumeInputArg(fs *flag.FlagSet, cfg *config.Config) error {
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		cfg.Input = remaining[0]
	}
	return nil
}

// loadAndResolve runs the shared pipeline front: read the export, resolve
// the rows, log the summary.
func loadAndResolve(ctx context.Context, cfg *config.Config, logger *log.Logger) ([]resolve.TaskRecord, resolve.Report, error) {
	rows, err := export.Load(cfg.Input, cfg.Sheet)
	if err != nil {
		return nil, resolve.Report{}, err
	}

	records, report, err := resolve.Resolve(ctx, rows, resolve.Options{
		DefaultDurationDays: cfg.DefaultDurationDays,
		Workers:             cfg.Workers,
		Logger:              logger,
	})
	if err != nil {
		return nil, resolve.Report{}, err
	}
	logger.Info("resolved schedule",
		"total", report.Total,
		"emitted", report.Emitted,
		"dropped", report.Dropped,
		"malformed_dates", report.MalformedDates)
	return records, report, nil
}

// renderCommand converts the export into an HTML timeline chart.
func renderCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskspan render", flag.ContinueOnError)
	commonFlags(fs, cfg)
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Destination HTML file")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "Chart title (defaults to the input filename)")
	fs.StringVar(&cfg.PaletteFile, "palette", cfg.PaletteFile, "Bucket-to-color JSON file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := consumeInputArg(fs, cfg); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	records, _, err := loadAndResolve(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no tasks with schedule info found in %s", cfg.Input)
	}

	pal := palette.New()
	if cfg.PaletteFile != "" {
		overrides, err := palette.LoadOverrides(cfg.PaletteFile)
		if err != nil {
			return err
		}
		pal.SetOverrides(overrides)
	}

	if err := chart.Render(records, pal, chartTitle(cfg), cfg.Output); err != nil {
		return err
	}
	logger.Info("wrote timeline chart", "path", cfg.Output, "tasks", len(records))
	return nil
}

// inspectCommand prints the resolved records without writing a chart.
func inspectCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskspan inspect", flag.ContinueOnError)
	commonFlags(fs, cfg)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := consumeInputArg(fs, cfg); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	records, report, err := loadAndResolve(ctx, cfg, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBUCKET\tSTART\tEND\tDAYS\tPROGRESS\tLATE")
	for _, rec := range records {
		days := int(rec.End.Sub(rec.Start).Hours()/24) + 1
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d%%\t%t\n",
			rec.ID, rec.Name, rec.Bucket,
			rec.Start.Format("2006-01-02"), rec.End.Format("2006-01-02"),
			days, rec.ProgressPct, rec.IsLate)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d of %d rows schedulable (%d dropped, %d malformed dates)\n",
		report.Emitted, report.Total, report.Dropped, report.MalformedDates)
	return nil
}

// tuiCommand previews the resolved schedule in the terminal.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskspan tui", flag.ContinueOnError)
	commonFlags(fs, cfg)
	fs.StringVar(&cfg.Title, "title", cfg.Title, "Preview title (defaults to the input filename)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := consumeInputArg(fs, cfg); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	records, _, err := loadAndResolve(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no tasks with schedule info found in %s", cfg.Input)
	}

	return ui.Run(ctx, chartTitle(cfg), records)
}

// configCommand prints an example configuration file.
func configCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	fmt.Print(config.ExampleConfig())
	return nil
}

func versionCommand() error {
	fmt.Printf("taskspan %s\n", Version)
	return nil
}

// chartTitle picks the configured title or derives one from the input
// filename stem.
func chartTitle(cfg *config.Config) string {
	if cfg.Title != "" {
		return cfg.Title
	}
	stem := strings.TrimSuffix(filepath.Base(cfg.Input), filepath.Ext(cfg.Input))
	if stem == "" || stem == "." {
		return "Planner Tasks Timeline"
	}
	return stem
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `taskspan renders a Planner-style task export (CSV/XLSX) as an interactive
HTML timeline chart.

Usage:
  taskspan [command] [flags]
  taskspan <export-file>

Commands:
  render    Convert the export into an HTML timeline (default)
  inspect   Print the resolved schedule as a table
  tui       Preview the resolved schedule in the terminal
  config    Print an example configuration file
  version   Show version

Flags for render/inspect/tui:
  --input <path>          Task export to read (CSV or XLSX)
  --output <path>         Destination HTML file (render only)
  --title <text>          Chart title (render/tui)
  --sheet <name>          Worksheet name for workbook inputs
  --duration-days <n>     Fallback window width in days
  --workers <n>           Concurrent row resolution (0 = sequential)
  --palette <path>        Bucket-to-color JSON file (render only)
  --log-level <level>     debug, info, warn, error
  --log-format <format>   text, logfmt, json

Configuration is read from ~/.taskspan/taskspan.toml, then taskspan.toml in
the working directory, then TASKSPAN_* environment variables; flags override
everything. Run "taskspan config" for a commented example.
`)
}
