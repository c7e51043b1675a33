// Command dccheck checks resolved Python module documents (.pyast.json)
// against the dataclass rules: field order, mutable defaults, init-only
// fields, frozen writes, ordering comparisons and dataclasses helper calls.
//
// Usage:
//
//	dccheck [flags] <file-or-dir> [<file-or-dir> ...]
//
// Directories are searched recursively for *.pyast.json files.
//
// Exit codes:
//
//	0  No errors (warnings may be present unless --strict)
//	1  One or more files have findings of error severity (or warnings with --strict)
//	2  Input or usage error (missing file, invalid JSON, bad flags or config)
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/foundry-zero/dccheck/internal/cache"
	"github.com/foundry-zero/dccheck/internal/checker"
	"github.com/foundry-zero/dccheck/internal/config"
	"github.com/foundry-zero/dccheck/internal/logging"
	"github.com/foundry-zero/dccheck/internal/report"
)

const version = checker.Version

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// flags holds the command-line values. Flags the user did not set leave
// the config file's value in place.
type flags struct {
	format     string
	quiet      bool
	strict     bool
	schemaOnly bool
	rules      string
	configPath string
	jobs       int
	color      string
	cacheDir   string
	verbose    bool
}

func run(args []string, stdout, stderr io.Writer) int {
	exitCode := 0
	cmd := newRootCmd(stdout, stderr, &exitCode)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	return exitCode
}

func newRootCmd(stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "dccheck [flags] <file-or-dir>...",
		Short: "Check Python dataclass declarations and uses",
		Long: `dccheck validates resolved Python module documents (.pyast.json) against
the dataclass rules DC-01 to DC-12 and reports findings per file.`,
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := execute(cmd, f, args, stdout, stderr)
			*exitCode = code
			return err
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("dccheck {{.Version}}\n")

	fl := cmd.Flags()
	fl.StringVar(&f.format, "format", config.FormatText, "output format: text or json")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "suppress output (exit code only)")
	fl.BoolVar(&f.strict, "strict", false, "treat warnings as errors")
	fl.BoolVar(&f.schemaOnly, "schema-only", false, "run schema validation only, skip the rule passes")
	fl.StringVar(&f.rules, "rules", "", "comma-separated rule numbers, IDs or ranges (e.g. 1,5-7 or DC-08)")
	fl.StringVar(&f.configPath, "config", "", "config file (default: discover .dccheck.toml or .dccheck.yml)")
	fl.IntVarP(&f.jobs, "jobs", "j", 0, "files checked in parallel (0 = number of CPUs)")
	fl.StringVar(&f.color, "color", config.ColorAuto, "colorize text output: auto, always or never")
	fl.StringVar(&f.cacheDir, "cache-dir", "", "directory for the report cache (disabled when empty)")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log progress to stderr")
	return cmd
}

// execute runs the check and returns the exit code. Returned errors are
// usage or configuration errors.
func execute(cmd *cobra.Command, f flags, args []string, stdout, stderr io.Writer) (int, error) {
	log := logging.New(f.verbose, stderr)
	defer func() { _ = log.Sync() }()

	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return 2, err
	}

	ruleFilter, err := cfg.RuleFilter()
	if err != nil {
		return 2, err
	}
	severity, err := cfg.SeverityOverrides()
	if err != nil {
		return 2, err
	}

	var opts []checker.Option
	opts = append(opts, checker.WithLogger(log))
	if cfg.CacheDir != "" {
		store, err := cache.Open(cfg.CacheDir)
		if err != nil {
			log.Warnw("report cache disabled", "dir", cfg.CacheDir, "error", err)
		} else {
			opts = append(opts, checker.WithCache(store))
		}
	}

	c, err := checker.NewChecker(opts...)
	if err != nil {
		return 2, err
	}

	files, err := expandArgs(args, cfg.Exclude)
	if err != nil {
		return 2, err
	}
	log.Debugw("expanded inputs", "args", len(args), "files", len(files))

	checkOpts := checker.CheckOptions{
		SchemaOnly: f.schemaOnly,
		RuleFilter: ruleFilter,
		Strict:     cfg.Strict,
		Severity:   severity,
		Jobs:       cfg.Jobs,
	}
	reports, err := c.CheckFiles(cmd.Context(), files, checkOpts)
	if err != nil {
		return 2, err
	}

	textOpts := report.TextOptions{Color: useColor(cfg.Color, stdout)}
	exitCode := 0
	for _, r := range reports {
		exitCode = max(exitCode, reportExitCode(r, cfg.Strict))

		if !f.quiet {
			if err := printReport(stdout, r, cfg.Format, textOpts); err != nil {
				return 2, err
			}
		}
	}
	return exitCode, nil
}

// loadConfig resolves the config file and lays the explicitly set flags
// over it.
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	cfg, path, err := config.Resolve(f.configPath, wd)
	if err != nil {
		return nil, err
	}
	if path != "" && cfg.CacheDir != "" && !filepath.IsAbs(cfg.CacheDir) {
		cfg.CacheDir = filepath.Join(filepath.Dir(path), cfg.CacheDir)
	}

	fl := cmd.Flags()
	if fl.Changed("format") {
		cfg.Format = f.format
	}
	if fl.Changed("strict") {
		cfg.Strict = f.strict
	}
	if fl.Changed("rules") {
		cfg.Rules = f.rules
		cfg.Disable = nil
	}
	if fl.Changed("jobs") {
		cfg.Jobs = f.jobs
		if cfg.Jobs == 0 {
			cfg.Jobs = config.Defaults().Jobs
		}
	}
	if fl.Changed("color") {
		cfg.Color = f.color
	}
	if fl.Changed("cache-dir") {
		cfg.CacheDir = f.cacheDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// reportExitCode maps one report to the exit code it calls for.
func reportExitCode(r *report.Report, strict bool) int {
	switch {
	case checker.HasInputError(r):
		return 2
	case r.HasErrors():
		return 1
	case strict && r.HasWarnings():
		return 1
	default:
		return 0
	}
}

// printReport outputs the report in the specified format.
func printReport(w io.Writer, r *report.Report, format string, opts report.TextOptions) error {
	switch format {
	case config.FormatJSON:
		data, err := report.FormatJSON(r)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		_, err := fmt.Fprint(w, report.FormatText(r, opts))
		return err
	}
}
