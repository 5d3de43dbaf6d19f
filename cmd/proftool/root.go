package proftool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/proftool/proftool/internal/config"
	"github.com/proftool/proftool/internal/ctxlog"
	"github.com/proftool/proftool/internal/engine"
	"github.com/proftool/proftool/internal/report"
	"github.com/proftool/proftool/internal/types"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

type flags struct {
	checks map[types.Directive]*bool
	debug  bool

	json         bool
	sarif        bool
	table        bool
	noColor      bool
	strictPrefix bool
	maxDepth     int
	includeDirs  []string
	exclude      string
	configPath   string
	logLevel     string
}

// checkFlags maps each warn-if-absent flag to its directive.
var checkFlags = []struct {
	name      string
	directive types.Directive
	usage     string
}{
	{"apparmor", types.AppArmor, "print profiles without apparmor"},
	{"caps", types.Caps, "print profiles without caps"},
	{"seccomp", types.Seccomp, "print profiles without seccomp"},
	{"noexec", types.NoExec, `print profiles without "include disable-exec.inc"`},
	{"private-dev", types.PrivateDev, "print profiles without private-dev"},
	{"private-tmp", types.PrivateTmp, "print profiles without private-tmp"},
	{"whitelist-var", types.WhitelistVar, `print profiles without "include whitelist-var-common.inc"`},
	{"ssh", types.SSH, `print profiles without "include disable-common.inc"`},
}

// newRootCmd builds the proftool command writing to stdout and stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &flags{checks: map[types.Directive]*bool{}}
	cmd := &cobra.Command{
		Use:           "proftool [options] file...",
		Short:         "Print profile statistics",
		Long:          "proftool tallies security directives across sandbox profiles, following includes and skipping .local overrides.",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, f, args)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) { printUsage(c.OutOrStdout()) })
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err.Error()) })

	fl := cmd.Flags()
	fl.SetInterspersed(false)
	for _, c := range checkFlags {
		f.checks[c.directive] = fl.Bool(c.name, false, c.usage)
	}
	fl.BoolVar(&f.debug, "debug", false, "print each file as it is processed")
	fl.BoolVar(&f.json, "json", false, "emit JSON")
	fl.BoolVar(&f.sarif, "sarif", false, "emit SARIF 2.1.0")
	fl.BoolVar(&f.table, "table", false, "print the report as a table")
	fl.BoolVar(&f.noColor, "no-color", false, "disable colorized output")
	fl.BoolVar(&f.strictPrefix, "strict-prefix", false, "require whitespace or end of line after a directive")
	fl.IntVar(&f.maxDepth, "max-depth", 0, "include nesting limit (0 = 32)")
	fl.StringSliceVar(&f.includeDirs, "include-dir", nil, "directory to resolve includes from (repeatable)")
	fl.StringVar(&f.exclude, "exclude", "", "comma-separated globs of input files to skip")
	fl.StringVar(&f.configPath, "config", "", "read configuration from this file")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: debug|info|warn|error")
	// register help/version now so precheck can see them
	cmd.InitDefaultHelpFlag()
	cmd.InitDefaultVersionFlag()
	return cmd
}

// Execute runs the proftool CLI. It should be called by the main package.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return 1
	}
	cmd := newRootCmd(stdout, stderr)
	if code, done := precheck(cmd.Flags(), args, stdout, stderr); done {
		return code
	}
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		var ee *ExitError
		if errors.As(err, &ee) {
			if ee.Message != "" {
				fmt.Fprintln(stderr, ee.Message)
			}
			return ee.Code
		}
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

type outputFormat string

const (
	formatText  outputFormat = "text"
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatSARIF outputFormat = "sarif"
)

func runStats(cmd *cobra.Command, f *flags, files []string) error {
	if len(files) == 0 {
		return usageError("no profile file specified")
	}
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if f.configPath != "" {
		c, err := config.LoadFile(f.configPath)
		if err != nil {
			return usageError(fmt.Sprintf("cannot read config %s: %v", f.configPath, err))
		}
		lcfg = c
	} else {
		if c, err := config.LoadGlobal(); err == nil {
			gcfg = c
		}
		if wd, err := os.Getwd(); err == nil {
			if c, err := config.LoadLocal(wd); err == nil {
				lcfg = c
			}
		}
	}

	level := firstNonEmpty(f.logLevel, lcfg.GetLogLevel(), gcfg.GetLogLevel())
	if level == "" {
		level = "warn"
	}
	if !ctxlog.ValidLevel(level) {
		return usageError("invalid log level " + level)
	}
	log := ctxlog.New(level, stderr)
	ctx := ctxlog.WithLogger(cmd.Context(), log)

	checks, err := resolveChecks(f, lcfg, gcfg)
	if err != nil {
		return usageError(err.Error())
	}
	format, err := resolveFormat(f, lcfg, gcfg)
	if err != nil {
		return usageError(err.Error())
	}
	maxDepth := pickInt(f.maxDepth, lcfg.MaxDepth, gcfg.MaxDepth)
	if maxDepth < 0 {
		return usageError(fmt.Sprintf("invalid max depth %d", maxDepth))
	}
	noColor := pickBool(f.noColor, lcfg.NoColor, gcfg.NoColor) || !isTerminal(stdout)
	opts := report.PrintOptions{NoColor: noColor}
	human := format == formatText || format == formatTable

	cfg := engine.Config{
		Checks:       checks,
		StrictPrefix: pickBool(f.strictPrefix, lcfg.StrictPrefix, gcfg.StrictPrefix),
		MaxDepth:     maxDepth,
		IncludeDirs:  pickList(f.includeDirs, lcfg.IncludeDirs, gcfg.IncludeDirs),
		Exclude:      pickString(f.exclude, lcfg.Exclude, gcfg.Exclude),
		IgnoreFile:   ".proftoolignore",
	}
	if f.debug {
		// keep machine-readable stdout clean
		cfg.Debug = stdout
		if !human {
			cfg.Debug = stderr
		}
	}
	if human {
		cfg.OnWarning = func(w types.Warning) { report.PrintWarning(stdout, w, opts) }
	}
	log.Debug("starting scan", "files", len(files), "format", format, "max_depth", cfg.MaxDepth, "strict_prefix", cfg.StrictPrefix)

	res, err := engine.Scan(ctx, cfg, files)
	if err != nil {
		return &ExitError{Code: 1, Message: "Error: " + err.Error()}
	}

	switch format {
	case formatJSON:
		return report.WriteJSON(stdout, res)
	case formatSARIF:
		return report.WriteSARIF(stdout, res, version)
	case formatTable:
		opts.Duration = res.Duration
		opts.Skipped = len(res.Skipped)
		return report.PrintTable(stdout, res.Totals, opts)
	default:
		report.PrintText(stdout, res.Totals)
	}
	return nil
}

// resolveChecks merges configured checks with the warn-if-absent flags.
func resolveChecks(f *flags, lcfg, gcfg config.FileConfig) (types.Checks, error) {
	checks := types.Checks{}
	for _, name := range pickList(nil, lcfg.Checks, gcfg.Checks) {
		d, err := types.ParseDirective(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("config checks: %w", err)
		}
		if !slices.Contains(types.Checkable, d) {
			return nil, fmt.Errorf("config checks: %q cannot be checked", name)
		}
		checks[d] = true
	}
	for d, on := range f.checks {
		if *on {
			checks[d] = true
		}
	}
	return checks, nil
}

func resolveFormat(f *flags, lcfg, gcfg config.FileConfig) (outputFormat, error) {
	switch {
	case f.sarif:
		return formatSARIF, nil
	case f.json:
		return formatJSON, nil
	case f.table:
		return formatTable, nil
	}
	s := firstNonEmpty(lcfg.GetFormat(), gcfg.GetFormat())
	switch outputFormat(s) {
	case "":
		return formatText, nil
	case formatText, formatTable, formatJSON, formatSARIF:
		return outputFormat(s), nil
	}
	return "", fmt.Errorf("invalid format %q", s)
}
