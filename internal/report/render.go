package report

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/proftool/proftool/internal/types"
)

type PrintOptions struct {
	NoColor  bool
	Duration time.Duration
	Skipped  int
}

// statsRow is one line of the aggregate report. note, when set, names the
// profile line that feeds the counter.
type statsRow struct {
	label     string
	tabs      string
	directive types.Directive
	note      string
}

var statsRows = []statsRow{
	{"profiles", "\t\t\t", types.Profiles, ""},
	{"include local profile", "\t", types.DotLocal, "include profile-name.local"},
	{"include globals", "\t\t", types.GlobalsDotLocal, "include globals.local"},
	{"blacklist ~/.ssh", "\t\t", types.SSH, "include disable-common.inc"},
	{"seccomp", "\t\t\t", types.Seccomp, ""},
	{"capabilities", "\t\t", types.Caps, ""},
	{"noexec", "\t\t\t", types.NoExec, "include disable-exec.inc"},
	{"apparmor", "\t\t\t", types.AppArmor, ""},
	{"private-dev", "\t\t\t", types.PrivateDev, ""},
	{"private-tmp", "\t\t\t", types.PrivateTmp, ""},
	{"whitelist var directory", "\t", types.WhitelistVar, "include whitelist-var-common.inc"},
	{"net none", "\t\t\t", types.NetNone, ""},
}

// PrintText writes the aggregate report in the classic tab-aligned layout.
func PrintText(w io.Writer, totals types.Counters) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Stats:")
	for _, r := range statsRows {
		fmt.Fprintf(w, "    %s%s%d", r.label, r.tabs, totals.Get(r.directive))
		if r.note != "" {
			fmt.Fprintf(w, "   (%s)", r.note)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

// PrintTable writes the aggregate report as a bordered table.
func PrintTable(w io.Writer, totals types.Counters, opts PrintOptions) error {
	table := tablewriter.NewWriter(w)
	table.Header("DIRECTIVE", "COUNT", "PROFILE LINE")
	for _, r := range statsRows {
		if err := table.Append([]string{r.label, fmt.Sprint(totals.Get(r.directive)), r.note}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.Skipped > 0 {
		fmt.Fprintf(w, "Profiles skipped: %d\n", opts.Skipped)
	}
	return nil
}

// PrintWarning writes one per-file warning line.
func PrintWarning(w io.Writer, warn types.Warning, opts PrintOptions) {
	msg := warn.Message
	if !opts.NoColor {
		msg = colorWarning(warn.Kind, msg)
	}
	fmt.Fprintln(w, msg)
}

func colorWarning(k types.WarningKind, s string) string {
	switch k {
	case types.WarnMultipleCaps:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(s) // red
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render(s) // yellow
	}
}
