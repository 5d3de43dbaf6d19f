package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/proftool/proftool/internal/types"
)

func TestPrintText_Layout(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, types.Counters{Profiles: 3, DotLocal: 2, GlobalsDotLocal: 1, Seccomp: 3, NetNone: 1})
	want := "\nStats:\n" +
		"    profiles\t\t\t3\n" +
		"    include local profile\t2   (include profile-name.local)\n" +
		"    include globals\t\t1   (include globals.local)\n" +
		"    blacklist ~/.ssh\t\t0   (include disable-common.inc)\n" +
		"    seccomp\t\t\t3\n" +
		"    capabilities\t\t0\n" +
		"    noexec\t\t\t0   (include disable-exec.inc)\n" +
		"    apparmor\t\t\t0\n" +
		"    private-dev\t\t\t0\n" +
		"    private-tmp\t\t\t0\n" +
		"    whitelist var directory\t0   (include whitelist-var-common.inc)\n" +
		"    net none\t\t\t1\n" +
		"\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected report:\n%q\nwant:\n%q", got, want)
	}
}

func TestPrintTable_WithCounts(t *testing.T) {
	var buf bytes.Buffer
	err := PrintTable(&buf, types.Counters{Profiles: 1, Seccomp: 1}, PrintOptions{NoColor: true, Duration: 1200 * time.Millisecond, Skipped: 2})
	if err != nil {
		t.Fatalf("PrintTable: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "DIRECTIVE") {
		t.Fatalf("expected table header; got: %q", out)
	}
	if !strings.Contains(out, "whitelist var directory") {
		t.Fatalf("expected directive rows; got: %q", out)
	}
	if !strings.Contains(out, "Scan duration: 1.20s") {
		t.Fatalf("expected duration footer; got: %q", out)
	}
	if !strings.Contains(out, "Profiles skipped: 2") {
		t.Fatalf("expected skipped footer; got: %q", out)
	}
}

func TestPrintWarning_NoColor(t *testing.T) {
	var buf bytes.Buffer
	PrintWarning(&buf, types.Warning{Kind: types.WarnMissing, Message: "No seccomp found in a.profile"}, PrintOptions{NoColor: true})
	if buf.String() != "No seccomp found in a.profile\n" {
		t.Fatalf("unexpected warning line: %q", buf.String())
	}
}
