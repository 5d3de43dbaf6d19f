package types

import "fmt"

// Directive names one tallied profile feature.
type Directive string

const (
	Profiles        Directive = "profiles"
	AppArmor        Directive = "apparmor"
	Seccomp         Directive = "seccomp"
	Caps            Directive = "caps"
	DotLocal        Directive = "dotlocal"
	GlobalsDotLocal Directive = "globalsdotlocal"
	NetNone         Directive = "netnone"
	NoExec          Directive = "noexec"
	PrivateDev      Directive = "privatedev"
	PrivateTmp      Directive = "privatetmp"
	WhitelistVar    Directive = "whitelistvar"
	SSH             Directive = "ssh"
)

// AllDirectives lists every counter in report order.
var AllDirectives = []Directive{
	Profiles, DotLocal, GlobalsDotLocal, SSH, Seccomp, Caps,
	NoExec, AppArmor, PrivateDev, PrivateTmp, WhitelistVar, NetNone,
}

// Checkable lists the directives a user may ask to be warned about, in the
// order warnings are emitted.
var Checkable = []Directive{
	AppArmor, Caps, Seccomp, NoExec, PrivateDev, PrivateTmp, WhitelistVar, SSH,
}

var labels = map[Directive]string{
	AppArmor:     "apparmor",
	Caps:         "caps",
	Seccomp:      "seccomp",
	NoExec:       "include disable-exec.inc",
	PrivateDev:   "private-dev",
	PrivateTmp:   "private-tmp",
	WhitelistVar: "include whitelist-var-common.inc",
	SSH:          "include disable-common.inc",
}

// Label is the human-facing name used in "No ... found" warnings.
func (d Directive) Label() string {
	if l, ok := labels[d]; ok {
		return l
	}
	return string(d)
}

// ParseDirective accepts a directive name or its CLI flag spelling
// (e.g. "private-dev", "whitelist-var").
func ParseDirective(s string) (Directive, error) {
	switch s {
	case "private-dev":
		return PrivateDev, nil
	case "private-tmp":
		return PrivateTmp, nil
	case "whitelist-var":
		return WhitelistVar, nil
	case "net-none":
		return NetNone, nil
	}
	for _, d := range AllDirectives {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown directive %q", s)
}

// Counters holds one non-negative tally per directive.
type Counters struct {
	Profiles        int `json:"profiles"`
	AppArmor        int `json:"apparmor"`
	Seccomp         int `json:"seccomp"`
	Caps            int `json:"caps"`
	DotLocal        int `json:"dotlocal"`
	GlobalsDotLocal int `json:"globalsdotlocal"`
	NetNone         int `json:"netnone"`
	NoExec          int `json:"noexec"`
	PrivateDev      int `json:"privatedev"`
	PrivateTmp      int `json:"privatetmp"`
	WhitelistVar    int `json:"whitelistvar"`
	SSH             int `json:"ssh"`
}

func (c *Counters) field(d Directive) *int {
	switch d {
	case Profiles:
		return &c.Profiles
	case AppArmor:
		return &c.AppArmor
	case Seccomp:
		return &c.Seccomp
	case Caps:
		return &c.Caps
	case DotLocal:
		return &c.DotLocal
	case GlobalsDotLocal:
		return &c.GlobalsDotLocal
	case NetNone:
		return &c.NetNone
	case NoExec:
		return &c.NoExec
	case PrivateDev:
		return &c.PrivateDev
	case PrivateTmp:
		return &c.PrivateTmp
	case WhitelistVar:
		return &c.WhitelistVar
	case SSH:
		return &c.SSH
	}
	return nil
}

// Get returns the count for d, or 0 for an unknown directive.
func (c Counters) Get(d Directive) int {
	if p := c.field(d); p != nil {
		return *p
	}
	return 0
}

// Inc adds one to d.
func (c *Counters) Inc(d Directive) {
	if p := c.field(d); p != nil {
		*p++
	}
}

// Set overwrites the count for d.
func (c *Counters) Set(d Directive, n int) {
	if p := c.field(d); p != nil {
		*p = n
	}
}

// Add merges o into c.
func (c *Counters) Add(o Counters) {
	for _, d := range AllDirectives {
		c.Set(d, c.Get(d)+o.Get(d))
	}
}

// Checks is the set of directives to warn about when absent.
type Checks map[Directive]bool

// Enabled reports whether d was requested.
func (c Checks) Enabled(d Directive) bool { return c[d] }

// WarningKind classifies a per-file warning.
type WarningKind string

const (
	WarnMissing      WarningKind = "missing"
	WarnMultipleCaps WarningKind = "multiple-caps"
)

// Warning is a per-file message produced while scanning a top-level profile.
type Warning struct {
	Path      string      `json:"path"`
	Kind      WarningKind `json:"kind"`
	Directive Directive   `json:"directive"`
	Message   string      `json:"message"`
}

// FileResult is the corrected tally for one top-level profile. Digest is the
// xxhash of the top-level file content; Visited lists every file opened, in
// order.
type FileResult struct {
	Path     string    `json:"path"`
	Counters Counters  `json:"counters"`
	Warnings []Warning `json:"warnings,omitempty"`
	Digest   string    `json:"digest"`
	Visited  []string  `json:"visited,omitempty"`
}
