package engine

import (
	"strings"

	"github.com/proftool/proftool/internal/types"
)

// Action is what a classified line asks the walker to do.
type Action int

const (
	// Ignore leaves counters untouched.
	Ignore Action = iota
	// Count increments Class.Directive.
	Count
	// Include expands Class.Path recursively.
	Include
)

// Class is the outcome of classifying one profile line.
type Class struct {
	Action    Action
	Directive types.Directive
	Path      string
}

type rule struct {
	prefix    string
	directive types.Directive
}

// rules are checked in order; the first match wins. The named includes
// precede the generic "include " rule so they are counted, not expanded.
var rules = []rule{
	{"seccomp", types.Seccomp},
	{"caps", types.Caps},
	{"include disable-exec.inc", types.NoExec},
	{"include whitelist-var-common.inc", types.WhitelistVar},
	{"include disable-common.inc", types.SSH},
	{"net none", types.NetNone},
	{"apparmor", types.AppArmor},
	{"private-dev", types.PrivateDev},
	{"private-tmp", types.PrivateTmp},
}

const includePrefix = "include "

// Classifier maps trimmed profile lines to counters.
type Classifier struct {
	// Strict requires a matched prefix to end the line or be followed by
	// whitespace. The default is a plain prefix test, so "caps.drop all"
	// counts as caps.
	Strict bool
}

// Classify inspects a line that has already been left-trimmed and is neither
// blank nor a comment.
func (c Classifier) Classify(line string) Class {
	for _, r := range rules {
		if c.hasPrefix(line, r.prefix) {
			return Class{Action: Count, Directive: r.directive}
		}
	}
	if !strings.HasPrefix(line, includePrefix) {
		return Class{}
	}
	path := strings.TrimSpace(line[len(includePrefix):])
	if path == "" {
		return Class{}
	}
	return ResolveInclude(path)
}

func (c Classifier) hasPrefix(line, prefix string) bool {
	if !strings.HasPrefix(line, prefix) {
		return false
	}
	if !c.Strict || len(line) == len(prefix) {
		return true
	}
	next := line[len(prefix)]
	return next == ' ' || next == '\t'
}

// ResolveInclude decides how an include target is handled. Local overrides
// are tallied and never opened; everything else is expanded.
func ResolveInclude(path string) Class {
	if strings.Contains(path, ".local") {
		if strings.Contains(path, "globals.local") {
			return Class{Action: Count, Directive: types.GlobalsDotLocal, Path: path}
		}
		return Class{Action: Count, Directive: types.DotLocal, Path: path}
	}
	return Class{Action: Include, Path: path}
}

// cleanLine strips the line terminator and leading blanks. ok is false for
// blank lines and comments.
func cleanLine(raw string) (line string, ok bool) {
	line = strings.TrimRight(raw, "\r\n")
	line = strings.TrimLeft(line, " \t")
	if line == "" || line[0] == '#' {
		return "", false
	}
	return line, true
}
