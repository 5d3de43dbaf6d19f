package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/proftool/proftool/internal/ctxlog"
	"github.com/proftool/proftool/internal/types"
)

// DefaultMaxDepth bounds include nesting; reaching it is an error.
const DefaultMaxDepth = 32

// Config controls scanning behavior.
type Config struct {
	// Checks are the directives to warn about when a profile lacks them.
	Checks       types.Checks
	StrictPrefix bool
	// MaxDepth is the include nesting limit (0 = DefaultMaxDepth).
	MaxDepth    int
	IncludeDirs []string
	// Exclude is a comma-separated list of globs for top-level inputs to skip.
	Exclude string
	// IgnoreFile names a .proftoolignore-style file ("" = none).
	IgnoreFile string
	// Debug receives a "processing <path>" line for every file opened.
	Debug io.Writer
	// OnWarning is called for each warning right after its file is scanned.
	OnWarning func(types.Warning)
}

// Result contains corrected totals and per-file detail for a run.
type Result struct {
	Totals   types.Counters     `json:"totals"`
	Files    []types.FileResult `json:"files"`
	Warnings []types.Warning    `json:"warnings"`
	Skipped  []string           `json:"skipped,omitempty"`
	Duration time.Duration      `json:"duration"`
}

// Scan processes each top-level profile in order and merges the corrected
// per-file counters into the totals. The first error aborts the run.
func Scan(ctx context.Context, cfg Config, paths []string) (Result, error) {
	var res Result
	if ctx == nil {
		ctx = context.Background()
	}
	log := ctxlog.FromContext(ctx)
	started := time.Now()

	filter, err := newInputFilter(cfg)
	if err != nil {
		return res, err
	}

	for _, p := range paths {
		if filter.skip(p) {
			log.Debug("input excluded", "path", p)
			res.Skipped = append(res.Skipped, p)
			continue
		}
		fr, err := ScanFile(ctx, cfg, p)
		if err != nil {
			return Result{}, err
		}
		for _, w := range fr.Warnings {
			if cfg.OnWarning != nil {
				cfg.OnWarning(w)
			}
		}
		res.Totals.Add(fr.Counters)
		res.Files = append(res.Files, fr)
		res.Warnings = append(res.Warnings, fr.Warnings...)
	}
	if res.Warnings == nil {
		// encode as [] rather than null
		res.Warnings = []types.Warning{}
	}
	res.Duration = time.Since(started)
	log.Debug("scan complete", "files", len(res.Files), "skipped", len(res.Skipped), "duration", res.Duration)
	return res, nil
}

// ScanFile walks one top-level profile with a fresh include chain and returns
// its corrected counters and warnings.
func ScanFile(ctx context.Context, cfg Config, path string) (types.FileResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	w := newWalker(cfg)
	w.counters.Profiles = 1
	if err := w.Walk(ctx, path, ""); err != nil {
		return types.FileResult{}, err
	}
	if w.depth != 0 {
		return types.FileResult{}, fmt.Errorf("internal error: include depth %d after %s", w.depth, path)
	}
	fr := types.FileResult{
		Path:     path,
		Counters: w.counters,
		Digest:   w.digest,
		Visited:  w.visited,
	}
	fr.Warnings = correct(&fr.Counters, path)
	fr.Warnings = append(fr.Warnings, missing(fr.Counters, cfg.Checks, path)...)
	return fr, nil
}

// correct clamps counters that nested or repeated directives can inflate
// within a single profile.
func correct(c *types.Counters, path string) []types.Warning {
	var out []types.Warning
	if c.Caps >= 2 {
		c.Caps = 1
		out = append(out, types.Warning{
			Path:      path,
			Kind:      types.WarnMultipleCaps,
			Directive: types.Caps,
			Message:   "Warning: multiple caps in " + path,
		})
	}
	if c.DotLocal > 1 {
		c.DotLocal = 1
	}
	if c.GlobalsDotLocal > 1 {
		c.GlobalsDotLocal = 1
	}
	return out
}

func missing(c types.Counters, checks types.Checks, path string) []types.Warning {
	var out []types.Warning
	for _, d := range types.Checkable {
		if !checks.Enabled(d) || c.Get(d) != 0 {
			continue
		}
		out = append(out, types.Warning{
			Path:      path,
			Kind:      types.WarnMissing,
			Directive: d,
			Message:   fmt.Sprintf("No %s found in %s", d.Label(), path),
		})
	}
	return out
}
