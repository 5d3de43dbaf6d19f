package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/proftool/proftool/internal/ignore"
)

// inputFilter drops top-level inputs matched by the ignore file or the
// exclude globs. Included files are never filtered.
type inputFilter struct {
	ignored  ignore.Matcher
	excluded ignore.Matcher
}

func newInputFilter(cfg Config) (inputFilter, error) {
	var f inputFilter
	if cfg.IgnoreFile != "" {
		m, err := ignore.Load(cfg.IgnoreFile)
		if err != nil {
			return f, fmt.Errorf("load %s: %w", cfg.IgnoreFile, err)
		}
		f.ignored = m
	}
	if strings.TrimSpace(cfg.Exclude) != "" {
		f.excluded = ignore.FromGlobs(cfg.Exclude)
	}
	return f, nil
}

func (f inputFilter) skip(path string) bool {
	if f.ignored.Empty() && f.excluded.Empty() {
		return false
	}
	rel := filepath.ToSlash(filepath.Clean(path))
	rel = strings.TrimPrefix(rel, "/")
	return f.ignored.Match(rel) || f.excluded.Match(rel)
}
