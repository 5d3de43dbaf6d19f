// Package ignore loads .proftoolignore files: one glob per line, '#' comments,
// blank lines skipped. Patterns ending in '/' match everything below that
// directory.
package ignore

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Matcher reports whether a slash-separated relative path is ignored.
type Matcher struct {
	patterns []string
}

// Load reads patterns from path. A missing file yields an empty matcher and
// no error.
func Load(path string) (Matcher, error) {
	var m Matcher
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m, nil
		}
		return m, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		m.Add(sc.Text())
	}
	return m, sc.Err()
}

// FromGlobs builds a matcher from a comma-separated glob list.
func FromGlobs(list string) Matcher {
	var m Matcher
	for _, p := range strings.Split(list, ",") {
		m.Add(p)
	}
	return m
}

// Add appends one pattern line.
func (m *Matcher) Add(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	line = strings.TrimPrefix(line, "./")
	if strings.HasSuffix(line, "/") {
		line += "**"
	}
	if !strings.Contains(line, "/") {
		// bare names match at any depth
		m.patterns = append(m.patterns, line, "**/"+line)
		return
	}
	m.patterns = append(m.patterns, line)
}

// Empty reports whether the matcher has no patterns.
func (m Matcher) Empty() bool { return len(m.patterns) == 0 }

// Match reports whether rel matches any pattern.
func (m Matcher) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimPrefix(rel, "./")
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
