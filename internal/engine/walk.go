package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/proftool/proftool/internal/ctxlog"
	"github.com/proftool/proftool/internal/types"
)

// walker expands one top-level profile and its includes into a Counters.
// A walker is single-use.
type walker struct {
	cls         Classifier
	maxDepth    int
	includeDirs []string
	debug       io.Writer

	counters types.Counters
	depth    int
	chain    []string
	onChain  map[string]bool
	visited  []string
	digest   string
}

func newWalker(cfg Config) *walker {
	limit := cfg.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}
	return &walker{
		cls:         Classifier{Strict: cfg.StrictPrefix},
		maxDepth:    limit,
		includeDirs: cfg.IncludeDirs,
		debug:       cfg.Debug,
		onChain:     map[string]bool{},
	}
}

// Walk reads the profile at path, counting directives and following
// includes. from is the directory of the including file ("" at top level).
func (w *walker) Walk(ctx context.Context, path, from string) error {
	resolved := w.resolve(path, from)
	if w.debug != nil {
		fmt.Fprintf(w.debug, "processing %s\n", resolved)
	}

	w.depth++
	defer func() { w.depth-- }()
	if w.depth >= w.maxDepth {
		return &DepthError{Path: resolved, Depth: w.depth, Max: w.maxDepth}
	}

	key := chainKey(resolved)
	if w.onChain[key] {
		chain := append(append([]string{}, w.chain...), resolved)
		return &CycleError{Chain: chain}
	}
	w.onChain[key] = true
	w.chain = append(w.chain, resolved)
	defer func() {
		delete(w.onChain, key)
		w.chain = w.chain[:len(w.chain)-1]
	}()

	f, err := os.Open(resolved)
	if err != nil {
		return &OpenError{Path: resolved, Err: err}
	}
	defer f.Close()
	w.visited = append(w.visited, resolved)

	var r io.Reader = f
	var h *xxhash.Digest
	if w.depth == 1 {
		h = xxhash.New()
		r = io.TeeReader(f, h)
	}

	dir := filepath.Dir(resolved)
	br := bufio.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, rerr := br.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return fmt.Errorf("read %s: %w", resolved, rerr)
		}
		if line, ok := cleanLine(raw); ok {
			if err := w.classify(ctx, line, resolved, dir); err != nil {
				return err
			}
		}
		if rerr != nil {
			break
		}
	}
	if h != nil {
		w.digest = formatDigest(h.Sum64())
	}
	return nil
}

// classify applies one cleaned line from the file at resolved.
func (w *walker) classify(ctx context.Context, line, resolved, dir string) error {
	log := ctxlog.FromContext(ctx)
	c := w.cls.Classify(line)
	switch c.Action {
	case Count:
		w.counters.Inc(c.Directive)
		if c.Path != "" {
			log.Debug("local override not expanded", "file", resolved, "include", c.Path)
		}
	case Include:
		log.Debug("expanding include", "file", resolved, "include", c.Path, "depth", w.depth)
		return w.Walk(ctx, c.Path, dir)
	}
	return nil
}

// resolve picks the file an include refers to. Relative paths are tried
// against the working directory, then the including file's directory, then
// each include dir. When nothing exists the working-directory form is kept
// so the open error names it.
func (w *walker) resolve(path, from string) string {
	if filepath.IsAbs(path) {
		return path
	}
	candidates := []string{path}
	if from != "" {
		candidates = append(candidates, filepath.Join(from, path))
	}
	for _, d := range w.includeDirs {
		candidates = append(candidates, filepath.Join(d, path))
	}
	for _, c := range candidates {
		if st, err := os.Stat(c); err == nil && !st.IsDir() {
			return c
		}
	}
	return path
}

func chainKey(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func formatDigest(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
