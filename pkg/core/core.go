package core

import (
	"context"

	"github.com/proftool/proftool/internal/engine"
	"github.com/proftool/proftool/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Config = engine.Config
type Result = engine.Result
type Counters = types.Counters
type Directive = types.Directive
type Checks = types.Checks
type Warning = types.Warning
type FileResult = types.FileResult

// DefaultMaxDepth is the include nesting limit used when Config.MaxDepth is 0.
const DefaultMaxDepth = engine.DefaultMaxDepth

// Sentinel errors for errors.Is checks on scan failures.
var (
	ErrDepthExceeded = engine.ErrDepthExceeded
	ErrIncludeCycle  = engine.ErrIncludeCycle
)

// Scan is the stable entrypoint for other programs.
func Scan(ctx context.Context, cfg Config, paths []string) (Result, error) {
	return engine.Scan(ctx, cfg, paths)
}

// ScanFile tallies a single top-level profile.
func ScanFile(ctx context.Context, cfg Config, path string) (FileResult, error) {
	return engine.ScanFile(ctx, cfg, path)
}

// Directives returns every counter name in report order.
func Directives() []Directive {
	return append([]Directive(nil), types.AllDirectives...)
}
