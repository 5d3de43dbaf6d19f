// Package core provides a small, stable facade over proftool's internal engine
// for external integrations. It re-exports a narrow API surface so other
// tools can depend on a stable import path without importing internal
// packages.
//
// Example:
//
//	res, err := core.Scan(ctx, core.Config{}, []string{"firefox.profile"})
//	if err != nil { /* handle */ }
//	_ = core.MarshalResult(os.Stdout, res)
package core
