// Package engine contains the core logic of proftool. It walks profile files,
// classifies each line against a fixed set of directive prefixes, expands
// includes (tallying but never opening .local overrides), and returns
// corrected per-file and aggregate counters. This package is internal;
// external consumers should use the stable facade in pkg/core.
package engine
