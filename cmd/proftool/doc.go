// Package proftool provides the command-line interface for proftool. It
// parses flags, merges them with YAML configuration, runs the profile scan,
// and renders warnings and the aggregate report.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/proftool/proftool/cmd/proftool"
//	func main() { proftool.Execute() }
package proftool
