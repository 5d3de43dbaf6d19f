package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDepthExceeded is wrapped by *DepthError.
	ErrDepthExceeded = errors.New("include depth exceeded")
	// ErrIncludeCycle is wrapped by *CycleError.
	ErrIncludeCycle = errors.New("include cycle")
)

// OpenError reports a profile or include target that could not be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string { return "cannot open " + e.Path }

func (e *OpenError) Unwrap() error { return e.Err }

// DepthError reports an include chain nested deeper than the configured limit.
type DepthError struct {
	Path  string
	Depth int
	Max   int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("include depth %d reached the limit of %d at %s", e.Depth, e.Max, e.Path)
}

func (e *DepthError) Unwrap() error { return ErrDepthExceeded }

// CycleError reports a file that includes itself, directly or indirectly.
// Chain starts and ends with the repeated file.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return "include cycle: " + strings.Join(e.Chain, " -> ")
}

func (e *CycleError) Unwrap() error { return ErrIncludeCycle }
