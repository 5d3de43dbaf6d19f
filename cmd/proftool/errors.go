package proftool

// ExitError carries the process exit code for a failed invocation. Message
// is printed to stderr as-is when non-empty.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(msg string) error {
	return &ExitError{Code: 1, Message: "Error: " + msg}
}
