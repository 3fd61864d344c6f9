package checker

import "fmt"

// NotFoundError means the checker executable is not on PATH.
type NotFoundError struct {
	Binary string
	Cause  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("checker %q not found in PATH; install the CF checker or set the checker path", e.Binary)
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// InvocationError records a checker run that did not exit cleanly for one
// input file.
type InvocationError struct {
	InputFile string
	ExitCode  int
	Cause     error
}

func (e *InvocationError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("check failed for %s: checker exited with status %d", e.InputFile, e.ExitCode)
	}
	return fmt.Sprintf("check failed for %s: %v", e.InputFile, e.Cause)
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}
