package cache

import "fmt"

// FetchError represents a failure to download or install a remote resource.
// The cache file at the destination is untouched when a FetchError is
// returned; at worst an abandoned temporary file remains beside it.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
