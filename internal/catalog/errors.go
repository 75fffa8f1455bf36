package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidYear is returned for years outside the supported range.
var ErrInvalidYear = errors.New("invalid year")

// UpstreamFetchError aborts a year fetch: a discover page could not be read.
type UpstreamFetchError struct {
	Year int
	Page int
	Err  error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("fetch year %d page %d: %v", e.Year, e.Page, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}
