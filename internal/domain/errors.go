package domain

import "fmt"

// FetchFailedError reports that a dataset could not be retrieved or decoded.
type FetchFailedError struct {
	Endpoint string
	Err      error
}

func (e *FetchFailedError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchFailedError) Unwrap() error { return e.Err }

// MalformedFeatureError reports a feature that was skipped. Index is the
// feature's position in the source collection.
type MalformedFeatureError struct {
	Index  int
	Reason string
}

func (e *MalformedFeatureError) Error() string {
	return fmt.Sprintf("malformed feature %d: %s", e.Index, e.Reason)
}
