// Package service wraps the external lookup APIs (geocoding, weather,
// encyclopedia) behind typed clients and a shared failure taxonomy.
package service

import "fmt"

// TransientError wraps a network timeout or connection-level failure.
// A retry may succeed; the model is expected to apologise or retry.
type TransientError struct {
	Upstream string
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Upstream, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// NotFoundError means the upstream has no entity matching the query.
type NotFoundError struct {
	Upstream string
	Query    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no match for %q", e.Upstream, e.Query)
}

// SchemaError means the upstream payload could not be coerced into the
// expected shape. Usually indicates an upstream contract change.
type SchemaError struct {
	Upstream string
	Reason   string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s returned an unexpected payload: %s", e.Upstream, e.Reason)
}
