package applebooks

import "fmt"

// NotFoundError means a store directory or file could not be located.
type NotFoundError struct {
	Store string
	Path  string
	Err   error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s store not found at %s: %v", e.Store, e.Path, e.Err)
	}
	return fmt.Sprintf("%s store not found at %s", e.Store, e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// OpenError wraps the engine error for a store that exists but cannot be
// opened or attached (permissions, corruption, locks).
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// QueryError signals that the stores do not have the shape the export
// query expects, usually after an Apple Books update.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("annotation query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
