package notion

import "errors"

var (
	// ErrTokenRequired is returned when an integration token is not provided.
	ErrTokenRequired = errors.New("notion token required")

	// ErrDatabaseRequired is returned when a database ID is not provided.
	ErrDatabaseRequired = errors.New("notion database ID required")

	// ErrHTTPClientRequired is returned when a nil HTTP client is supplied.
	ErrHTTPClientRequired = errors.New("http client required")

	// ErrRequestFailed indicates an API request did not complete with a
	// success status.
	ErrRequestFailed = errors.New("notion request failed")
)
