package converto

import "errors"

var (
	// ErrRateLimited is returned when a caller exceeds their request
	// budget. The surface should ask the caller to wait.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrThreadNotFound is returned for operations on an unknown or
	// archived thread.
	ErrThreadNotFound = errors.New("thread not found")

	// ErrLessonNotFound is returned when a lesson has no chunks in the
	// index.
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrNoSource is returned by sync operations when no transcript
	// source is configured.
	ErrNoSource = errors.New("no transcript source configured")
)
