package ai

import "errors"

var (
	// ErrEmbedding indicates an embedding request failed after all retry
	// attempts were exhausted. The underlying cause is wrapped.
	ErrEmbedding = errors.New("embedding request failed")

	// ErrNoCompletion indicates the language model returned no choices.
	ErrNoCompletion = errors.New("model returned no completion")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidMaxAttempts indicates a non-positive retry attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than zero")
)
