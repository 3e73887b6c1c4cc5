package chunker

import "errors"

var (
	// ErrTokenizer indicates the tokenizer could not be initialized,
	// typically because the embedding model has no known encoding.
	ErrTokenizer = errors.New("tokenizer initialization failed")

	// ErrTokenizerRequired is returned when a tokenizer is not provided.
	ErrTokenizerRequired = errors.New("tokenizer required")

	// ErrInvalidTargetSize indicates a non-positive target token size.
	ErrInvalidTargetSize = errors.New("target token size must be greater than zero")

	// ErrInvalidOverlap indicates an overlap that is negative or at least
	// as large as the target token size.
	ErrInvalidOverlap = errors.New("overlap must be non-negative and smaller than target token size")
)
