package storage

import (
	"context"

	"github.com/convertohq/converto/core"
)

// ChunkRepository provides operations for managing transcript chunks and
// their embedding vectors. Implementations must be thread-safe and support
// concurrent access.
type ChunkRepository interface {
	// UpsertChunks writes one or more chunks to storage, replacing any
	// existing chunk with the same ID. All chunks in a call are written in
	// a single transaction: either all land or none do.
	UpsertChunks(ctx context.Context, chunks ...*core.Chunk) error

	// QuerySimilar finds the chunks most similar to the given vector.
	// Returns up to k results ordered by similarity score (highest first).
	// An empty index yields an empty result, not an error.
	QuerySimilar(ctx context.Context, vector []float32, k int) ([]*core.SearchResult, error)

	// GetLessonChunks retrieves all chunks whose metadata matches the given
	// course and title exactly. Order is unspecified; callers sort by
	// ChunkIndex when they need document order.
	GetLessonChunks(ctx context.Context, course, title string) ([]*core.Chunk, error)

	// Courses lists the distinct course names present in the index, sorted.
	Courses(ctx context.Context) ([]string, error)

	// Lessons lists the distinct lesson titles for a course, sorted.
	Lessons(ctx context.Context, course string) ([]string, error)

	// Count returns the number of chunks in the collection.
	Count(ctx context.Context) (int, error)

	// Peek returns up to n chunks in key order. Used by inspection tooling.
	Peek(ctx context.Context, n int) ([]*core.Chunk, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}
