package badger

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"sort"

	"github.com/convertohq/converto/core"
	"github.com/convertohq/converto/storage"
	"github.com/dgraph-io/badger/v4"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
// All chunks live under one collection prefix; similarity search is a
// brute-force cosine scan over the collection.
type ChunkRepository struct {
	backend    *Backend
	collection string
	logger     *slog.Logger
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a chunk repository bound to a collection.
//
// Returns storage.ChunkRepository interface to enforce abstraction.
func NewChunkRepository(backend *Backend, collection string) (storage.ChunkRepository, error) {
	return newChunkRepository(backend, collection)
}

// newChunkRepository is an internal constructor that returns the concrete type.
func newChunkRepository(backend *Backend, collection string) (*ChunkRepository, error) {
	if collection == "" {
		return nil, storage.ErrInvalidQuery
	}

	return &ChunkRepository{
		backend:    backend,
		collection: collection,
		logger:     slog.Default().With("component", "chunk-repository", "collection", collection),
	}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *ChunkRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ChunkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// UpsertChunks writes all chunks in a single transaction. Existing chunks
// with the same ID are replaced, so re-ingesting a page is safe.
func (r *ChunkRepository) UpsertChunks(ctx context.Context, chunks ...*core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return err
		}
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			value, err := storage.MarshalChunk(chunk)
			if err != nil {
				return err
			}
			if err := tx.Set(makeChunkKey(r.collection, chunk.ID), value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// QuerySimilar finds the k chunks most similar to the given vector.
// Results are ordered by cosine similarity, highest first. An empty
// collection yields an empty result.
func (r *ChunkRepository) QuerySimilar(ctx context.Context, vector []float32, k int) ([]*core.SearchResult, error) {
	if k < 1 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.SearchResult

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(r.collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}

			// Skip chunks without embeddings
			if len(chunk.Vector) == 0 {
				continue
			}

			results = append(results, &core.SearchResult{
				Chunk: chunk,
				Score: cosineSimilarity(vector, chunk.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > k {
		results = results[:k]
	}

	return results, nil
}

// GetLessonChunks retrieves all chunks whose metadata matches the course and
// title exactly. Order is unspecified.
func (r *ChunkRepository) GetLessonChunks(ctx context.Context, course, title string) ([]*core.Chunk, error) {
	var chunks []*core.Chunk

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(r.collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}

			if chunk.Metadata.Course == course && chunk.Metadata.Title == title {
				chunks = append(chunks, chunk)
			}
		}
		return nil
	}, false)

	return chunks, err
}

// Courses lists the distinct course names present in the collection, sorted.
func (r *ChunkRepository) Courses(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)

	err := r.scanMetadata(func(meta *core.ChunkMetadata) {
		if meta.Course != "" {
			seen[meta.Course] = true
		}
	})
	if err != nil {
		return nil, err
	}

	return sortedKeys(seen), nil
}

// Lessons lists the distinct lesson titles for a course, sorted.
func (r *ChunkRepository) Lessons(ctx context.Context, course string) ([]string, error) {
	seen := make(map[string]bool)

	err := r.scanMetadata(func(meta *core.ChunkMetadata) {
		if meta.Course == course && meta.Title != "" {
			seen[meta.Title] = true
		}
	})
	if err != nil {
		return nil, err
	}

	return sortedKeys(seen), nil
}

// Count returns the number of chunks in the collection.
func (r *ChunkRepository) Count(ctx context.Context) (int, error) {
	count := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(r.collection)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)

	return count, err
}

// Peek returns up to n chunks in key order.
func (r *ChunkRepository) Peek(ctx context.Context, n int) ([]*core.Chunk, error) {
	if n < 1 {
		return nil, storage.ErrInvalidQuery
	}

	var chunks []*core.Chunk

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(r.collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid() && len(chunks) < n; iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			chunks = append(chunks, chunk)
		}
		return nil
	}, false)

	return chunks, err
}

// scanMetadata iterates the collection and calls fn with each chunk's metadata.
func (r *ChunkRepository) scanMetadata(fn func(meta *core.ChunkMetadata)) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(r.collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			fn(&chunk.Metadata)
		}
		return nil
	}, false)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// cosineSimilarity calculates the cosine similarity of two vectors.
// Returns 0 when either vector has zero magnitude.
func cosineSimilarity(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
