package retrieval

import (
	"context"
	"log/slog"

	"github.com/convertohq/converto/ai"
	"github.com/convertohq/converto/storage"
)

// DefaultTopK is the default number of neighbors retrieved per query.
const DefaultTopK = 5

// Assembler turns a query into a prompt-ready context: embed the query,
// search the index, and collect the best matches.
type Assembler struct {
	embedder   ai.Embedder
	repository storage.ChunkRepository
	topK       int
	logger     *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler) error

// WithTopK sets the number of neighbors retrieved per query.
// Default is DefaultTopK.
func WithTopK(k int) Option {
	return func(a *Assembler) error {
		if k < 1 {
			return ErrInvalidTopK
		}
		a.topK = k
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAssembler creates a context assembler.
func NewAssembler(embedder ai.Embedder, repository storage.ChunkRepository, opts ...Option) (*Assembler, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	a := &Assembler{
		embedder:   embedder,
		repository: repository,
		topK:       DefaultTopK,
		logger:     slog.Default().With("component", "retrieval"),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Assemble embeds the query and retrieves the top-K most similar chunks.
// An empty index or a query matching nothing yields an empty Context, not
// an error; embedding failures propagate.
func (a *Assembler) Assemble(ctx context.Context, query string) (*Context, error) {
	vector, err := a.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	results, err := a.repository.QuerySimilar(ctx, vector, a.topK)
	if err != nil {
		return nil, err
	}

	assembled := &Context{Sources: make([]Source, 0, len(results))}
	for _, result := range results {
		assembled.Sources = append(assembled.Sources, Source{
			Course: result.Chunk.Metadata.Course,
			Title:  result.Chunk.Metadata.Title,
			Text:   result.Chunk.Text,
			Score:  result.Score,
		})
	}

	a.logger.Debug("assembled context", "query_length", len(query), "sources", len(assembled.Sources))
	return assembled, nil
}
