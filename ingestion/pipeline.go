package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/convertohq/converto/ai"
	"github.com/convertohq/converto/core"
	"github.com/convertohq/converto/storage"
)

// Chunker splits transcript text into bounded segments.
type Chunker interface {
	Chunk(text string) ([]string, error)
}

// Pipeline orchestrates the ingestion of transcript pages: chunk, embed,
// upsert into the index, then mark the page indexed in the source.
type Pipeline struct {
	source     Source
	chunker    Chunker
	embedder   ai.Embedder
	repository storage.ChunkRepository
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	source Source,
	chunker Chunker,
	embedder ai.Embedder,
	repository storage.ChunkRepository,
	opts ...Option,
) (*Pipeline, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if chunker == nil {
		return nil, ErrChunkerRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	p := &Pipeline{
		source:     source,
		chunker:    chunker,
		embedder:   embedder,
		repository: repository,
		logger:     slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Run lists the unindexed pages from the source and ingests them.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	pages, err := p.source.ListUnindexedPages(ctx)
	if err != nil {
		return nil, err
	}

	p.logger.Info("starting ingestion run", "pages", len(pages))
	return p.Ingest(ctx, pages), nil
}

// Ingest processes each page independently and folds the outcomes into a
// Report. A failing page never aborts the batch; later pages still run.
// Pages already marked indexed are skipped, which makes repeated runs over
// the same input idempotent.
func (p *Pipeline) Ingest(ctx context.Context, pages []*core.SourcePage) *Report {
	report := &Report{}

	for _, page := range pages {
		if page.Indexed {
			report.Skipped++
			continue
		}

		if err := p.ingestPage(ctx, page); err != nil {
			p.logger.Error("page ingestion failed",
				"page_id", page.PageID, "title", page.Title, "err", err)
			report.Failed = append(report.Failed, PageFailure{
				PageID: page.PageID,
				Title:  page.Title,
				Err:    err,
			})
			continue
		}

		// Chunks are in the index at this point. A failed mark leaves the
		// page listed as unindexed in the source; the next run re-chunks
		// it and the upsert overwrites the same IDs.
		if err := p.source.MarkIndexed(ctx, page.PageID); err != nil {
			p.logger.Error("failed to mark page indexed",
				"page_id", page.PageID, "title", page.Title, "err", err)
			report.MarkFailed = append(report.MarkFailed, PageFailure{
				PageID: page.PageID,
				Title:  page.Title,
				Err:    err,
			})
			continue
		}

		report.Succeeded++
		p.logger.Info("page indexed", "page_id", page.PageID, "title", page.Title)
	}

	p.logger.Info("ingestion run complete", "report", report.String())
	return report
}

// ingestPage chunks, embeds and stores one page. All chunks of the page land
// in a single transaction.
func (p *Pipeline) ingestPage(ctx context.Context, page *core.SourcePage) error {
	if err := core.ValidateSourcePage(page); err != nil {
		return err
	}

	texts, err := p.chunker.Chunk(page.Content)
	if err != nil {
		return fmt.Errorf("chunking: %w", err)
	}
	if len(texts) == 0 {
		return fmt.Errorf("chunking: %w", core.ErrEmptyContent)
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding: %w", err)
	}

	chunks := make([]*core.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = &core.Chunk{
			ID:     core.ChunkID(page.PageID, i),
			Vector: vectors[i],
			Text:   text,
			Metadata: core.ChunkMetadata{
				PageID:     page.PageID,
				Title:      page.Title,
				Course:     page.Course,
				ChunkIndex: i,
			},
		}
	}

	if err := p.repository.UpsertChunks(ctx, chunks...); err != nil {
		return fmt.Errorf("storing chunks: %w", err)
	}

	p.logger.Debug("page chunks stored", "page_id", page.PageID, "chunks", len(chunks))
	return nil
}
