package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// BatchEmbedder wraps an Embedder with batching, inter-batch pacing and
// retry-with-backoff. It exists to respect upstream throughput limits: texts
// are grouped into fixed-size batches, a pacing interval is slept between
// batches (never after the last), and each batch is retried before the whole
// call is abandoned.
//
// A batch failure aborts the whole call. Partial results are never returned,
// preserving the length and order invariants of Embedder.
type BatchEmbedder struct {
	inner       Embedder
	batchSize   int
	pause       time.Duration
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	logger      *slog.Logger
}

var _ Embedder = (*BatchEmbedder)(nil)

// NewBatchEmbedder decorates inner with the batching and retry policy from
// config. The config is validated before use.
func NewBatchEmbedder(inner Embedder, config *Config) (*BatchEmbedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &BatchEmbedder{
		inner:       inner,
		batchSize:   config.BatchSize,
		pause:       config.BatchPause,
		maxAttempts: config.RetryAttempts,
		baseDelay:   config.RetryBaseDelay,
		maxDelay:    config.RetryMaxDelay,
		logger:      slog.Default().With("component", "batch-embedder"),
	}, nil
}

// EmbedText generates a vector embedding for a single text string.
func (b *BatchEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := b.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts generates embeddings for all texts, batch by batch.
// output[i] is the embedding of texts[i].
func (b *BatchEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += b.batchSize {
		end := start + b.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[start:end]

		b.logger.Debug("requesting embeddings", "batch", start/b.batchSize+1, "texts", len(batch))

		var batchVectors [][]float32
		err := RetryWithBackoff(ctx, func() error {
			out, err := b.inner.EmbedTexts(ctx, batch)
			if err != nil {
				return err
			}
			if len(out) != len(batch) {
				return fmt.Errorf("embedding result mismatch: expected %d, received %d", len(batch), len(out))
			}
			batchVectors = out
			return nil
		}, b.maxAttempts, b.baseDelay, b.maxDelay)
		if err != nil {
			b.logger.Error("embedding batch failed after retries", "batch", start/b.batchSize+1, "err", err)
			return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
		}

		vectors = append(vectors, batchVectors...)

		// Pace between batches, but not after the last one.
		if end < len(texts) && b.pause > 0 {
			timer := time.NewTimer(b.pause)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return vectors, nil
}
