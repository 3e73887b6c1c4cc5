// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package converto

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/convertohq/converto/ai"
	"github.com/convertohq/converto/ai/openai"
	"github.com/convertohq/converto/answer"
	"github.com/convertohq/converto/chunker"
	"github.com/convertohq/converto/core"
	"github.com/convertohq/converto/ingestion"
	"github.com/convertohq/converto/ratelimit"
	"github.com/convertohq/converto/retrieval"
	"github.com/convertohq/converto/storage"
	"github.com/convertohq/converto/storage/badger"
	"github.com/convertohq/converto/thread"
)

// Assistant wires the index, AI services, retrieval, answering, thread state
// and rate limiting into the function surface a chat frontend calls.
type Assistant struct {
	backend   *badger.Backend
	repo      storage.ChunkRepository
	provider  ai.AIProvider
	assembler *retrieval.Assembler
	composer  *answer.Composer
	threads   *thread.Store
	limiter   *ratelimit.Limiter
	pipeline  *ingestion.Pipeline
	syncPool  *ants.Pool

	historyWindow int
	logger        *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig      *ai.Config
	provider      ai.AIProvider
	collection    string
	topK          int
	historyWindow int
	rateWindow    time.Duration
	rateMax       int
	source        ingestion.Source
	chunker       ingestion.Chunker
	inMemory      bool
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects an AI provider, bypassing the OpenAI client.
// Used by tests.
func WithProvider(provider ai.AIProvider) AssistantOption {
	return func(o *assistantOptions) {
		o.provider = provider
	}
}

// WithCollection sets the chunk collection name.
// Default is "agent-converto".
func WithCollection(collection string) AssistantOption {
	return func(o *assistantOptions) {
		o.collection = collection
	}
}

// WithTopK sets the number of neighbors retrieved per query.
func WithTopK(k int) AssistantOption {
	return func(o *assistantOptions) {
		o.topK = k
	}
}

// WithHistoryWindow sets how many history messages thread prompts include.
// Default is 5.
func WithHistoryWindow(n int) AssistantOption {
	return func(o *assistantOptions) {
		o.historyWindow = n
	}
}

// WithRateLimit sets the per-caller rate limit.
// Default is 5 requests per 60 seconds.
func WithRateLimit(window time.Duration, maxRequests int) AssistantOption {
	return func(o *assistantOptions) {
		o.rateWindow = window
		o.rateMax = maxRequests
	}
}

// WithSource sets the transcript source used by Sync. Without a source the
// assistant answers from the existing index only.
func WithSource(source ingestion.Source) AssistantOption {
	return func(o *assistantOptions) {
		o.source = source
	}
}

// WithChunker overrides the chunker used by ingestion.
// Default is a tiktoken-backed chunker for the configured embedding model.
func WithChunker(c ingestion.Chunker) AssistantOption {
	return func(o *assistantOptions) {
		o.chunker = c
	}
}

// WithInMemoryIndex keeps the index in memory instead of on disk.
// Used by tests.
func WithInMemoryIndex() AssistantOption {
	return func(o *assistantOptions) {
		o.inMemory = true
	}
}

// NewAssistant opens the index at filePath and wires the assistant together.
func NewAssistant(filePath string, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig:      ai.DefaultConfig(),
		collection:    "agent-converto",
		topK:          retrieval.DefaultTopK,
		historyWindow: 5,
		rateWindow:    ratelimit.DefaultWindow,
		rateMax:       ratelimit.DefaultMaxRequests,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewChunkRepository(backend, options.collection)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repo.Close()
			backend.Close()
			return nil, err
		}
	}

	assembler, err := retrieval.NewAssembler(provider.Embedder(), repo, retrieval.WithTopK(options.topK))
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	composer, err := answer.NewComposer(provider.Generator())
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	a := &Assistant{
		backend:       backend,
		repo:          repo,
		provider:      provider,
		assembler:     assembler,
		composer:      composer,
		threads:       thread.NewStore(),
		limiter:       ratelimit.NewLimiter(ratelimit.WithWindow(options.rateWindow), ratelimit.WithMaxRequests(options.rateMax)),
		historyWindow: options.historyWindow,
		logger:        slog.Default().With("component", "assistant"),
	}

	if options.source != nil {
		chk := options.chunker
		if chk == nil {
			tokenizer, err := chunker.NewTiktokenTokenizer(options.aiConfig.EmbeddingModel)
			if err != nil {
				a.Close()
				return nil, err
			}
			chk, err = chunker.New(tokenizer)
			if err != nil {
				a.Close()
				return nil, err
			}
		}

		pipeline, err := ingestion.NewPipeline(options.source, chk, provider.Embedder(), repo)
		if err != nil {
			a.Close()
			return nil, err
		}

		syncPool, err := ants.NewPool(1)
		if err != nil {
			a.Close()
			return nil, err
		}

		a.pipeline = pipeline
		a.syncPool = syncPool
	}

	return a, nil
}

// Ask answers a one-shot question from the knowledge base.
// Returns ErrRateLimited when the caller is over their request budget, and
// the no-results notice when the index has nothing relevant.
func (a *Assistant) Ask(ctx context.Context, callerID, query string) (string, error) {
	if !a.limiter.Allow(callerID) {
		return "", ErrRateLimited
	}

	assembled, err := a.assembler.Assemble(ctx, query)
	if err != nil {
		return "", err
	}

	if assembled.Empty() {
		return retrieval.NoResultsNotice, nil
	}

	return a.composer.Answer(ctx, query, assembled.Render()), nil
}

// StartLessonThread summarizes a lesson and opens a thread pinned to it.
// The summary is returned and recorded as the thread's first assistant turn.
func (a *Assistant) StartLessonThread(ctx context.Context, threadID, course, title string) (string, error) {
	chunks, err := a.repo.GetLessonChunks(ctx, course, title)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "", fmt.Errorf("%w: %s (%s)", ErrLessonNotFound, title, course)
	}

	// Reassemble the lesson in document order.
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Metadata.ChunkIndex < chunks[j].Metadata.ChunkIndex
	})
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	content := strings.Join(texts, "\n")

	summary := a.composer.SummarizeLesson(ctx, content)

	a.threads.Create(threadID, core.Lesson{Course: course, Title: title}, content)
	a.threads.Append(threadID, thread.Message{Role: thread.RoleAssistant, Text: summary})

	a.logger.Info("lesson thread started", "thread_id", threadID, "course", course, "title", title)
	return summary, nil
}

// Reply answers a follow-up question inside a lesson thread. The prompt
// context layers, in order: recent conversation history, the full pinned
// lesson text, and cross-corpus retrieval for the lesson-scoped query — the
// latter only when it found something. Both the question and the answer are
// appended to the thread history.
func (a *Assistant) Reply(ctx context.Context, threadID, callerID, query string) (string, error) {
	pinned, ok := a.threads.PinnedLesson(threadID)
	if !ok {
		return "", ErrThreadNotFound
	}

	if !a.limiter.Allow(callerID) {
		return "", ErrRateLimited
	}

	rephrased := fmt.Sprintf("Regarding %s from %s: %s", pinned.Title, pinned.Course, query)

	a.threads.Append(threadID, thread.Message{Role: thread.RoleUser, Text: query})
	conversation := thread.RenderHistory(a.threads.History(threadID, a.historyWindow))

	assembled, err := a.assembler.Assemble(ctx, rephrased)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(conversation)
	sb.WriteString("\n\n")
	if full := a.threads.FullContent(threadID); full != "" {
		sb.WriteString("Full lesson content:\n")
		sb.WriteString(full)
		sb.WriteString("\n\n")
	}
	if !assembled.Empty() {
		sb.WriteString("Related content from other lessons:\n")
		sb.WriteString(assembled.Render())
	}

	response := a.composer.Answer(ctx, rephrased, sb.String())
	a.threads.Append(threadID, thread.Message{Role: thread.RoleAssistant, Text: response})

	return response, nil
}

// ThreadActive reports whether a thread is open.
func (a *Assistant) ThreadActive(threadID string) bool {
	return a.threads.Active(threadID)
}

// ArchiveThread drops all state for a thread. Terminal; the ID may be
// reused by a later StartLessonThread.
func (a *Assistant) ArchiveThread(threadID string) {
	a.threads.Archive(threadID)
	a.logger.Info("thread archived", "thread_id", threadID)
}

// Courses lists the distinct course names in the index.
func (a *Assistant) Courses(ctx context.Context) ([]string, error) {
	return a.repo.Courses(ctx)
}

// Lessons lists the distinct lesson titles for a course.
func (a *Assistant) Lessons(ctx context.Context, course string) ([]string, error) {
	return a.repo.Lessons(ctx, course)
}

// Repository exposes the chunk repository for inspection commands.
func (a *Assistant) Repository() storage.ChunkRepository {
	return a.repo
}

// Sync runs the ingestion pipeline against the configured source.
func (a *Assistant) Sync(ctx context.Context) (*ingestion.Report, error) {
	if a.pipeline == nil {
		return nil, ErrNoSource
	}
	return a.pipeline.Run(ctx)
}

// SyncAsync runs Sync on a background worker. The outcome is logged.
func (a *Assistant) SyncAsync(ctx context.Context) error {
	if a.pipeline == nil {
		return ErrNoSource
	}
	return a.syncPool.Submit(func() {
		report, err := a.pipeline.Run(ctx)
		if err != nil {
			a.logger.Error("background sync failed", "err", err)
			return
		}
		a.logger.Info("background sync finished", "report", report.String())
	})
}

// Close releases the AI provider, the index and the worker pool.
func (a *Assistant) Close() error {
	if a.syncPool != nil {
		a.syncPool.Release()
	}

	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.repo.Close(); err != nil {
		a.logger.Error("error closing chunk repository", "err", err)
		return err
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
