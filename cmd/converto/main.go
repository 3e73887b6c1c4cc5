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

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/convertohq/converto"
	"github.com/convertohq/converto/ai"
	"github.com/convertohq/converto/chunker"
	"github.com/convertohq/converto/config"
	"github.com/convertohq/converto/notion"
	"github.com/convertohq/converto/storage"
	"github.com/convertohq/converto/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "converto",
		Usage: "Course-transcript knowledge assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the index directory (overrides INDEX_PATH)",
			},
			&cli.StringFlag{
				Name:  "collection",
				Usage: "Chunk collection name (overrides COLLECTION)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Ask a one-shot question against the knowledge base",
				ArgsUsage: "<question>",
				Action:    askCommand,
			},
			{
				Name:   "sync",
				Usage:  "Index unprocessed transcript pages from Notion",
				Action: syncCommand,
			},
			{
				Name:   "check-db",
				Usage:  "Show index statistics and a sample of stored chunks",
				Action: checkDBCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "peek",
						Usage: "Number of sample chunks to print",
						Value: 3,
					},
				},
			},
			{
				Name:   "courses",
				Usage:  "List courses present in the index",
				Action: coursesCommand,
			},
			{
				Name:   "lessons",
				Usage:  "List lessons of a course",
				Action: lessonsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "course",
						Usage:    "Course name",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig merges flag overrides into the environment-backed config.
func loadConfig(c *cli.Context) *config.Config {
	cfg := config.Load()
	if db := c.String("db"); db != "" {
		cfg.IndexPath = db
	}
	if collection := c.String("collection"); collection != "" {
		cfg.Collection = collection
	}
	return cfg
}

// newAssistant wires an Assistant from the config, optionally with a Notion
// source for ingestion commands.
func newAssistant(cfg *config.Config, withSource bool) (*converto.Assistant, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(cfg.AIHost),
		ai.WithToken(cfg.AIToken),
		ai.WithEmbeddingModel(cfg.EmbeddingModel),
		ai.WithGenerationModel(cfg.GenerationModel),
	)

	opts := []converto.AssistantOption{
		converto.WithAIConfig(aiConfig),
		converto.WithCollection(cfg.Collection),
		converto.WithTopK(cfg.TopK),
		converto.WithHistoryWindow(cfg.HistoryWindow),
		converto.WithRateLimit(cfg.RateWindow, cfg.RateMax),
	}

	if withSource {
		source, err := notion.NewClient(cfg.NotionToken, cfg.NotionDatabaseID)
		if err != nil {
			return nil, err
		}

		tokenizer, err := chunker.NewTiktokenTokenizer(cfg.EmbeddingModel)
		if err != nil {
			return nil, err
		}
		chk, err := chunker.New(tokenizer,
			chunker.WithTargetTokens(cfg.ChunkTokens),
			chunker.WithOverlapTokens(cfg.OverlapTokens),
		)
		if err != nil {
			return nil, err
		}

		opts = append(opts, converto.WithSource(source), converto.WithChunker(chk))
	}

	return converto.NewAssistant(cfg.IndexPath, opts...)
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("please provide a question")
	}

	cfg := loadConfig(c)
	if err := cfg.Validate(); err != nil {
		return err
	}

	assistant, err := newAssistant(cfg, false)
	if err != nil {
		return fmt.Errorf("failed to create assistant: %w", err)
	}
	defer assistant.Close()

	answer, err := assistant.Ask(context.Background(), "cli", question)
	if errors.Is(err, converto.ErrRateLimited) {
		fmt.Printf("Rate limit exceeded. Please wait %s between requests.\n", cfg.RateWindow)
		return nil
	}
	if err != nil {
		return err
	}

	for _, piece := range converto.SplitMessage(answer, converto.DefaultMaxMessageLength) {
		fmt.Println(piece)
	}
	return nil
}

func syncCommand(c *cli.Context) error {
	cfg := loadConfig(c)
	if err := cfg.ValidateIngestion(); err != nil {
		return err
	}

	assistant, err := newAssistant(cfg, true)
	if err != nil {
		return fmt.Errorf("failed to create assistant: %w", err)
	}
	defer assistant.Close()

	report, err := assistant.Sync(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Sync complete: %s\n", report)
	for _, failure := range report.Failed {
		fmt.Printf("  failed: %s (%s): %v\n", failure.Title, failure.PageID, failure.Err)
	}
	for _, failure := range report.MarkFailed {
		fmt.Printf("  indexed but not marked: %s (%s): %v\n", failure.Title, failure.PageID, failure.Err)
	}
	return nil
}

func checkDBCommand(c *cli.Context) error {
	cfg := loadConfig(c)
	ctx := context.Background()

	repo, backend, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer backend.Close()
	defer repo.Close()

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	courses, err := repo.Courses(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Collection %q: %d chunks\n", cfg.Collection, count)
	for _, course := range courses {
		lessons, err := repo.Lessons(ctx, course)
		if err != nil {
			return err
		}
		fmt.Printf("  %s: %d lessons\n", course, len(lessons))
	}

	if n := c.Int("peek"); n > 0 && count > 0 {
		chunks, err := repo.Peek(ctx, n)
		if err != nil {
			return err
		}
		fmt.Println("Sample chunks:")
		for _, chunk := range chunks {
			fmt.Printf("  %s [%s / %s #%d] %s\n",
				chunk.ID, chunk.Metadata.Course, chunk.Metadata.Title,
				chunk.Metadata.ChunkIndex, snippet(chunk.Text, 80))
		}
	}
	return nil
}

// snippet truncates text to at most n runes for display.
func snippet(text string, n int) string {
	runes := []rune(strings.ReplaceAll(text, "\n", " "))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "..."
}

func coursesCommand(c *cli.Context) error {
	cfg := loadConfig(c)

	repo, backend, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer backend.Close()
	defer repo.Close()

	courses, err := repo.Courses(context.Background())
	if err != nil {
		return err
	}
	for _, course := range courses {
		fmt.Println(course)
	}
	return nil
}

func lessonsCommand(c *cli.Context) error {
	cfg := loadConfig(c)

	repo, backend, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer backend.Close()
	defer repo.Close()

	lessons, err := repo.Lessons(context.Background(), c.String("course"))
	if err != nil {
		return err
	}
	for _, lesson := range lessons {
		fmt.Println(lesson)
	}
	return nil
}

// openRepository opens the index directly, without AI services. Used by the
// inspection commands.
func openRepository(cfg *config.Config) (storage.ChunkRepository, *badger.Backend, error) {
	backend, err := badger.OpenBackend(cfg.IndexPath, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo, err := badger.NewChunkRepository(backend, cfg.Collection)
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("failed to create repository: %w", err)
	}

	return repo, backend, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
