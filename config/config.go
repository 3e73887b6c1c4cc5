package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config collects the runtime settings for the assistant. Values come from
// the environment, with a .env file loaded first when present.
type Config struct {
	// IndexPath is the directory holding the badger index.
	IndexPath string

	// Collection is the chunk collection name inside the index.
	Collection string

	// AIHost is the base URL for the OpenAI-compatible API.
	AIHost string

	// AIToken is the API key.
	AIToken string

	// EmbeddingModel is the embedding model identifier.
	EmbeddingModel string

	// GenerationModel is the chat completion model identifier.
	GenerationModel string

	// ChunkTokens and OverlapTokens control the chunker.
	ChunkTokens   int
	OverlapTokens int

	// TopK is the number of neighbors retrieved per query.
	TopK int

	// HistoryWindow is the number of history messages included in thread
	// prompts.
	HistoryWindow int

	// RateWindow and RateMax configure the per-caller rate limiter.
	RateWindow time.Duration
	RateMax    int

	// NotionToken and NotionDatabaseID identify the transcript source.
	// Only required when running ingestion.
	NotionToken      string
	NotionDatabaseID string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; its absence is not an error.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using system env")
	}

	return &Config{
		IndexPath:        getEnv("INDEX_PATH", "./index_db"),
		Collection:       getEnv("COLLECTION", "agent-converto"),
		AIHost:           getEnv("AI_HOST", "https://api.openai.com/v1"),
		AIToken:          os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		GenerationModel:  getEnv("GENERATION_MODEL", "gpt-3.5-turbo"),
		ChunkTokens:      getEnvInt("CHUNK_TOKENS", 500),
		OverlapTokens:    getEnvInt("OVERLAP_TOKENS", 100),
		TopK:             getEnvInt("TOP_K", 5),
		HistoryWindow:    getEnvInt("HISTORY_WINDOW", 5),
		RateWindow:       time.Duration(getEnvInt("RATE_LIMIT_WINDOW", 60)) * time.Second,
		RateMax:          getEnvInt("RATE_LIMIT_MAX", 5),
		NotionToken:      os.Getenv("NOTION_TOKEN"),
		NotionDatabaseID: os.Getenv("DATABASE_ID"),
	}
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if c.AIToken == "" {
		return ErrAPIKeyRequired
	}
	return nil
}

// ValidateIngestion checks the additional settings ingestion needs.
func (c *Config) ValidateIngestion() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.NotionToken == "" {
		return ErrNotionTokenRequired
	}
	if c.NotionDatabaseID == "" {
		return ErrNotionDatabaseRequired
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value)
		return fallback
	}
	return parsed
}
