package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"INDEX_PATH", "COLLECTION", "AI_HOST", "EMBEDDING_MODEL", "GENERATION_MODEL",
		"CHUNK_TOKENS", "OVERLAP_TOKENS", "TOP_K", "HISTORY_WINDOW",
		"RATE_LIMIT_WINDOW", "RATE_LIMIT_MAX",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "./index_db", cfg.IndexPath)
	assert.Equal(t, "agent-converto", cfg.Collection)
	assert.Equal(t, "https://api.openai.com/v1", cfg.AIHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-3.5-turbo", cfg.GenerationModel)
	assert.Equal(t, 500, cfg.ChunkTokens)
	assert.Equal(t, 100, cfg.OverlapTokens)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 5, cfg.HistoryWindow)
	assert.Equal(t, 60*time.Second, cfg.RateWindow)
	assert.Equal(t, 5, cfg.RateMax)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("COLLECTION", "other-collection")
	t.Setenv("TOP_K", "8")
	t.Setenv("RATE_LIMIT_WINDOW", "30")

	cfg := Load()
	assert.Equal(t, "other-collection", cfg.Collection)
	assert.Equal(t, 8, cfg.TopK)
	assert.Equal(t, 30*time.Second, cfg.RateWindow)
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("TOP_K", "not-a-number")

	cfg := Load()
	assert.Equal(t, 5, cfg.TopK)
}

func TestValidate(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := Load()
	assert.ErrorIs(t, cfg.Validate(), ErrAPIKeyRequired)

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg = Load()
	require.NoError(t, cfg.Validate())

	assert.ErrorIs(t, cfg.ValidateIngestion(), ErrNotionTokenRequired)

	t.Setenv("NOTION_TOKEN", "secret")
	cfg = Load()
	assert.ErrorIs(t, cfg.ValidateIngestion(), ErrNotionDatabaseRequired)

	t.Setenv("DATABASE_ID", "db-1")
	cfg = Load()
	assert.NoError(t, cfg.ValidateIngestion())
}
