package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Host)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-3.5-turbo", cfg.GenerationModel)
	assert.Equal(t, 5, cfg.BatchSize)
	assert.Equal(t, time.Second, cfg.BatchPause)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 4*time.Second, cfg.RetryBaseDelay)
	assert.Equal(t, 10*time.Second, cfg.RetryMaxDelay)
	assert.InDelta(t, 0.7, cfg.Temperature, 0.001)
	assert.Equal(t, 500, cfg.MaxTokens)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		// Should have default values
		assert.Equal(t, "https://api.openai.com/v1", cfg.Host)
		assert.Equal(t, 5, cfg.BatchSize)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.Host)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingModel("embeddinggemma"),
			WithGenerationModel("gpt-4o-mini"),
		)

		assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-4o-mini", cfg.GenerationModel)
	})

	t.Run("with custom batching", func(t *testing.T) {
		cfg := NewConfig(
			WithBatchSize(10),
			WithBatchPause(250*time.Millisecond),
		)

		assert.Equal(t, 10, cfg.BatchSize)
		assert.Equal(t, 250*time.Millisecond, cfg.BatchPause)
	})

	t.Run("with custom retry policy", func(t *testing.T) {
		cfg := NewConfig(WithRetry(5, time.Second, 30*time.Second))

		assert.Equal(t, 5, cfg.RetryAttempts)
		assert.Equal(t, time.Second, cfg.RetryBaseDelay)
		assert.Equal(t, 30*time.Second, cfg.RetryMaxDelay)
	})

	t.Run("with custom sampling", func(t *testing.T) {
		cfg := NewConfig(WithTemperature(0.2), WithMaxTokens(1024))

		assert.InDelta(t, 0.2, cfg.Temperature, 0.001)
		assert.Equal(t, 1024, cfg.MaxTokens)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{
			name: "already normalized",
			host: "http://localhost:11434/v1",
			want: "http://localhost:11434/v1",
		},
		{
			name: "missing suffix",
			host: "http://localhost:11434",
			want: "http://localhost:11434/v1",
		},
		{
			name: "trailing slash",
			host: "http://localhost:11434/",
			want: "http://localhost:11434/v1",
		},
		{
			name: "empty host left alone",
			host: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.Host)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid default", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty host", func(c *Config) { c.Host = "" }},
		{"empty embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"empty generation model", func(c *Config) { c.GenerationModel = "" }},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }},
		{"negative pause", func(c *Config) { c.BatchPause = -time.Second }},
		{"zero retry attempts", func(c *Config) { c.RetryAttempts = 0 }},
		{"max delay below base", func(c *Config) { c.RetryMaxDelay = c.RetryBaseDelay - time.Second }},
		{"temperature out of range", func(c *Config) { c.Temperature = 3.0 }},
		{"zero max tokens", func(c *Config) { c.MaxTokens = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
