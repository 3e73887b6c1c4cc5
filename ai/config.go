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

package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL for the OpenAI-compatible API.
	// Example: "https://api.openai.com/v1", "http://localhost:11434/v1"
	Host string

	// Token is the API key. Use "none" for local services that don't
	// require authentication.
	Token string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "text-embedding-3-small"
	EmbeddingModel string

	// GenerationModel is the model identifier to use for answer generation.
	// Example: "gpt-3.5-turbo", "gpt-4o-mini"
	GenerationModel string

	// BatchSize is the number of texts sent per embedding request.
	// Default: 5
	BatchSize int

	// BatchPause is the pacing interval slept between embedding batches.
	// Not applied after the last batch. Default: 1s
	BatchPause time.Duration

	// RetryAttempts is the maximum number of attempts per embedding batch.
	// Default: 3
	RetryAttempts int

	// RetryBaseDelay is the first backoff delay after a failed attempt.
	// Default: 4s
	RetryBaseDelay time.Duration

	// RetryMaxDelay caps the exponential backoff delay. Default: 10s
	RetryMaxDelay time.Duration

	// Temperature is the sampling temperature for generation. Default: 0.7
	Temperature float64

	// MaxTokens bounds the generated output length. Default: 500
	MaxTokens int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the OpenAI-compatible API host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithToken sets the API key.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithGenerationModel sets the generation model identifier.
func WithGenerationModel(model string) ConfigOption {
	return func(c *Config) {
		c.GenerationModel = model
	}
}

// WithBatchSize sets the number of texts per embedding request.
func WithBatchSize(size int) ConfigOption {
	return func(c *Config) {
		c.BatchSize = size
	}
}

// WithBatchPause sets the pacing interval between embedding batches.
func WithBatchPause(pause time.Duration) ConfigOption {
	return func(c *Config) {
		c.BatchPause = pause
	}
}

// WithRetry sets the retry policy for embedding batches.
func WithRetry(attempts int, baseDelay, maxDelay time.Duration) ConfigOption {
	return func(c *Config) {
		c.RetryAttempts = attempts
		c.RetryBaseDelay = baseDelay
		c.RetryMaxDelay = maxDelay
	}
}

// WithTemperature sets the generation sampling temperature.
func WithTemperature(temperature float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = temperature
	}
}

// WithMaxTokens bounds the generated output length.
func WithMaxTokens(maxTokens int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = maxTokens
	}
}

// DefaultConfig returns a Config with the stock settings: OpenAI embeddings
// in batches of five with a one second pause, three attempts per batch backed
// off between four and ten seconds.
func DefaultConfig() *Config {
	return &Config{
		Host:            "https://api.openai.com/v1",
		Token:           "none",
		EmbeddingModel:  "text-embedding-3-small",
		GenerationModel: "gpt-3.5-turbo",
		BatchSize:       5,
		BatchPause:      time.Second,
		RetryAttempts:   3,
		RetryBaseDelay:  4 * time.Second,
		RetryMaxDelay:   10 * time.Second,
		Temperature:     0.7,
		MaxTokens:       500,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434/v1"),
//	    WithEmbeddingModel("embeddinggemma"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to the host if missing, which is
// required by most OpenAI-compatible APIs (OpenAI, Ollama, LocalAI, vLLM).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.GenerationModel == "" {
		return errors.New("ai config: GenerationModel is required")
	}
	if c.BatchSize < 1 {
		return errors.New("ai config: BatchSize must be at least 1")
	}
	if c.BatchPause < 0 {
		return errors.New("ai config: BatchPause cannot be negative")
	}
	if c.RetryAttempts < 1 {
		return errors.New("ai config: RetryAttempts must be at least 1")
	}
	if c.RetryBaseDelay < 0 || c.RetryMaxDelay < c.RetryBaseDelay {
		return errors.New("ai config: retry delays must satisfy 0 <= base <= max")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.MaxTokens < 1 {
		return errors.New("ai config: MaxTokens must be at least 1")
	}
	return nil
}
