// Package ai provides interfaces and configuration for AI services used in
// knowledge retrieval: text embedding and chat completion.
//
// The package defines the core abstractions (Embedder, Generator, AIProvider)
// plus the batching, pacing and retry policy applied to embedding traffic.
// Concrete implementations live in subpackages:
//
//   - ai/openai: OpenAI-compatible API client (works with OpenAI, Ollama,
//     LocalAI, and other compatible services)
//   - ai/mock: mock implementations for testing
//
// # Configuration
//
// Use NewConfig with functional options:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("https://api.openai.com/v1"),
//	    ai.WithToken(apiKey),
//	    ai.WithEmbeddingModel("text-embedding-3-small"),
//	    ai.WithGenerationModel("gpt-3.5-turbo"),
//	)
//
// # Batching
//
// NewBatchEmbedder decorates any Embedder with the upstream-friendly policy:
// fixed-size batches, a pause between batches, and exponential retry per
// batch. A failed batch fails the whole call; partial results are never
// returned.
package ai
