// Package openai implements the ai package interfaces using OpenAI-compatible
// APIs via langchaingo.
//
// Despite the name, this package works with any OpenAI-compatible service:
// OpenAI itself, Ollama, LocalAI, vLLM and others. Point the config Host at
// the service's /v1 endpoint.
package openai
