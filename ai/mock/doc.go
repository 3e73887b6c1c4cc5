// Package mock provides test doubles for the ai package interfaces.
//
// The mocks default to deterministic behavior (hash-derived embedding
// vectors, canned completions) and allow per-test behavior injection via
// function fields.
package mock
