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


// Package storage provides the storage abstraction layer for the chunk index.
//
// This package defines the ChunkRepository interface that decouples storage
// implementation from business logic, plus the serialization helpers used by
// backends. The only backend today lives in the badger subpackage.
//
// # Constructor Return Type Pattern
//
// Public backend constructors return the storage.ChunkRepository interface
// to enforce abstraction and enable alternative backends:
//
//	repo, err := badger.NewChunkRepository(backend, "my-collection")
//
// Internal package constructors may return concrete types since they're only
// used within the implementation package.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific timeout
// requirements.
package storage
