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

package core

import "fmt"

// ValidateSourcePage validates a SourcePage according to domain rules.
//
// Validation rules:
//   - PageID must not be empty
//   - Content must not be empty
//
// NOT validated:
//   - Title and Course (the document store may leave them blank; chunks
//     inherit whatever is there)
//   - Indexed (any value is a valid lifecycle state)
func ValidateSourcePage(page *SourcePage) error {
	if page == nil {
		return fmt.Errorf("%w: page is nil", ErrInvalidSourcePage)
	}

	if page.PageID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSourcePage, ErrEmptyPageID)
	}

	if page.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSourcePage, ErrEmptyContent)
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Text must not be empty
//   - Metadata.ChunkIndex must not be negative
//
// NOT validated (populated by the embedding step):
//   - Vector (can be empty until embedded)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkID)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	if chunk.Metadata.ChunkIndex < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrNegativeChunkIndex)
	}

	return nil
}
