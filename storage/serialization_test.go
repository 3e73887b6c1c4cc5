package storage

import (
	"testing"

	"github.com/convertohq/converto/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkRoundTrip(t *testing.T) {
	chunk := &core.Chunk{
		ID:     core.ChunkID("page-123", 4),
		Vector: []float32{0.1, -0.5, 0.25},
		Text:   "Landing pages convert best above the fold.",
		Metadata: core.ChunkMetadata{
			PageID:     "page-123",
			Title:      "Landing Page Anatomy",
			Course:     "CRO Fundamentals",
			ChunkIndex: 4,
		},
	}

	data, err := MarshalChunk(chunk)
	require.NoError(t, err)

	got, err := UnmarshalChunk(data)
	require.NoError(t, err)
	assert.Equal(t, chunk, got)
}

func TestUnmarshalChunkCorruptData(t *testing.T) {
	_, err := UnmarshalChunk([]byte("{not json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
