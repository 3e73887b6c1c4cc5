package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/convertohq/converto/ai/mock"
	"github.com/convertohq/converto/core"
	"github.com/convertohq/converto/storage"
	badgerstore "github.com/convertohq/converto/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.ChunkRepository {
	t.Helper()
	repo, backend, err := badgerstore.NewMemoryRepository("test")
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func storedChunk(t *testing.T, repo storage.ChunkRepository, id string, vector []float32, course, title, text string) {
	t.Helper()
	err := repo.UpsertChunks(context.Background(), &core.Chunk{
		ID:     id,
		Vector: vector,
		Text:   text,
		Metadata: core.ChunkMetadata{
			PageID: id,
			Title:  title,
			Course: course,
		},
	})
	require.NoError(t, err)
}

func TestNewAssemblerValidation(t *testing.T) {
	repo := newTestRepo(t)

	_, err := NewAssembler(nil, repo)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewAssembler(mock.NewMockEmbedder(), nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewAssembler(mock.NewMockEmbedder(), repo, WithTopK(0))
	assert.ErrorIs(t, err, ErrInvalidTopK)
}

func TestAssembleOrdersBySimilarity(t *testing.T) {
	repo := newTestRepo(t)
	storedChunk(t, repo, "near", []float32{1, 0}, "CRO", "Near Lesson", "near text")
	storedChunk(t, repo, "mid", []float32{0.7, 0.7}, "CRO", "Mid Lesson", "mid text")
	storedChunk(t, repo, "far", []float32{0, 1}, "CRO", "Far Lesson", "far text")

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	assembler, err := NewAssembler(embedder, repo)
	require.NoError(t, err)

	assembled, err := assembler.Assemble(context.Background(), "query")
	require.NoError(t, err)
	require.Len(t, assembled.Sources, 3)
	assert.False(t, assembled.Empty())

	assert.Equal(t, "Near Lesson", assembled.Sources[0].Title)
	assert.Equal(t, "Mid Lesson", assembled.Sources[1].Title)
	assert.Equal(t, "Far Lesson", assembled.Sources[2].Title)
}

func TestAssembleRespectsTopK(t *testing.T) {
	repo := newTestRepo(t)
	for i := 0; i < 8; i++ {
		storedChunk(t, repo, core.ChunkID("p", i), []float32{1, float32(i)}, "CRO", "Lesson", "text")
	}

	assembler, err := NewAssembler(mock.NewMockEmbedder(), repo, WithTopK(3))
	require.NoError(t, err)

	assembled, err := assembler.Assemble(context.Background(), "query")
	require.NoError(t, err)
	assert.Len(t, assembled.Sources, 3)
}

func TestAssembleEmptyIndex(t *testing.T) {
	assembler, err := NewAssembler(mock.NewMockEmbedder(), newTestRepo(t))
	require.NoError(t, err)

	assembled, err := assembler.Assemble(context.Background(), "query")
	require.NoError(t, err, "an empty index is not an error")
	assert.True(t, assembled.Empty())
}

func TestAssembleEmbeddingFailurePropagates(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding backend down")
	}

	assembler, err := NewAssembler(embedder, newTestRepo(t))
	require.NoError(t, err)

	_, err = assembler.Assemble(context.Background(), "query")
	require.Error(t, err)
}

func TestRenderEmptyContextIsExactSentinel(t *testing.T) {
	empty := &Context{}
	assert.Equal(t, "No relevant information found in the knowledge base.", empty.Render())
}

func TestRenderNonEmptyContext(t *testing.T) {
	assembled := &Context{Sources: []Source{
		{Course: "CRO", Title: "Landing Pages", Text: "Above the fold wins."},
		{Course: "SEO", Title: "Internal Links", Text: "Link depth matters."},
	}}

	rendered := assembled.Render()

	assert.True(t, strings.HasPrefix(rendered, "Using the following document excerpts as context:\n---\n"))
	assert.Contains(t, rendered, "Source 1 (Course: CRO, Title: Landing Pages):\nAbove the fold wins.\n---\n")
	assert.Contains(t, rendered, "Source 2 (Course: SEO, Title: Internal Links):\nLink depth matters.\n---\n")
	assert.NotContains(t, rendered, NoResultsNotice,
		"sentinel never appears when at least one source is present")

	idx1 := strings.Index(rendered, "Source 1")
	idx2 := strings.Index(rendered, "Source 2")
	assert.Less(t, idx1, idx2, "sources render in order")
}
