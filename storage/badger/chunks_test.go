package badger

import (
	"context"
	"testing"

	"github.com/convertohq/converto/core"
	"github.com/convertohq/converto/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.ChunkRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository("test-collection")
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func testChunk(pageID string, ordinal int, vector []float32) *core.Chunk {
	return &core.Chunk{
		ID:     core.ChunkID(pageID, ordinal),
		Vector: vector,
		Text:   "chunk text " + core.ChunkID(pageID, ordinal),
		Metadata: core.ChunkMetadata{
			PageID:     pageID,
			Title:      "Lesson " + pageID,
			Course:     "Course A",
			ChunkIndex: ordinal,
		},
	}
}

func TestUpsertAndCount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	err := repo.UpsertChunks(ctx,
		testChunk("p1", 0, []float32{1, 0}),
		testChunk("p1", 1, []float32{0, 1}),
	)
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPeekReturnsAtMostN(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.UpsertChunks(ctx, testChunk("p1", i, []float32{1, 0})))
	}

	chunks, err := repo.Peek(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, chunks, 3)

	chunks, err = repo.Peek(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, chunks, 5)

	_, err = repo.Peek(ctx, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestUpsertReplacesExistingChunk(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	original := testChunk("p1", 0, []float32{1, 0})
	require.NoError(t, repo.UpsertChunks(ctx, original))

	updated := testChunk("p1", 0, []float32{0, 1})
	updated.Text = "revised text"
	require.NoError(t, repo.UpsertChunks(ctx, updated))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "same ID should overwrite, not duplicate")

	chunks, err := repo.GetLessonChunks(ctx, "Course A", "Lesson p1")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "revised text", chunks[0].Text)
}

func TestUpsertRejectsInvalidChunk(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.UpsertChunks(context.Background(), &core.Chunk{ID: "", Text: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidChunk)
}

func TestQuerySimilarOrdersByScore(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertChunks(ctx,
		testChunk("exact", 0, []float32{1, 0, 0}),
		testChunk("close", 0, []float32{0.9, 0.1, 0}),
		testChunk("far", 0, []float32{0, 0, 1}),
	))

	results, err := repo.QuerySimilar(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "exact_0", results[0].Chunk.ID)
	assert.Equal(t, "close_0", results[1].Chunk.ID)
	assert.Equal(t, "far_0", results[2].Chunk.ID)
	assert.Greater(t, results[0].Score, results[1].Score)
	assert.Greater(t, results[1].Score, results[2].Score)
}

func TestQuerySimilarLimitsToK(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		require.NoError(t, repo.UpsertChunks(ctx, testChunk("p1", i, []float32{1, float32(i)})))
	}

	results, err := repo.QuerySimilar(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestQuerySimilarEmptyIndex(t *testing.T) {
	repo := newTestRepo(t)

	results, err := repo.QuerySimilar(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err, "empty index is not an error")
	assert.Empty(t, results)
}

func TestQuerySimilarInvalidK(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.QuerySimilar(context.Background(), []float32{1}, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestGetLessonChunksExactMatch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	lessonChunk := testChunk("p1", 0, []float32{1})
	otherTitle := testChunk("p2", 0, []float32{1})
	otherCourse := testChunk("p3", 0, []float32{1})
	otherCourse.Metadata.Course = "Course B"
	otherCourse.Metadata.Title = "Lesson p1"

	require.NoError(t, repo.UpsertChunks(ctx, lessonChunk, otherTitle, otherCourse))

	chunks, err := repo.GetLessonChunks(ctx, "Course A", "Lesson p1")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "p1_0", chunks[0].ID)
}

func TestCoursesAndLessonsListings(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a1 := testChunk("p1", 0, []float32{1})
	a2 := testChunk("p1", 1, []float32{1})
	b1 := testChunk("p2", 0, []float32{1})
	b1.Metadata.Course = "Course B"
	b1.Metadata.Title = "Intro"

	require.NoError(t, repo.UpsertChunks(ctx, a1, a2, b1))

	courses, err := repo.Courses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Course A", "Course B"}, courses)

	lessons, err := repo.Lessons(ctx, "Course A")
	require.NoError(t, err)
	assert.Equal(t, []string{"Lesson p1"}, lessons, "duplicates collapse")

	lessons, err = repo.Lessons(ctx, "Course B")
	require.NoError(t, err)
	assert.Equal(t, []string{"Intro"}, lessons)
}

func TestCollectionsAreIsolated(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	repoA, err := NewChunkRepository(backend, "collection-a")
	require.NoError(t, err)
	repoB, err := NewChunkRepository(backend, "collection-b")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, repoA.UpsertChunks(ctx, testChunk("p1", 0, []float32{1})))

	countA, err := repoA.Count(ctx)
	require.NoError(t, err)
	countB, err := repoB.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, countA)
	assert.Zero(t, countB)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	repo, err := NewChunkRepository(backend, "persist")
	require.NoError(t, err)
	require.NoError(t, repo.UpsertChunks(ctx, testChunk("p1", 0, []float32{1, 0})))
	require.NoError(t, backend.Close())

	backend, err = OpenBackend(dir, false)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	repo, err = NewChunkRepository(backend, "persist")
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
