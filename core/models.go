package core

import "fmt"

// SourcePage is a transcript page as it exists in the external document store.
// Pages are read-only to this system except for the Indexed flag, which the
// ingestion pipeline flips after the page's chunks have been stored.
type SourcePage struct {
	PageID  string
	Title   string
	Course  string
	Content string
	Indexed bool
}

// ChunkMetadata carries the provenance of a chunk. It is stored alongside the
// chunk text and used for filtered retrieval and lesson listings.
type ChunkMetadata struct {
	PageID     string `json:"page_id"`
	Title      string `json:"title"`
	Course     string `json:"course"`
	ChunkIndex int    `json:"chunk_index"`
}

// Chunk is the unit stored in and retrieved from the vector index.
type Chunk struct {
	ID       string        `json:"id"`
	Vector   []float32     `json:"vector"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// ChunkID builds the deterministic identifier for a chunk from its page and
// ordinal position within that page. Re-ingesting a page produces identical
// IDs, which is what makes upserts idempotent.
func ChunkID(pageID string, ordinal int) string {
	return fmt.Sprintf("%s_%d", pageID, ordinal)
}

// Lesson identifies a lesson by its course and title pair.
type Lesson struct {
	Course string
	Title  string
}

func (l Lesson) String() string {
	return l.Title + " (" + l.Course + ")"
}

// SearchResult is a chunk matched by vector similarity search.
type SearchResult struct {
	Chunk *Chunk
	Score float32
}
