// Package ingestion provides pipeline orchestration for indexing transcript
// pages.
//
// The Pipeline pulls unindexed pages from a Source, chunks and embeds their
// content, writes the chunks into the index, and marks each page indexed in
// the source. Pages are processed independently: one page failing never
// aborts the batch, and the outcome of every page is folded into a Report.
//
// Chunk IDs derive deterministically from the page ID and chunk ordinal, so
// re-ingesting a page overwrites its previous chunks instead of duplicating
// them. Combined with the indexed flag in the source this makes repeated
// runs idempotent.
package ingestion
