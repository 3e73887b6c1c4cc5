// Package badger implements the storage interfaces on BadgerDB.
//
// Chunks are stored as JSON values under collection-scoped keys
// (chk:<collection>:<chunk-id>). Similarity search is a brute-force cosine
// scan over the collection, which is adequate for the corpus sizes this
// index serves.
package badger
