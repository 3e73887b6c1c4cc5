package badger

import "fmt"

// Key prefix for chunk records. Keys are collection-scoped so multiple
// collections can share one database.
const chunkRecordPrefix = "chk"

// makeChunkKey generates a key for a chunk by collection and ID.
func makeChunkKey(collection, chunkID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", chunkRecordPrefix, collection, chunkID))
}

// makeCollectionPrefix generates the iteration prefix for a collection.
func makeCollectionPrefix(collection string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", chunkRecordPrefix, collection))
}
