package badger

import "fmt"

// Key prefixes for different data types
const (
	vectorRecordPrefix = "embrec"
	embeddingMetaKey   = "embmeta"
)

// makeVectorKey generates a key for an embedding record by catalog entry id.
func makeVectorKey(entryID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", vectorRecordPrefix, entryID))
}

// makeVectorPrefix generates the common prefix of all embedding record keys,
// used for iteration.
func makeVectorPrefix() []byte {
	return []byte(vectorRecordPrefix + ":")
}

// makeMetaKey generates the key for the cache build metadata.
func makeMetaKey() []byte {
	return []byte(embeddingMetaKey)
}
