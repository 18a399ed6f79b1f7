package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a cache key of the form "<kind>:<digest>", where the digest
// covers the JSON encoding of parts. Run keys hash the whole run spec, so
// any parameter or point change misses the cache.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}

// Hash returns the hex SHA-256 digest of data. Rendered ancestry artifacts
// are keyed by the Hash of their DOT source.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
