package driver

import (
	"crypto/sha256"

	"simpleparser/internal/source"
)

// Digest is a SHA-256 value; source.File.Hash has the same shape.
type Digest [32]byte

// combineDigest: H(content || dep1 || dep2 ...). deps уже в детерминированном порядке.
func combineDigest(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// astFormatDigest changes whenever the cached tree layout changes, so bumping
// parseCacheSchemaVersion also moves every key.
func astFormatDigest() Digest {
	return sha256.Sum256([]byte{'a', 's', 't', byte(parseCacheSchemaVersion >> 8), byte(parseCacheSchemaVersion)})
}

// CacheKey is the parse cache key for file: its content hash combined with
// the cache schema.
func CacheKey(file *source.File) Digest {
	return combineDigest(Digest(file.Hash), astFormatDigest())
}

// IsSHA256 performs a basic sanity check that the digest is non-zero.
func IsSHA256(d Digest) bool {
	return d != Digest{}
}
