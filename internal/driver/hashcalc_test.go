package driver

import (
	"testing"

	"simpleparser/internal/source"
)

func digest(b byte) Digest {
	var d Digest
	for i := range d {
		d[i] = b
	}
	return d
}

func TestCombineDigestOrderMatters(t *testing.T) {
	a, b := digest('A'), digest('B')
	if combineDigest(a, b) == combineDigest(b, a) {
		t.Fatal("combineDigest must depend on order")
	}
	if combineDigest(a) == a {
		t.Fatal("combineDigest must hash, not copy")
	}
	if !IsSHA256(combineDigest(a)) || IsSHA256(Digest{}) {
		t.Fatal("IsSHA256 sanity check failed")
	}
}

func TestCacheKeyFollowsContent(t *testing.T) {
	fs := source.NewFileSet()
	one := fs.Get(fs.AddVirtual("a.js", []byte("a;")))
	same := fs.Get(fs.AddVirtual("b.js", []byte("a;")))
	other := fs.Get(fs.AddVirtual("a.js", []byte("b;")))
	if CacheKey(one) != CacheKey(same) {
		t.Error("equal content under another path must share a key")
	}
	if CacheKey(one) == CacheKey(other) {
		t.Error("different content must change the key")
	}
	if CacheKey(one) == Digest(one.Hash) {
		t.Error("key must include the schema")
	}
}
