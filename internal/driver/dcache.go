package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"simpleparser/internal/ast"
	"simpleparser/internal/source"
)

// Current schema version - increment when CachePayload or the AST JSON changes.
const parseCacheSchemaVersion uint16 = 1

// ParseCache хранит успешно разобранные деревья на диске по хешу содержимого.
// Thread-safe for concurrent access. A nil *ParseCache is a disabled cache.
type ParseCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is the msgpack record stored per source.
type CachePayload struct {
	Schema      uint16
	Path        string // informational; the key is content based
	ContentHash Digest
	// AST is the single-line JSON document; spans travel separately since the
	// JSON form has none.
	AST   []byte
	Spans []ast.SpanRange
}

// OpenParseCache opens the cache in dir, or in $XDG_CACHE_HOME/<app>
// (~/.cache/<app>) when dir is empty.
func OpenParseCache(dir, app string) (*ParseCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("parse cache: %w", err)
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("parse cache: %w", err)
	}
	return &ParseCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *ParseCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *ParseCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог "ast" для удобства очистки
	return filepath.Join(c.dir, "ast", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *ParseCache) Put(key Digest, payload *CachePayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *ParseCache) Get(key Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *ParseCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// Store caches a successfully parsed program for file.
func (c *ParseCache) Store(file *source.File, prog *ast.Program) error {
	if c == nil || prog == nil || hasNonFinite(prog) {
		return nil
	}
	data, err := ast.Marshal(prog, "")
	if err != nil {
		return err
	}
	return c.Put(CacheKey(file), &CachePayload{
		Schema:      parseCacheSchemaVersion,
		Path:        file.Path,
		ContentHash: Digest(file.Hash),
		AST:         data,
		Spans:       ast.CollectSpans(prog),
	})
}

// Load returns the cached program for file with spans rebound to file.ID.
// Any unreadable or stale entry is a miss.
func (c *ParseCache) Load(file *source.File) (*ast.Program, bool) {
	if c == nil {
		return nil, false
	}
	var payload CachePayload
	ok, err := c.Get(CacheKey(file), &payload)
	if err != nil || !ok {
		return nil, false
	}
	if payload.Schema != parseCacheSchemaVersion || payload.ContentHash != Digest(file.Hash) {
		return nil, false
	}
	prog, err := ast.UnmarshalProgram(payload.AST)
	if err != nil {
		return nil, false
	}
	if err := ast.RestoreSpans(prog, file.ID, payload.Spans); err != nil {
		return nil, false
	}
	return prog, true
}

// JSON has no Infinity, so such trees would not come back intact.
func hasNonFinite(prog *ast.Program) bool {
	found := false
	ast.Inspect(prog, func(n ast.Node) bool {
		if lit, ok := n.(*ast.NumericLiteral); ok && (math.IsInf(lit.Value, 0) || math.IsNaN(lit.Value)) {
			found = true
		}
		return !found
	})
	return found
}
