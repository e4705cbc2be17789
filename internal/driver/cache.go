package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"gitlab.com/tozd/go/errors"

	"cocomig/internal/config"
	"cocomig/internal/migrate"
	"cocomig/internal/source"
)

// cacheSchemaVersion is bumped whenever CachePayload or the matchers change.
const cacheSchemaVersion uint16 = 1

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Cache keeps scan results on disk, keyed by file content and markers.
// Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is what one cache entry stores.
type CachePayload struct {
	Schema   uint16            `msgpack:"schema"`
	Findings []migrate.Finding `msgpack:"findings"`
}

// DefaultCacheDir returns $XDG_CACHE_HOME/cocomig or ~/.cache/cocomig.
func DefaultCacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Errorf("locate cache directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "cocomig"), nil
}

// OpenCache opens (and creates) a cache rooted at dir; empty dir means
// DefaultCacheDir.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultCacheDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Errorf("create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

// Key combines the content hash with the marker names.
func Key(content [32]byte, m config.Markers) Digest {
	h := sha256.New()
	var schema [2]byte
	schema[0], schema[1] = byte(cacheSchemaVersion>>8), byte(cacheSchemaVersion)
	_, _ = h.Write(schema[:])
	_, _ = h.Write(content[:])
	for _, s := range []string{m.Module, m.Coroutine, m.Fork, m.StartSoon, m.ReturnValue} {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "scan", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload.
func (c *Cache) Put(key Digest, payload *CachePayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = cacheSchemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Errorf("cache put: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return errors.Errorf("cache put: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return errors.Errorf("cache encode: %w", err)
	}
	if err = f.Close(); err != nil {
		return errors.Errorf("cache put: %w", err)
	}
	// Атомарная замена
	if err = os.Rename(f.Name(), p); err != nil {
		return errors.Errorf("cache put: %w", err)
	}
	return nil
}

// Get reads a payload. Entries written by another schema count as misses.
func (c *Cache) Get(key Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, errors.Errorf("cache get: %w", err)
	}
	var payload CachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return false, errors.Errorf("cache decode: %w", err)
	}
	if payload.Schema != cacheSchemaVersion {
		return false, nil
	}
	*out = payload
	return true, nil
}

// Lookup returns the cached findings for f, re-homed to f's FileID.
func (c *Cache) Lookup(f *source.File, m config.Markers) ([]migrate.Finding, bool, error) {
	var payload CachePayload
	ok, err := c.Get(Key(f.Hash, m), &payload)
	if err != nil || !ok {
		return nil, false, err
	}
	for i := range payload.Findings {
		payload.Findings[i].Span.File = f.ID
	}
	return payload.Findings, true, nil
}

// Store records the findings for f.
func (c *Cache) Store(f *source.File, m config.Markers, findings []migrate.Finding) error {
	return c.Put(Key(f.Hash, m), &CachePayload{Findings: findings})
}

// DropAll invalidates the cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Errorf("cache drop: %w", err)
	}
	if err := os.RemoveAll(old); err != nil {
		return errors.Errorf("cache drop: %w", err)
	}
	return os.MkdirAll(c.dir, 0o755)
}
