package listview

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultTTL is the freshness window of a cached collection.
const DefaultTTL = 5 * time.Minute

// Store is the session-scoped key/value storage behind a Cache. Set
// errors are swallowed by the cache; storage is a latency
// optimization, never a correctness dependency.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// MemoryStore keeps entries in memory for the life of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	return value, ok
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

// FileStore persists entries as one file per key under a directory,
// surviving process restarts the way session storage survives a page
// remount.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, key+".json"))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *FileStore) Set(key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, key+".json"), value, 0o644)
}

type cacheEntry[T any] struct {
	Data []T   `json:"data"`
	TS   int64 `json:"ts"`
}

// Cache stores the last successful full fetch of one resource under
// the key "<resource>_cache" as {data, ts} with ts in epoch
// milliseconds. Every write replaces the whole entry; there is no
// partial invalidation.
type Cache[T any] struct {
	store    Store
	resource string
	ttl      time.Duration

	now func() time.Time
}

func NewCache[T any](store Store, resource string, ttl time.Duration) *Cache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[T]{store: store, resource: resource, ttl: ttl, now: time.Now}
}

func (c *Cache[T]) Key() string {
	return c.resource + "_cache"
}

// Get returns the cached collection if the entry exists, decodes, and
// is younger than the TTL. Anything else is a miss.
func (c *Cache[T]) Get() ([]T, bool) {
	raw, ok := c.store.Get(c.Key())
	if !ok {
		return nil, false
	}

	var entry cacheEntry[T]
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false
	}

	age := c.now().UnixMilli() - entry.TS
	if age < 0 || age >= c.ttl.Milliseconds() {
		return nil, false
	}
	return entry.Data, true
}

// Put replaces the cached entry. Write failures are swallowed.
func (c *Cache[T]) Put(data []T) {
	raw, err := json.Marshal(cacheEntry[T]{Data: data, TS: c.now().UnixMilli()})
	if err != nil {
		return
	}
	_ = c.store.Set(c.Key(), raw)
}
