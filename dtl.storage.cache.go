package dtl

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"
)

// Cache defaults
const (
	DefaultCacheTTL         = 5 * time.Minute
	DefaultCacheMaxEntries  = 1000
	DefaultNegativeCacheTTL = 30 * time.Second
)

// CacheConfig tunes CachedStorage. Zero TTL and MaxEntries fall back to
// the defaults; a zero NegativeCacheTTL turns off caching of misses.
type CacheConfig struct {
	TTL              time.Duration
	MaxEntries       int
	NegativeCacheTTL time.Duration
}

// DefaultCacheConfig returns DefaultCacheTTL, DefaultCacheMaxEntries and
// DefaultNegativeCacheTTL.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:              DefaultCacheTTL,
		MaxEntries:       DefaultCacheMaxEntries,
		NegativeCacheTTL: DefaultNegativeCacheTTL,
	}
}

// CacheStats is a snapshot of CachedStorage. Entries counts expired
// entries too; ValidEntries and NegativeEntries do not.
type CacheStats struct {
	Entries         int
	ValidEntries    int
	NegativeEntries int
}

// latestLookup is the cached answer to "what is the newest version of name".
// A nil tmpl records a miss.
type latestLookup struct {
	name    string
	tmpl    *StoredTemplate
	expires time.Time
}

func (l *latestLookup) fresh(now time.Time) bool {
	return now.Before(l.expires)
}

// CachedStorage puts an LRU of latest-version lookups in front of another
// TemplateStorage. The hot path of a StorageEngine is Execute by name, so
// only Get and Exists read the cache; everything else goes straight through.
type CachedStorage struct {
	backend TemplateStorage
	ttl     time.Duration
	missTTL time.Duration
	limit   int

	mu     sync.Mutex
	byName map[string]*list.Element
	recent *list.List // front is most recently used
	closed bool
}

// NewCachedStorage wraps backend with a lookup cache.
func NewCachedStorage(backend TemplateStorage, config CacheConfig) *CachedStorage {
	if config.TTL == 0 {
		config.TTL = DefaultCacheTTL
	}
	if config.MaxEntries == 0 {
		config.MaxEntries = DefaultCacheMaxEntries
	}
	return &CachedStorage{
		backend: backend,
		ttl:     config.TTL,
		missTTL: config.NegativeCacheTTL,
		limit:   config.MaxEntries,
		byName:  make(map[string]*list.Element),
		recent:  list.New(),
	}
}

// cached returns the fresh lookup for name and marks it used.
func (s *CachedStorage) cached(name string) (*latestLookup, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false, NewStorageClosedError()
	}
	elem, ok := s.byName[name]
	if !ok {
		return nil, false, nil
	}
	lookup := elem.Value.(*latestLookup)
	if !lookup.fresh(time.Now()) {
		return nil, false, nil
	}
	s.recent.MoveToFront(elem)
	return lookup, true, nil
}

// remember records a lookup result, pushing out the least recently used
// name when the cache is full.
func (s *CachedStorage) remember(name string, tmpl *StoredTemplate, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	lookup := &latestLookup{name: name, tmpl: tmpl, expires: time.Now().Add(ttl)}
	if elem, ok := s.byName[name]; ok {
		elem.Value = lookup
		s.recent.MoveToFront(elem)
		return
	}
	if s.recent.Len() >= s.limit {
		if last := s.recent.Back(); last != nil {
			delete(s.byName, last.Value.(*latestLookup).name)
			s.recent.Remove(last)
		}
	}
	s.byName[name] = s.recent.PushFront(lookup)
}

// Get serves the newest version of name from the cache, loading it from
// the backend on a miss or after expiry.
func (s *CachedStorage) Get(ctx context.Context, name string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lookup, hit, err := s.cached(name)
	if err != nil {
		return nil, err
	}
	if hit {
		if lookup.tmpl == nil {
			return nil, NewStorageTemplateNotFoundError(name)
		}
		return copyStoredTemplate(lookup.tmpl), nil
	}

	tmpl, err := s.backend.Get(ctx, name)
	switch {
	case errors.Is(err, ErrTemplateNotFound):
		if s.missTTL > 0 {
			s.remember(name, nil, s.missTTL)
		}
		return nil, err
	case err != nil:
		return nil, err
	}
	s.remember(name, copyStoredTemplate(tmpl), s.ttl)
	return tmpl, nil
}

// Exists answers from a fresh cached lookup when there is one.
func (s *CachedStorage) Exists(ctx context.Context, name string) (bool, error) {
	lookup, hit, err := s.cached(name)
	if err != nil {
		return false, err
	}
	if hit {
		return lookup.tmpl != nil, nil
	}
	return s.backend.Exists(ctx, name)
}

func (s *CachedStorage) GetVersion(ctx context.Context, name string, version int) (*StoredTemplate, error) {
	return s.backend.GetVersion(ctx, name, version)
}

// Save writes through and forgets the cached lookup for the name.
func (s *CachedStorage) Save(ctx context.Context, tmpl *StoredTemplate) error {
	if err := s.backend.Save(ctx, tmpl); err != nil {
		return err
	}
	s.Invalidate(tmpl.Name)
	return nil
}

// Delete writes through and forgets the cached lookup for the name.
func (s *CachedStorage) Delete(ctx context.Context, name string) error {
	if err := s.backend.Delete(ctx, name); err != nil {
		return err
	}
	s.Invalidate(name)
	return nil
}

func (s *CachedStorage) List(ctx context.Context, query *TemplateQuery) ([]*StoredTemplate, error) {
	return s.backend.List(ctx, query)
}

func (s *CachedStorage) ListVersions(ctx context.Context, name string) ([]int, error) {
	return s.backend.ListVersions(ctx, name)
}

// Close empties the cache and closes the backend.
func (s *CachedStorage) Close() error {
	s.mu.Lock()
	s.closed = true
	s.byName = make(map[string]*list.Element)
	s.recent.Init()
	s.mu.Unlock()

	return s.backend.Close()
}

// Invalidate forgets the cached lookup for name. Call it after changing
// the backend directly.
func (s *CachedStorage) Invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.byName[name]; ok {
		s.recent.Remove(elem)
		delete(s.byName, name)
	}
}

// InvalidateAll forgets every cached lookup.
func (s *CachedStorage) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byName = make(map[string]*list.Element)
	s.recent.Init()
}

func (s *CachedStorage) Stats() CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	stats := CacheStats{Entries: s.recent.Len()}
	for elem := s.recent.Front(); elem != nil; elem = elem.Next() {
		lookup := elem.Value.(*latestLookup)
		switch {
		case !lookup.fresh(now):
		case lookup.tmpl == nil:
			stats.NegativeEntries++
		default:
			stats.ValidEntries++
		}
	}
	return stats
}
