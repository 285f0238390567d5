package dtl

import (
	"context"
	"sync"
	"time"
)

// templateHistory holds every saved version of one template name, oldest
// first, so a version number v lives at index v-1.
type templateHistory []*StoredTemplate

func (h templateHistory) latest() *StoredTemplate {
	if len(h) == 0 {
		return nil
	}
	return h[len(h)-1]
}

func (h templateHistory) at(version int) *StoredTemplate {
	if version < 1 || version > len(h) {
		return nil
	}
	return h[version-1]
}

// newestFirst lists the versions in the order List and ListVersions report
func (h templateHistory) newestFirst() []*StoredTemplate {
	out := make([]*StoredTemplate, len(h))
	for i, tmpl := range h {
		out[len(h)-1-i] = tmpl
	}
	return out
}

// MemoryStorage keeps template histories in process memory. Useful for
// tests, the CLI's default driver and single-process services.
type MemoryStorage struct {
	mu        sync.RWMutex
	histories map[string]templateHistory
	closed    bool
}

// MemoryStorageDriver opens MemoryStorage instances.
type MemoryStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverMemory, &MemoryStorageDriver{})
}

// Open returns an empty MemoryStorage; there is nothing to connect to.
func (d *MemoryStorageDriver) Open(_ string) (TemplateStorage, error) {
	return NewMemoryStorage(), nil
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{histories: make(map[string]templateHistory)}
}

// view runs fn under the read lock once ctx and the closed flag are checked
func (s *MemoryStorage) view(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return NewStorageClosedError()
	}
	return fn()
}

// update is view with the write lock
func (s *MemoryStorage) update(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return NewStorageClosedError()
	}
	return fn()
}

func (s *MemoryStorage) Get(ctx context.Context, name string) (*StoredTemplate, error) {
	var found *StoredTemplate
	err := s.view(ctx, func() error {
		latest := s.histories[name].latest()
		if latest == nil {
			return NewStorageTemplateNotFoundError(name)
		}
		found = copyStoredTemplate(latest)
		return nil
	})
	return found, err
}

func (s *MemoryStorage) GetVersion(ctx context.Context, name string, version int) (*StoredTemplate, error) {
	var found *StoredTemplate
	err := s.view(ctx, func() error {
		tmpl := s.histories[name].at(version)
		if tmpl == nil {
			return NewStorageVersionNotFoundError(name, version)
		}
		found = copyStoredTemplate(tmpl)
		return nil
	})
	return found, err
}

// Save appends tmpl as the next version of its name and writes the
// assigned ID, version and timestamps back into tmpl.
func (s *MemoryStorage) Save(ctx context.Context, tmpl *StoredTemplate) error {
	if tmpl == nil || tmpl.Name == "" {
		if err := ctx.Err(); err != nil {
			return err
		}
		return NewEmptyTemplateNameError()
	}

	return s.update(ctx, func() error {
		history := s.histories[tmpl.Name]
		now := time.Now()

		tmpl.ID = generateTemplateID()
		tmpl.Version = len(history) + 1
		tmpl.CreatedAt = now
		tmpl.UpdatedAt = now

		s.histories[tmpl.Name] = append(history, copyStoredTemplate(tmpl))
		return nil
	})
}

// Delete drops the whole history of name.
func (s *MemoryStorage) Delete(ctx context.Context, name string) error {
	return s.update(ctx, func() error {
		if len(s.histories[name]) == 0 {
			return NewStorageTemplateNotFoundError(name)
		}
		delete(s.histories, name)
		return nil
	})
}

func (s *MemoryStorage) List(ctx context.Context, query *TemplateQuery) ([]*StoredTemplate, error) {
	if query == nil {
		query = &TemplateQuery{}
	}

	var results []*StoredTemplate
	err := s.view(ctx, func() error {
		results = make([]*StoredTemplate, 0, len(s.histories))
		for _, history := range s.histories {
			candidates := []*StoredTemplate{history.latest()}
			if query.IncludeAllVersions {
				candidates = history.newestFirst()
			}
			for _, tmpl := range candidates {
				if tmpl != nil && matchesQuery(tmpl, query) {
					results = append(results, copyStoredTemplate(tmpl))
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sortAndPage(results, query), nil
}

func (s *MemoryStorage) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.view(ctx, func() error {
		exists = len(s.histories[name]) > 0
		return nil
	})
	return exists, err
}

// ListVersions reports version numbers newest first.
func (s *MemoryStorage) ListVersions(ctx context.Context, name string) ([]int, error) {
	var numbers []int
	err := s.view(ctx, func() error {
		history := s.histories[name]
		numbers = make([]int, 0, len(history))
		for v := len(history); v >= 1; v-- {
			numbers = append(numbers, v)
		}
		return nil
	})
	return numbers, err
}

// Close drops every history; later calls return ErrStorageClosed.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.histories = nil
	return nil
}
