package dtl

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StoredTemplate is a template version kept by a storage backend.
type StoredTemplate struct {
	// ID uniquely identifies this version.
	ID string `json:"id"`

	// Name is the template name used for lookups.
	Name string `json:"name"`

	// Source is the raw template source.
	Source string `json:"source"`

	// Version starts at 1 and grows by one per Save of the same name.
	Version int `json:"version"`

	// Metadata holds arbitrary user data.
	Metadata map[string]string `json:"metadata,omitempty"`

	// Tags for categorization and querying.
	Tags []string `json:"tags,omitempty"`

	// CreatedBy identifies who created this version (optional).
	CreatedBy string `json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TemplateQuery filters List results.
type TemplateQuery struct {
	// NamePrefix filters to names starting with this prefix.
	NamePrefix string

	// NameContains filters to names containing this substring.
	NameContains string

	// Tags filters to templates having ALL specified tags.
	Tags []string

	// CreatedBy filters by creator.
	CreatedBy string

	// Limit is the maximum number of results (0 = no limit).
	Limit int

	// Offset is the number of results to skip.
	Offset int

	// IncludeAllVersions includes all versions, not just the latest.
	IncludeAllVersions bool
}

// TemplateStorage is the interface for pluggable storage backends.
// Implementations must be safe for concurrent use.
type TemplateStorage interface {
	// Get retrieves the latest version of a template by name.
	Get(ctx context.Context, name string) (*StoredTemplate, error)

	// GetVersion retrieves a specific version of a template.
	GetVersion(ctx context.Context, name string, version int) (*StoredTemplate, error)

	// Save stores a new version. ID, Version, CreatedAt and UpdatedAt are
	// assigned by the backend and written back into tmpl.
	Save(ctx context.Context, tmpl *StoredTemplate) error

	// Delete removes all versions of a template.
	Delete(ctx context.Context, name string) error

	// List returns templates matching the query, ordered by name and
	// then by version, newest first.
	List(ctx context.Context, query *TemplateQuery) ([]*StoredTemplate, error)

	// Exists checks if a template with the given name exists.
	Exists(ctx context.Context, name string) (bool, error)

	// ListVersions returns the version numbers of a template, newest first.
	ListVersions(ctx context.Context, name string) ([]int, error)

	// Close releases any resources held by the storage.
	Close() error
}

// StorageDriver is a factory for storage instances.
// Drivers register themselves during init().
type StorageDriver interface {
	// Open creates a storage from a driver-specific connection string.
	Open(connectionString string) (TemplateStorage, error)
}

// Storage driver registry
var (
	storageDriversMu sync.RWMutex
	storageDrivers   = make(map[string]StorageDriver)
)

// RegisterStorageDriver registers a storage driver by name.
// Panics if the driver is nil or the name is already taken.
func RegisterStorageDriver(name string, driver StorageDriver) {
	storageDriversMu.Lock()
	defer storageDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStorageDriver)
	}
	if _, exists := storageDrivers[name]; exists {
		panic(ErrMsgDriverRegistered + ": " + name)
	}
	storageDrivers[name] = driver
}

// OpenStorage opens a storage connection using the named driver.
//
//	storage, err := dtl.OpenStorage("memory", "")
//	storage, err := dtl.OpenStorage("postgres", "postgres://localhost/dtl?sslmode=disable")
//	storage, err := dtl.OpenStorage("redis", "redis://localhost:6379/0")
func OpenStorage(driverName, connectionString string) (TemplateStorage, error) {
	storageDriversMu.RLock()
	driver, ok := storageDrivers[driverName]
	storageDriversMu.RUnlock()

	if !ok {
		return nil, NewStorageDriverNotFoundError(driverName)
	}
	return driver.Open(connectionString)
}

// ListStorageDrivers returns the names of all registered drivers, sorted.
func ListStorageDrivers() []string {
	storageDriversMu.RLock()
	defer storageDriversMu.RUnlock()

	names := make([]string, 0, len(storageDrivers))
	for name := range storageDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func generateTemplateID() string {
	return TemplateIDPrefix + uuid.NewString()
}

// TemplateIDPrefix prefixes every generated template ID
const TemplateIDPrefix = "tmpl_"

func copyStoredTemplate(t *StoredTemplate) *StoredTemplate {
	if t == nil {
		return nil
	}
	c := *t
	c.Metadata = copyStringMap(t.Metadata)
	c.Tags = copyStringSlice(t.Tags)
	return &c
}

func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyStringSlice(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// matchesQuery applies the non-paging filters of q
func matchesQuery(t *StoredTemplate, q *TemplateQuery) bool {
	if q.NamePrefix != "" && !strings.HasPrefix(t.Name, q.NamePrefix) {
		return false
	}
	if q.NameContains != "" && !strings.Contains(t.Name, q.NameContains) {
		return false
	}
	if q.CreatedBy != "" && t.CreatedBy != q.CreatedBy {
		return false
	}
	for _, want := range q.Tags {
		found := false
		for _, tag := range t.Tags {
			if tag == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sortAndPage orders results by name then version desc and applies
// Offset and Limit
func sortAndPage(results []*StoredTemplate, q *TemplateQuery) []*StoredTemplate {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Name != results[j].Name {
			return results[i].Name < results[j].Name
		}
		return results[i].Version > results[j].Version
	})
	if q.Offset > 0 {
		if q.Offset >= len(results) {
			return []*StoredTemplate{}
		}
		results = results[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(results) {
		results = results[:q.Limit]
	}
	return results
}
