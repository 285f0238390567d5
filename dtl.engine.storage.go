package dtl

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// StorageEngine combines template storage with the execution engine.
// Stored templates are parsed once per version and rendered by name.
type StorageEngine struct {
	engine  *Engine
	storage TemplateStorage
	logger  *zap.Logger

	mu           sync.RWMutex
	parsedCache  map[string]*parsedCacheEntry
	cacheEnabled bool
}

type parsedCacheEntry struct {
	template *Template
	version  int
}

// ParsedCacheStats contains parsed cache statistics.
type ParsedCacheStats struct {
	Entries int
	Enabled bool
}

// StorageEngineConfig configures the StorageEngine.
type StorageEngineConfig struct {
	// Storage is the template storage backend (required).
	Storage TemplateStorage

	// Engine parses and renders the stored sources.
	// If nil, a new engine with default options is created.
	Engine *Engine

	// DisableParsedTemplateCache forces a re-parse on every execution.
	DisableParsedTemplateCache bool
}

// NewStorageEngine creates a new StorageEngine with the given configuration.
func NewStorageEngine(config StorageEngineConfig) (*StorageEngine, error) {
	if config.Storage == nil {
		return nil, NewStorageError(ErrStorageNil)
	}

	engine := config.Engine
	if engine == nil {
		var err error
		engine, err = New()
		if err != nil {
			return nil, err
		}
	}

	return &StorageEngine{
		engine:       engine,
		storage:      config.Storage,
		logger:       engine.logger,
		parsedCache:  make(map[string]*parsedCacheEntry),
		cacheEnabled: !config.DisableParsedTemplateCache,
	}, nil
}

// MustNewStorageEngine creates a new StorageEngine, panicking on error.
func MustNewStorageEngine(config StorageEngineConfig) *StorageEngine {
	se, err := NewStorageEngine(config)
	if err != nil {
		panic(err)
	}
	return se
}

// Execute renders the latest version of a stored template.
func (se *StorageEngine) Execute(ctx context.Context, name string, data map[string]any) (string, error) {
	tmpl, err := se.loadAndParse(ctx, name)
	if err != nil {
		return "", err
	}
	return tmpl.Execute(ctx, data)
}

// ExecuteWithContext renders the latest version against a prepared Context.
func (se *StorageEngine) ExecuteWithContext(ctx context.Context, name string, execCtx *Context) (string, error) {
	tmpl, err := se.loadAndParse(ctx, name)
	if err != nil {
		return "", err
	}
	return tmpl.ExecuteWithContext(ctx, execCtx)
}

// ExecuteVersion renders a specific version of a stored template.
func (se *StorageEngine) ExecuteVersion(ctx context.Context, name string, version int, data map[string]any) (string, error) {
	stored, err := se.storage.GetVersion(ctx, name, version)
	if err != nil {
		return "", err
	}
	tmpl, err := se.engine.Parse(stored.Source)
	if err != nil {
		return "", err
	}
	return tmpl.Execute(ctx, data)
}

// Validate validates the latest version of a stored template.
func (se *StorageEngine) Validate(ctx context.Context, name string) (*ValidationResult, error) {
	stored, err := se.storage.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return se.engine.Validate(stored.Source)
}

// Save validates source and stores it as a new version of name.
// Templates that do not compile are rejected and nothing is written.
func (se *StorageEngine) Save(ctx context.Context, name, source string) (*StoredTemplate, error) {
	tmpl := &StoredTemplate{Name: name, Source: source}
	if err := se.SaveTemplate(ctx, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

// SaveTemplate validates tmpl.Source and stores tmpl as a new version.
// The assigned ID and Version are written back into tmpl.
func (se *StorageEngine) SaveTemplate(ctx context.Context, tmpl *StoredTemplate) error {
	if tmpl == nil || tmpl.Name == "" {
		return NewEmptyTemplateNameError()
	}
	result, err := se.engine.Validate(tmpl.Source)
	if err != nil {
		return err
	}
	if result.HasErrors() {
		return NewValidationFailedError(tmpl.Name, result)
	}
	return se.SaveWithoutValidation(ctx, tmpl)
}

// SaveWithoutValidation stores tmpl as a new version without compiling it.
func (se *StorageEngine) SaveWithoutValidation(ctx context.Context, tmpl *StoredTemplate) error {
	if err := se.storage.Save(ctx, tmpl); err != nil {
		return err
	}
	se.invalidateParsedCache(tmpl.Name)
	se.logger.Debug(LogMsgStorageSaved,
		zap.String(LogFieldTemplateName, tmpl.Name),
		zap.Int(LogFieldVersion, tmpl.Version))
	return nil
}

// Delete removes all versions of a stored template.
func (se *StorageEngine) Delete(ctx context.Context, name string) error {
	if err := se.storage.Delete(ctx, name); err != nil {
		return err
	}
	se.invalidateParsedCache(name)
	se.logger.Debug(LogMsgStorageDeleted, zap.String(LogFieldTemplateName, name))
	return nil
}

// Get retrieves the latest version of a stored template.
func (se *StorageEngine) Get(ctx context.Context, name string) (*StoredTemplate, error) {
	return se.storage.Get(ctx, name)
}

// List returns stored templates matching the query.
func (se *StorageEngine) List(ctx context.Context, query *TemplateQuery) ([]*StoredTemplate, error) {
	return se.storage.List(ctx, query)
}

// Exists checks if a stored template exists.
func (se *StorageEngine) Exists(ctx context.Context, name string) (bool, error) {
	return se.storage.Exists(ctx, name)
}

// ListVersions returns the version numbers of a stored template, newest first.
func (se *StorageEngine) ListVersions(ctx context.Context, name string) ([]int, error) {
	return se.storage.ListVersions(ctx, name)
}

// Engine returns the underlying template engine.
func (se *StorageEngine) Engine() *Engine {
	return se.engine
}

// Storage returns the underlying storage backend.
func (se *StorageEngine) Storage() TemplateStorage {
	return se.storage
}

// Close drops the parsed cache and closes the underlying storage.
func (se *StorageEngine) Close() error {
	se.mu.Lock()
	se.parsedCache = make(map[string]*parsedCacheEntry)
	se.mu.Unlock()

	return se.storage.Close()
}

// ClearParsedCache clears the parsed template cache.
func (se *StorageEngine) ClearParsedCache() {
	se.mu.Lock()
	se.parsedCache = make(map[string]*parsedCacheEntry)
	se.mu.Unlock()
}

// ParsedCacheStats returns statistics about the parsed template cache.
func (se *StorageEngine) ParsedCacheStats() ParsedCacheStats {
	se.mu.RLock()
	defer se.mu.RUnlock()

	return ParsedCacheStats{
		Entries: len(se.parsedCache),
		Enabled: se.cacheEnabled,
	}
}

// loadAndParse fetches the latest version and parses it unless the
// cached tree already belongs to that version.
func (se *StorageEngine) loadAndParse(ctx context.Context, name string) (*Template, error) {
	stored, err := se.storage.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	if se.cacheEnabled {
		se.mu.RLock()
		entry, ok := se.parsedCache[name]
		se.mu.RUnlock()

		if ok && entry.version == stored.Version {
			se.logger.Debug(LogMsgCacheHit,
				zap.String(LogFieldTemplateName, name),
				zap.Int(LogFieldVersion, stored.Version))
			return entry.template, nil
		}
		se.logger.Debug(LogMsgCacheMiss, zap.String(LogFieldTemplateName, name))
	}

	tmpl, err := se.engine.Parse(stored.Source)
	if err != nil {
		return nil, err
	}

	if se.cacheEnabled {
		se.mu.Lock()
		se.parsedCache[name] = &parsedCacheEntry{template: tmpl, version: stored.Version}
		se.mu.Unlock()
	}
	return tmpl, nil
}

func (se *StorageEngine) invalidateParsedCache(name string) {
	se.mu.Lock()
	delete(se.parsedCache, name)
	se.mu.Unlock()
}
