package dtl

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/itsatony/go-cuserr"
	"github.com/redis/go-redis/v9"
)

// Redis defaults
const (
	RedisDefaultAddr        = "localhost:6379"
	RedisDefaultKeyPrefix   = "dtl:"
	RedisDefaultDialTimeout = 5 * time.Second
)

// Redis key layout, relative to the key prefix
const (
	redisKeyNames    = "names"     // sorted set of template names
	redisKeyVersions = "versions:" // + name: sorted set of versions
	redisKeySequence = "seq:"      // + name: version counter
	redisKeyTemplate = "template:" // + name + ":" + version: JSON document
)

// Redis error messages
const (
	ErrMsgRedisConnectionFailed = "redis connection failed"
	ErrMsgRedisCommandFailed    = "redis command failed"
	ErrMsgRedisInvalidURL       = "redis connection string is invalid"
	ErrMsgRedisDecodeFailed     = "redis document decoding failed"
)

// RedisConfig configures the Redis storage driver.
type RedisConfig struct {
	// Addr is host:port of the server.
	// Default: "localhost:6379"
	Addr string

	Password string
	DB       int

	// KeyPrefix namespaces every key written.
	// Default: "dtl:"
	KeyPrefix string
}

// RedisStorage implements TemplateStorage on Redis. Each version is a JSON
// document; a per-name sorted set indexes versions and a global sorted set
// indexes names. Version numbers come from an INCR counter so concurrent
// saves never collide.
type RedisStorage struct {
	client *redis.Client
	prefix string
	mu     sync.RWMutex
	closed bool
}

// RedisStorageDriver opens RedisStorage instances.
type RedisStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverRedis, &RedisStorageDriver{})
}

// Open creates a RedisStorage from a URL such as
// "redis://:password@localhost:6379/0".
func (d *RedisStorageDriver) Open(connectionString string) (TemplateStorage, error) {
	opts, err := redis.ParseURL(connectionString)
	if err != nil {
		return nil, cuserr.WrapStdError(err, ErrCodeStorage, ErrMsgRedisInvalidURL).
			WithMetadata(MetaKeyDriverName, StorageDriverRedis)
	}
	return newRedisStorage(redis.NewClient(opts), RedisDefaultKeyPrefix)
}

// NewRedisStorage connects to Redis and verifies the connection.
func NewRedisStorage(config RedisConfig) (*RedisStorage, error) {
	if config.Addr == "" {
		config.Addr = RedisDefaultAddr
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = RedisDefaultKeyPrefix
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
	return newRedisStorage(client, config.KeyPrefix)
}

// NewRedisStorageWithClient wraps an existing client. The storage takes
// ownership and closes the client on Close.
func NewRedisStorageWithClient(client *redis.Client, keyPrefix string) *RedisStorage {
	if keyPrefix == "" {
		keyPrefix = RedisDefaultKeyPrefix
	}
	return &RedisStorage{client: client, prefix: keyPrefix}
}

func newRedisStorage(client *redis.Client, prefix string) (*RedisStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), RedisDefaultDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, redisError(ErrMsgRedisConnectionFailed, err)
	}
	return NewRedisStorageWithClient(client, prefix), nil
}

func redisError(msg string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeStorage, msg).
		WithMetadata(MetaKeyDriverName, StorageDriverRedis)
}

func (s *RedisStorage) namesKey() string {
	return s.prefix + redisKeyNames
}

func (s *RedisStorage) versionsKey(name string) string {
	return s.prefix + redisKeyVersions + name
}

func (s *RedisStorage) sequenceKey(name string) string {
	return s.prefix + redisKeySequence + name
}

func (s *RedisStorage) templateKey(name string, version int) string {
	return s.prefix + redisKeyTemplate + name + ":" + strconv.Itoa(version)
}

func (s *RedisStorage) checkOpen(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.closed {
		return NewStorageClosedError()
	}
	return nil
}

// latestVersion returns 0 when the template has no versions
func (s *RedisStorage) latestVersion(ctx context.Context, name string) (int, error) {
	members, err := s.client.ZRevRange(ctx, s.versionsKey(name), 0, 0).Result()
	if err != nil {
		return 0, redisError(ErrMsgRedisCommandFailed, err)
	}
	if len(members) == 0 {
		return 0, nil
	}
	v, err := strconv.Atoi(members[0])
	if err != nil {
		return 0, redisError(ErrMsgRedisDecodeFailed, err)
	}
	return v, nil
}

func (s *RedisStorage) load(ctx context.Context, name string, version int) (*StoredTemplate, error) {
	data, err := s.client.Get(ctx, s.templateKey(name, version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, NewStorageVersionNotFoundError(name, version)
		}
		return nil, redisError(ErrMsgRedisCommandFailed, err)
	}
	var tmpl StoredTemplate
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, redisError(ErrMsgRedisDecodeFailed, err)
	}
	return &tmpl, nil
}

// Get retrieves the latest version of a template by name.
func (s *RedisStorage) Get(ctx context.Context, name string) (*StoredTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}
	version, err := s.latestVersion(ctx, name)
	if err != nil {
		return nil, err
	}
	if version == 0 {
		return nil, NewStorageTemplateNotFoundError(name)
	}
	return s.load(ctx, name, version)
}

// GetVersion retrieves a specific version of a template.
func (s *RedisStorage) GetVersion(ctx context.Context, name string, version int) (*StoredTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}
	return s.load(ctx, name, version)
}

// Save stores a template as a new version.
func (s *RedisStorage) Save(ctx context.Context, tmpl *StoredTemplate) error {
	if tmpl == nil || tmpl.Name == "" {
		return NewEmptyTemplateNameError()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(ctx); err != nil {
		return err
	}

	seq, err := s.client.Incr(ctx, s.sequenceKey(tmpl.Name)).Result()
	if err != nil {
		return redisError(ErrMsgRedisCommandFailed, err)
	}

	now := time.Now().UTC()
	stored := copyStoredTemplate(tmpl)
	stored.ID = generateTemplateID()
	stored.Version = int(seq)
	stored.CreatedAt = now
	stored.UpdatedAt = now

	data, err := json.Marshal(stored)
	if err != nil {
		return redisError(ErrMsgRedisCommandFailed, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.templateKey(stored.Name, stored.Version), data, 0)
		pipe.ZAdd(ctx, s.versionsKey(stored.Name), redis.Z{Score: float64(stored.Version), Member: stored.Version})
		pipe.ZAdd(ctx, s.namesKey(), redis.Z{Score: 0, Member: stored.Name})
		return nil
	})
	if err != nil {
		return redisError(ErrMsgRedisCommandFailed, err)
	}

	tmpl.ID = stored.ID
	tmpl.Version = stored.Version
	tmpl.CreatedAt = now
	tmpl.UpdatedAt = now
	return nil
}

// Delete removes all versions of a template by name.
func (s *RedisStorage) Delete(ctx context.Context, name string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(ctx); err != nil {
		return err
	}

	members, err := s.client.ZRange(ctx, s.versionsKey(name), 0, -1).Result()
	if err != nil {
		return redisError(ErrMsgRedisCommandFailed, err)
	}
	if len(members) == 0 {
		return NewStorageTemplateNotFoundError(name)
	}

	keys := []string{s.versionsKey(name), s.sequenceKey(name)}
	for _, m := range members {
		v, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		keys = append(keys, s.templateKey(name, v))
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		pipe.ZRem(ctx, s.namesKey(), name)
		return nil
	})
	if err != nil {
		return redisError(ErrMsgRedisCommandFailed, err)
	}
	return nil
}

// List returns templates matching the query.
func (s *RedisStorage) List(ctx context.Context, query *TemplateQuery) ([]*StoredTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}
	if query == nil {
		query = &TemplateQuery{}
	}

	names, err := s.client.ZRange(ctx, s.namesKey(), 0, -1).Result()
	if err != nil {
		return nil, redisError(ErrMsgRedisCommandFailed, err)
	}

	results := make([]*StoredTemplate, 0)
	for _, name := range names {
		stop := int64(0)
		if query.IncludeAllVersions {
			stop = -1
		}
		members, err := s.client.ZRevRange(ctx, s.versionsKey(name), 0, stop).Result()
		if err != nil {
			return nil, redisError(ErrMsgRedisCommandFailed, err)
		}
		for _, m := range members {
			v, err := strconv.Atoi(m)
			if err != nil {
				continue
			}
			tmpl, err := s.load(ctx, name, v)
			if err != nil {
				return nil, err
			}
			if matchesQuery(tmpl, query) {
				results = append(results, tmpl)
			}
		}
	}
	return sortAndPage(results, query), nil
}

// Exists checks if a template with the given name exists.
func (s *RedisStorage) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(ctx); err != nil {
		return false, err
	}
	n, err := s.client.ZCard(ctx, s.versionsKey(name)).Result()
	if err != nil {
		return false, redisError(ErrMsgRedisCommandFailed, err)
	}
	return n > 0, nil
}

// ListVersions returns all version numbers for a template, newest first.
func (s *RedisStorage) ListVersions(ctx context.Context, name string) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}
	members, err := s.client.ZRevRange(ctx, s.versionsKey(name), 0, -1).Result()
	if err != nil {
		return nil, redisError(ErrMsgRedisCommandFailed, err)
	}
	versions := make([]int, 0, len(members))
	for _, m := range members {
		if v, err := strconv.Atoi(m); err == nil {
			versions = append(versions, v)
		}
	}
	return versions, nil
}

// Close closes the underlying client.
func (s *RedisStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}
	s.closed = true
	return s.client.Close()
}
