package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidEntry indicates a stored entry is corrupted or not an Entry
var ErrInvalidEntry = errors.New("invalid storage entry")

// DefaultRedisPrefix namespaces resource keys in Redis.
const DefaultRedisPrefix = "resource"

// RedisStore reads and writes resources as JSON entries in Redis.
type RedisStore struct {
	redis  *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed store. Keys are stored as
// <prefix>:<key>; an empty prefix selects DefaultRedisPrefix.
func NewRedisStore(redisClient *redis.Client, prefix string) *RedisStore {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *RedisStore) key(name string) string {
	return Key{Namespace: s.prefix, Name: name}.String()
}

// Read returns the data of the entry stored under key.
func (s *RedisStore) Read(ctx context.Context, key string) ([]byte, error) {
	entry, err := s.Get(ctx, key)
	observeRead(BackendRedis, err)
	if err != nil {
		return nil, err
	}
	return entry.Data, nil
}

// Get retrieves the entry stored under key.
// Returns an error wrapping ErrNotExist if the key doesn't exist or the
// entry is expired.
func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	redisKey := s.key(key)

	data, err := s.redis.Get(ctx, redisKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			RedisMisses.Inc()
			return nil, fmt.Errorf("%w: %s", ErrNotExist, redisKey)
		}
		RedisErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		RedisErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	// Redis normally evicts expired keys itself; this covers clock skew
	if entry.IsExpired() {
		_ = s.Delete(ctx, key)
		RedisMisses.Inc()
		return nil, fmt.Errorf("%w: %s expired", ErrNotExist, redisKey)
	}

	RedisHits.Inc()
	return &entry, nil
}

// Put stores an entry, with a Redis TTL derived from its Expires field.
// Entries that are already expired are not stored.
func (s *RedisStore) Put(ctx context.Context, key string, entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("storage entry cannot be nil")
	}

	var ttl time.Duration
	if !entry.Expires.IsZero() {
		ttl = entry.TTL()
		if ttl <= 0 {
			return nil
		}
	}

	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		RedisErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("marshal storage entry: %w", err)
	}

	if err := s.redis.Set(ctx, s.key(key), data, ttl).Err(); err != nil {
		RedisErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// PutContent stores data under key without expiry.
func (s *RedisStore) PutContent(ctx context.Context, key string, data []byte) error {
	return s.Put(ctx, key, &Entry{
		Data:        data,
		ContentType: "text/plain; charset=utf-8",
	})
}

// Delete removes the entry stored under key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, s.key(key)).Err(); err != nil {
		RedisErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
