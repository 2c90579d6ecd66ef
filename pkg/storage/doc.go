// Package storage provides the backends a resource loader reads from.
//
// Every backend implements Store: given a key, return the full contents or
// report absence. The loader does not care whether a read hits local disk,
// Redis or an HTTP blob server, so backends are interchangeable.
//
// # Backends
//
//   - FileStore reads <Root>/<key><Suffix> from a directory tree
//   - RedisStore reads JSON entries stored under <prefix>:<key>
//   - HTTPStore issues GET <BaseURL>/<key><Suffix>
//   - MemoryStore serves an in-memory fixture
//
// # Basic Usage
//
//	store := storage.NewFileStore("files", ".txt")
//	data, err := store.Read(ctx, "cat")
//	if errors.Is(err, storage.ErrNotExist) {
//		// resource is absent
//	}
//
// # Redis
//
//	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	store := storage.NewRedisStore(redisClient, "resource")
//	_ = store.PutContent(ctx, "cat", []byte("meow"))
//
// # Metrics
//
//   - loader_storage_reads_total{backend,result} - reads by backend and result
//   - loader_redis_hits_total - Redis entries found
//   - loader_redis_misses_total - Redis keys absent or expired
//   - loader_redis_errors_total{operation} - Redis operation errors
package storage
