package iocache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/schema"
	"github.com/redis/go-redis/v9"
)

const redisTimeout = 2 * time.Second

// RedisCacheStore keeps generated course stats as Redis hashes under a key prefix.
type RedisCacheStore struct {
	client *redis.Client
	prefix string
}

var _ contract.CacheStore = &RedisCacheStore{} // Compile-time check

// NewRedisCacheStore connects to Redis with a redis:// URL and verifies the connection.
func NewRedisCacheStore(prefix, connStr string) (*RedisCacheStore, error) {
	opts, err := redis.ParseURL(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis connection string: %w. Expected redis://[:password@]host:port/db", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return newRedisCacheStore(client, prefix), nil
}

func newRedisCacheStore(client *redis.Client, prefix string) *RedisCacheStore {
	return &RedisCacheStore{client: client, prefix: prefix}
}

func (rs *RedisCacheStore) redisKey(key string) string {
	return rs.prefix + ":" + key
}

// Get retrieves a value by key. A missing key returns redis.Nil.
func (rs *RedisCacheStore) Get(key string) ([]byte, int, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	fields, err := rs.client.HGetAll(ctx, rs.redisKey(key)).Result()
	if err != nil {
		return nil, 0, 0, err
	}
	value, ok := fields["value"]
	if !ok {
		return nil, 0, 0, redis.Nil
	}
	version, err := strconv.Atoi(fields["version"])
	if err != nil {
		return nil, 0, 0, fmt.Errorf("corrupt cache version for %s: %w", key, err)
	}
	ts, err := strconv.ParseInt(fields["ts"], 10, 64)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("corrupt cache timestamp for %s: %w", key, err)
	}
	return []byte(value), version, ts, nil
}

// Set inserts or replaces a key/value pair.
func (rs *RedisCacheStore) Set(key string, value []byte, version int, timestamp int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	return rs.client.HSet(ctx, rs.redisKey(key),
		"value", value,
		"version", version,
		"ts", timestamp,
	).Err()
}

// GetStatus scans the key prefix and reports entry counts, times and memory use.
func (rs *RedisCacheStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{Backend: string(schema.RedisBackend), Connected: rs.client != nil}
	if rs.client == nil {
		return status, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*redisTimeout)
	defer cancel()

	var minTs, maxTs int64
	iter := rs.client.Scan(ctx, 0, rs.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		status.TotalEntries++

		ts, err := rs.client.HGet(ctx, key, "ts").Int64()
		if err == nil {
			if minTs == 0 || ts < minTs {
				minTs = ts
			}
			if ts > maxTs {
				maxTs = ts
			}
		}
		if size, err := rs.client.MemoryUsage(ctx, key).Result(); err == nil {
			status.TableSizeBytes += size
		}
	}
	if err := iter.Err(); err != nil {
		return status, fmt.Errorf("failed to scan redis keys: %w", err)
	}
	if status.TotalEntries > 0 {
		status.LastEntryTime = time.Unix(maxTs, 0)
		status.OldestEntryTime = time.Unix(minTs, 0)
	}
	return status, nil
}

// Clear deletes every key under the store prefix.
func (rs *RedisCacheStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*redisTimeout)
	defer cancel()

	iter := rs.client.Scan(ctx, 0, rs.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rs.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Close closes the Redis client.
func (rs *RedisCacheStore) Close() error {
	if rs.client == nil {
		return nil
	}
	return rs.client.Close()
}
