// Package retention caches deletion metadata in Redis with a TTL matching
// the record's retention window, so retention sweeps and deletion checks do
// not need a database round trip.
package retention

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"privacyguard/internal/obligation"
)

const (
	// Redis key prefix for retention entries
	retentionKeyPrefix = "retention:record:"
)

// Cache is a Redis-backed retention cache. The key expires together with the
// retention window, so a missing key means the record is past retention or
// was never cached.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Remember stores the deletion metadata for a record with a TTL derived from
// its retention period. Zero retention days means no expiry.
func (c *Cache) Remember(ctx context.Context, recordID uuid.UUID, meta obligation.DeletionMetadata) error {
	value, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal deletion metadata: %w", err)
	}

	var ttl time.Duration
	if meta.RetentionPeriodDays > 0 {
		ttl = time.Duration(meta.RetentionPeriodDays) * 24 * time.Hour
	}

	key := retentionKeyPrefix + recordID.String()
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Lookup returns the cached deletion metadata for a record. The second return
// is false when the record has no live retention entry.
func (c *Cache) Lookup(ctx context.Context, recordID uuid.UUID) (obligation.DeletionMetadata, bool, error) {
	key := retentionKeyPrefix + recordID.String()

	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return obligation.DeletionMetadata{}, false, nil
	}
	if err != nil {
		return obligation.DeletionMetadata{}, false, err
	}

	var meta obligation.DeletionMetadata
	if err := json.Unmarshal(value, &meta); err != nil {
		return obligation.DeletionMetadata{}, false, fmt.Errorf("unmarshal deletion metadata: %w", err)
	}
	return meta, true, nil
}

// TTL reports how long the record's retention entry has left to live.
func (c *Cache) TTL(ctx context.Context, recordID uuid.UUID) (time.Duration, error) {
	key := retentionKeyPrefix + recordID.String()
	return c.client.TTL(ctx, key).Result()
}

// Forget drops the retention entries for the given records, typically after
// a deletion plan executed.
func (c *Cache) Forget(ctx context.Context, recordIDs ...uuid.UUID) error {
	if len(recordIDs) == 0 {
		return nil
	}

	keys := make([]string, len(recordIDs))
	for i, id := range recordIDs {
		keys[i] = retentionKeyPrefix + id.String()
	}
	return c.client.Del(ctx, keys...).Err()
}
