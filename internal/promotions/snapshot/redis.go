package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/packfinderz-promotions/internal/promotions"
	"github.com/angelmondragon/packfinderz-promotions/pkg/redis"
)

type redisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SnapshotKey(merchantID string) string
}

type snapshotJSON struct {
	MerchantID string                 `json:"merchant_id"`
	Promotions []promotions.Promotion `json:"promotions"`
	FetchedAt  time.Time              `json:"fetched_at"`
}

// RedisStore keeps JSON snapshots in redis so a cold instance can fall back to
// what a peer last loaded.
type RedisStore struct {
	client redisClient
	ttl    time.Duration
}

func NewRedisStore(client redisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, merchantID string) (promotions.Snapshot, bool, error) {
	raw, err := s.client.Get(ctx, s.client.SnapshotKey(merchantID))
	if errors.Is(err, redis.ErrNotFound) {
		return promotions.Snapshot{}, false, nil
	}
	if err != nil {
		return promotions.Snapshot{}, false, fmt.Errorf("get snapshot: %w", err)
	}

	var wire snapshotJSON
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return promotions.Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return promotions.Snapshot{
		MerchantID: wire.MerchantID,
		Promotions: wire.Promotions,
		FetchedAt:  wire.FetchedAt,
	}, true, nil
}

func (s *RedisStore) Save(ctx context.Context, snapshot promotions.Snapshot) error {
	payload, err := json.Marshal(snapshotJSON{
		MerchantID: snapshot.MerchantID,
		Promotions: snapshot.Promotions,
		FetchedAt:  snapshot.FetchedAt,
	})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.client.SnapshotKey(snapshot.MerchantID), string(payload), s.ttl); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, merchantID string) error {
	return s.client.Del(ctx, s.client.SnapshotKey(merchantID))
}
