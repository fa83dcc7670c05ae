package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nsinterior-dev/figment/internal/entity"

	"github.com/redis/go-redis/v9"
)

// CacheRepository keeps successful generation results keyed by the
// sha256 of the image plus the prompt, so repeated requests for the same
// screenshot skip the provider call.
type CacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheRepository(client *redis.Client, ttl time.Duration) *CacheRepository {
	return &CacheRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CacheRepository) SetResult(ctx context.Context, key string, gen *entity.Generation) error {
	data, err := json.Marshal(gen)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, "generation:"+key, data, r.ttl).Err()
}

func (r *CacheRepository) GetResult(ctx context.Context, key string) (*entity.Generation, error) {
	data, err := r.client.Get(ctx, "generation:"+key).Result()
	if err != nil {
		return nil, err
	}

	var gen entity.Generation
	err = json.Unmarshal([]byte(data), &gen)
	if err != nil {
		return nil, err
	}

	return &gen, nil
}

// Allow implements a fixed-window request counter used by the rate limit
// middleware. It returns the number of requests seen in the current window.
func (r *CacheRepository) Allow(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := r.client.Incr(ctx, "ratelimit:"+key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		r.client.Expire(ctx, "ratelimit:"+key, window)
	}
	return count, nil
}

func (r *CacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
