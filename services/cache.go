package services

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Cache là lớp cache dùng chung cho listing và dashboard
type Cache interface {
	// Get đọc key vào target. found=false khi key không tồn tại.
	Get(ctx context.Context, key string, target any) (found bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
}

// RedisCache lưu giá trị dạng JSON trên Redis
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

// Hàm lấy data từ Redis
func (c *RedisCache) Get(ctx context.Context, key string, target any) (bool, error) {
	cachedData, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// Parse JSON thành object
	if err := json.Unmarshal(cachedData, target); err != nil {
		return false, err
	}
	return true, nil
}

// Hàm lưu dữ liệu vào Redis
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, dataJSON, ttl).Err()
}

// Hàm xóa cache Redis
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *RedisCache) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}

// NopCache dùng khi không cấu hình Redis: luôn miss, ghi thì bỏ qua
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (NopCache) Delete(context.Context, ...string) error { return nil }
func (NopCache) Incr(context.Context, string) (int64, error) { return 0, nil }
