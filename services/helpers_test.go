package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"unibordima/services/logger"
	"unibordima/testutil"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

// memoryCache là Cache trong bộ nhớ cho test
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, target any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, target)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if data, ok := c.entries[key]; ok {
		_ = json.Unmarshal(data, &n)
	}
	n++
	data, _ := json.Marshal(n)
	c.entries[key] = data
	return n, nil
}

type fixture struct {
	db       *gorm.DB
	images   *testutil.FakeImageStore
	cache    Cache
	tokens   *TokenService
	listings *ListingService
	reviews  *ReviewService
	students *StudentService
	admins   *AdminService
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithCache(t, NopCache{})
}

func newFixtureWithCache(t *testing.T, cache Cache) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	log := logger.Discard()
	images := &testutil.FakeImageStore{}
	tokens := NewTokenService("test-secret", time.Hour)

	listings := NewListingService(ListingServiceOptions{
		DB:       db,
		Images:   images,
		Cache:    cache,
		CacheTTL: time.Minute,
		Logger:   log,
	})
	return &fixture{
		db:       db,
		images:   images,
		cache:    cache,
		tokens:   tokens,
		listings: listings,
		reviews: NewReviewService(ReviewServiceOptions{
			DB:       db,
			Ratings:  NewRatingAggregator(db, log),
			Listings: listings,
			Logger:   log,
		}),
		students: NewStudentService(StudentServiceOptions{DB: db, Tokens: tokens, Logger: log}),
		admins:   NewAdminService(AdminServiceOptions{DB: db, Tokens: tokens, Cache: cache, Logger: log}),
	}
}

func ptr[T any](v T) *T { return &v }
