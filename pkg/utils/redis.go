package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"resumeforge/internal/config"
	"resumeforge/internal/logging"
	"resumeforge/pkg/models"
)

// RedisClient wraps the Redis client with generated-result caching
type RedisClient struct {
	client *redis.Client
	config *config.Config
	logger logging.Logger
}

// CachedResult is the payload stored per user after a successful generation
type CachedResult struct {
	LogID    int64                  `json:"log_id"`
	UserID   string                 `json:"user_id"`
	Resume   *models.ResumeDocument `json:"resume"`
	CachedAt time.Time              `json:"cached_at"`
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(cfg *config.Config) *RedisClient {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &RedisClient{
		client: redis.NewClient(opts),
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// Ping tests the Redis connection
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// StoreResult caches the latest generated document for a user. Each user holds
// at most one cached result; a new generation replaces the previous one.
func (r *RedisClient) StoreResult(ctx context.Context, userID string, logID int64, doc *models.ResumeDocument) error {
	entry := CachedResult{
		LogID:    logID,
		UserID:   userID,
		Resume:   doc,
		CachedAt: time.Now(),
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cached result: %w", err)
	}

	key := r.resultKey(userID)
	if err := r.client.Set(ctx, key, payload, r.config.Redis.CacheTTL).Err(); err != nil {
		r.logger.Error("Failed to cache generated resume", map[string]interface{}{
			"user_id": userID,
			"log_id":  logID,
			"error":   err.Error(),
		})
		return fmt.Errorf("failed to cache generated resume: %w", err)
	}

	return nil
}

// GetLatestResult returns the most recent cached generation for a user, or
// (nil, nil) when nothing is cached.
func (r *RedisClient) GetLatestResult(ctx context.Context, userID string) (*CachedResult, error) {
	payload, err := r.client.Get(ctx, r.resultKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached result: %w", err)
	}

	var entry CachedResult
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}

	return &entry, nil
}

// resultKey generates the Redis key holding a user's latest result
func (r *RedisClient) resultKey(userID string) string {
	return fmt.Sprintf("resume:result:%s", userID)
}

// IsHealthy checks if Redis is connected and healthy
func (r *RedisClient) IsHealthy(ctx context.Context) error {
	return r.Ping(ctx)
}
