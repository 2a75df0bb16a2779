package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/golf-edge-service/internal/models"
)

const reportKeyPrefix = "edges:report:"

// ErrNotFound is returned when no report is cached for an event
var ErrNotFound = errors.New("report not found in cache")

// RedisCache caches ranked edge reports in Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 30 * time.Minute
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

func reportKey(eventID string) string {
	return reportKeyPrefix + eventID
}

// SetReport caches the latest report for its event, replacing any earlier one
func (c *RedisCache) SetReport(ctx context.Context, report *models.Report) error {
	if report.EventID == "" {
		return fmt.Errorf("report has no event id")
	}
	key := reportKey(report.EventID)

	// Serialize to JSON
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	// Set in Redis with TTL
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Int("records", len(report.Records)).
		Dur("ttl", c.ttl).
		Msg("cached edge report")

	return nil
}

// GetReport retrieves the cached report for an event
func (c *RedisCache) GetReport(ctx context.Context, eventID string) (*models.Report, error) {
	data, err := c.client.Get(ctx, reportKey(eventID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	// Deserialize
	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}

// ListEvents returns the ids of events with a cached report, sorted
func (c *RedisCache) ListEvents(ctx context.Context) ([]string, error) {
	pattern := reportKeyPrefix + "*"

	// Scan for keys matching pattern
	var cursor uint64
	var events []string

	for {
		var scanKeys []string
		var err error
		scanKeys, cursor, err = c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys: %w", err)
		}

		for _, key := range scanKeys {
			events = append(events, strings.TrimPrefix(key, reportKeyPrefix))
		}

		if cursor == 0 {
			break
		}
	}

	sort.Strings(events)
	return events, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
