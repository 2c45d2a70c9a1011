package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// RedisCache caches per-team briefings and optimized prompt templates in
// Redis. Every cache failure is advisory: callers fall through to the
// underlying source.
type RedisCache struct {
	client      *redis.Client
	briefingTTL time.Duration
	promptTTL   time.Duration
	logger      zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr        string // e.g., "localhost:6379"
	Password    string
	DB          int
	BriefingTTL time.Duration // e.g., 10 * time.Minute
	PromptTTL   time.Duration // e.g., 30 * time.Minute
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client:      client,
		briefingTTL: config.BriefingTTL,
		promptTTL:   config.PromptTTL,
		logger:      logger.With().Str("component", "redis_cache").Logger(),
	}
}

// SetBriefing caches one team's context briefing
func (c *RedisCache) SetBriefing(ctx context.Context, league, team string, briefing *models.TeamBriefing) error {
	// Redis key: briefing:{league}:{team}
	key := fmt.Sprintf("briefing:%s:%s", league, team)

	// Serialize to JSON
	data, err := json.Marshal(briefing)
	if err != nil {
		return fmt.Errorf("failed to marshal briefing: %w", err)
	}

	// Set in Redis with TTL
	if err := c.client.Set(ctx, key, data, c.briefingTTL).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", c.briefingTTL).
		Msg("cached team briefing")

	return nil
}

// GetBriefing retrieves a cached team briefing
func (c *RedisCache) GetBriefing(ctx context.Context, league, team string) (*models.TeamBriefing, error) {
	key := fmt.Sprintf("briefing:%s:%s", league, team)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("briefing not found in cache")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var briefing models.TeamBriefing
	if err := json.Unmarshal(data, &briefing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal briefing: %w", err)
	}

	return &briefing, nil
}

// SetPromptTemplate caches the optimization service's best template for a league
func (c *RedisCache) SetPromptTemplate(ctx context.Context, league string, tmpl *models.PromptTemplate) error {
	key := fmt.Sprintf("prompt:%s", league)

	data, err := json.Marshal(tmpl)
	if err != nil {
		return fmt.Errorf("failed to marshal prompt template: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.promptTTL).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", c.promptTTL).
		Msg("cached prompt template")

	return nil
}

// GetPromptTemplate retrieves the cached best template for a league
func (c *RedisCache) GetPromptTemplate(ctx context.Context, league string) (*models.PromptTemplate, error) {
	key := fmt.Sprintf("prompt:%s", league)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("prompt template not found in cache")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var tmpl models.PromptTemplate
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prompt template: %w", err)
	}

	return &tmpl, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
