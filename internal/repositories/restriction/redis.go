package restriction

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const restrictionKeyPrefix = "restriction:"

// ErrRestrictionNotFound is returned when a guild has no restriction set
var ErrRestrictionNotFound = errors.New("restriction not found")

// Config holds configuration for the Redis restriction repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed restriction repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// GetRestriction retrieves the restricted channel for a guild
func (r *redisRepository) GetRestriction(ctx context.Context, input *GetRestrictionInput) (*GetRestrictionOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	channelID, err := r.client.Get(ctx, restrictionKey(input.GuildID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRestrictionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get restriction: %w", err)
	}

	return &GetRestrictionOutput{ChannelID: channelID}, nil
}

// SetRestriction sets or replaces the restricted channel for a guild
func (r *redisRepository) SetRestriction(ctx context.Context, input *SetRestrictionInput) error {
	if input == nil || input.GuildID == "" || input.ChannelID == "" {
		return errors.New("input, guild ID and channel ID cannot be empty")
	}

	if err := r.client.Set(ctx, restrictionKey(input.GuildID), input.ChannelID, 0).Err(); err != nil {
		return fmt.Errorf("failed to set restriction: %w", err)
	}
	return nil
}

// RemoveRestriction clears the restriction for a guild. Removing a
// restriction that does not exist is a no-op.
func (r *redisRepository) RemoveRestriction(ctx context.Context, input *RemoveRestrictionInput) error {
	if input == nil || input.GuildID == "" {
		return errors.New("input and guild ID cannot be empty")
	}

	if err := r.client.Del(ctx, restrictionKey(input.GuildID)).Err(); err != nil {
		return fmt.Errorf("failed to remove restriction: %w", err)
	}
	return nil
}

// HasRestriction reports whether a guild has a restriction set
func (r *redisRepository) HasRestriction(ctx context.Context, input *HasRestrictionInput) (bool, error) {
	if input == nil || input.GuildID == "" {
		return false, errors.New("input and guild ID cannot be empty")
	}

	count, err := r.client.Exists(ctx, restrictionKey(input.GuildID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check restriction: %w", err)
	}
	return count > 0, nil
}

func restrictionKey(guildID string) string {
	return restrictionKeyPrefix + guildID
}
