package sessionlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
	redisclient "github.com/KirkDiggler/lumina-api/internal/redis"
)

const (
	// Key pattern: session_log:{session_id}
	logKeyPrefix = "session_log:"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	// TTL is refreshed on every append (optional, defaults to DefaultTTL)
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedisRepository creates a Redis repository. Each session log is a list
// appended with RPUSH, so list order is insertion order.
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    cfg.TTL,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Append adds an entry to the end of the session's log and refreshes the TTL
func (r *redisRepository) Append(ctx context.Context, input *AppendInput) (*AppendOutput, error) {
	if err := validateAppend(input); err != nil {
		return nil, err
	}

	entryJSON, err := json.Marshal(input.Entry)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal log entry")
	}

	key := r.buildKey(input.SessionID)

	var push *redis.IntCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		push = pipe.RPush(ctx, key, entryJSON)
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to append log entry in Redis")
	}

	return &AppendOutput{Length: push.Val()}, nil
}

// List returns every entry of the session's log in insertion order
func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	raw, err := r.client.LRange(ctx, r.buildKey(input.SessionID), 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to read log from Redis")
	}

	entries := make([]*transformation.LogEntry, 0, len(raw))
	for i, item := range raw {
		var entry transformation.LogEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal log entry %d", i)
		}
		entries = append(entries, &entry)
	}

	return &ListOutput{Entries: entries}, nil
}

// Clear removes the session's log
func (r *redisRepository) Clear(ctx context.Context, input *ClearInput) (*ClearOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	key := r.buildKey(input.SessionID)

	var length *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		length = pipe.LLen(ctx, key)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to clear log in Redis")
	}

	return &ClearOutput{EntriesDeleted: length.Val()}, nil
}

// buildKey creates the Redis key for a session log
func (r *redisRepository) buildKey(sessionID string) string {
	return fmt.Sprintf("%s%s", logKeyPrefix, sessionID)
}
