// Package cache holds Redis-backed repositories.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// presenceKey is the hash mapping user IDs to their last activity (unix seconds)
const presenceKey = "penny:presence:last_active"

// PresenceRepository implements domain.PresenceRepository using a Redis hash
type PresenceRepository struct {
	client *redis.Client
	ctx    context.Context
	logger zerolog.Logger
}

// NewPresenceRepository connects to Redis and verifies the connection
func NewPresenceRepository(addr, password string, db int) (*PresenceRepository, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger := log.With().Str("component", "presence").Str("addr", addr).Logger()
	logger.Debug().Int("db", db).Msg("Connected to Redis")

	return &PresenceRepository{client: rdb, ctx: ctx, logger: logger}, nil
}

// Touch records that a user was active at the given time
func (r *PresenceRepository) Touch(userID int32, at time.Time) error {
	return r.client.HSet(r.ctx, presenceKey, strconv.Itoa(int(userID)), at.Unix()).Err()
}

// LastSeen returns the last activity of each user that has one recorded
func (r *PresenceRepository) LastSeen(userIDs []int32) (map[int32]time.Time, error) {
	result := make(map[int32]time.Time, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	fields := make([]string, len(userIDs))
	for i, id := range userIDs {
		fields[i] = strconv.Itoa(int(id))
	}

	values, err := r.client.HMGet(r.ctx, presenceKey, fields...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		unix, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			r.logger.Warn().Err(err).Int32("user_id", userIDs[i]).Msg("Skipping malformed presence entry")
			continue
		}
		result[userIDs[i]] = time.Unix(unix, 0).UTC()
	}
	return result, nil
}

// Close releases the Redis connection
func (r *PresenceRepository) Close() error {
	return r.client.Close()
}
