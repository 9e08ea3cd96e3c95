package repository

import (
	"context"
	"fmt"

	"chatmesh/sources/platform"
	"chatmesh/sources/tracing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SpyingRepository keeps the command-spy toggle per moderator. The toggle is
// ephemeral operator state, so it lives in Redis rather than the relational
// store.
type SpyingRepository struct {
	redis *redis.Client
	log   *tracing.Logger
}

func NewSpyingRepository(redis *redis.Client, log *tracing.Logger) *SpyingRepository {
	return &SpyingRepository{redis: redis, log: log}
}

func (r *SpyingRepository) spyKey(id uuid.UUID) string {
	return fmt.Sprintf("commandspy:%s", id)
}

func (r *SpyingRepository) IsSpying(logger *tracing.Logger, id uuid.UUID) bool {
	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	value, err := r.redis.Get(ctx, r.spyKey(id)).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.E("Failed to get spy toggle from Redis", tracing.InnerError, err)
		return false
	}

	return value == "1"
}

func (r *SpyingRepository) SetSpying(logger *tracing.Logger, id uuid.UUID, spying bool) error {
	defer tracing.ProfilePoint(logger, "Spy toggle set completed", "repository.spying.set", tracing.UserId, id)()
	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	if !spying {
		if err := r.redis.Del(ctx, r.spyKey(id)).Err(); err != nil {
			logger.E("Failed to clear spy toggle in Redis", tracing.InnerError, err)
			return err
		}
		logger.I("Spy toggle cleared", tracing.UserId, id)
		return nil
	}

	if err := r.redis.Set(ctx, r.spyKey(id), "1", 0).Err(); err != nil {
		logger.E("Failed to set spy toggle in Redis", tracing.InnerError, err)
		return err
	}

	logger.I("Spy toggle set", tracing.UserId, id)
	return nil
}
