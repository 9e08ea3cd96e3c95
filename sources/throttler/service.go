package throttler

import (
	"context"
	"fmt"
	"time"

	"chatmesh/sources/metrics"
	"chatmesh/sources/platform"
	"chatmesh/sources/tracing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type ThrottlerConfig struct {
	Enable   bool
	Interval time.Duration
}

func NewThrottlerConfig() *ThrottlerConfig {
	return &ThrottlerConfig{
		Enable:   platform.GetAsBool("SLOWMODE_ENABLE", false),
		Interval: platform.GetAsDuration("SLOWMODE_INTERVAL", "3s"),
	}
}

// ThrottlerService rate-limits chat per sender with a redis SETNX window. The
// first message claims the window, later messages within it are rejected.
type ThrottlerService struct {
	config  *ThrottlerConfig
	redis   *redis.Client
	metrics *metrics.MetricsService
}

func NewThrottlerService(config *ThrottlerConfig, redis *redis.Client, metrics *metrics.MetricsService) *ThrottlerService {
	return &ThrottlerService{config: config, redis: redis, metrics: metrics}
}

// IsAllowed reports whether the sender may chat right now. Redis failures do
// not block chat.
func (x *ThrottlerService) IsAllowed(logger *tracing.Logger, id uuid.UUID) bool {
	if !x.config.Enable {
		return true
	}

	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	key := fmt.Sprintf("slowmode:%s", id)
	claimed, err := x.redis.SetNX(ctx, key, "1", x.config.Interval).Result()
	if err != nil {
		logger.W("Slowmode window check failed, letting the message through", tracing.InnerError, err.Error(), tracing.UserId, id.String())
		return true
	}

	if !claimed {
		x.metrics.RecordMessageThrottled()
	}
	return claimed
}
