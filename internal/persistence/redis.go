package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/connect-inmobiliaria/crm-service/internal/config"
)

const visitKeyPrefix = "stats:visits:"

// Redis wraps the go-redis client. It backs the per-day visit counter shown
// on the dashboard; every operation degrades to a zero value when the server
// is unreachable.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// IncrVisit bumps today's visit counter. The key expires after 48h so stale
// days clean themselves up.
func (r *Redis) IncrVisit(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	key := visitKey(time.Now())
	pipe := r.Client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 48*time.Hour)
	_, err := pipe.Exec(ctx)
	return err
}

// VisitsToday returns today's visit count, zero when unavailable.
func (r *Redis) VisitsToday(ctx context.Context) (int64, error) {
	if r == nil || r.Client == nil {
		return 0, errors.New("redis client not configured")
	}
	count, err := r.Client.Get(ctx, visitKey(time.Now())).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

func visitKey(t time.Time) string {
	return fmt.Sprintf("%s%s", visitKeyPrefix, t.Format("2006-01-02"))
}
