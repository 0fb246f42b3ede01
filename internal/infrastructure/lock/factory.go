package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rentflow/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// RunLock is the lock contract shared by both implementations
type RunLock interface {
	TryAcquire(ctx context.Context, key string) (func(context.Context) error, bool, error)
}

var (
	_ RunLock = (*RedisRunLock)(nil)
	_ RunLock = (*MemoryRunLock)(nil)
)

// Factory creates run locks based on configuration
type Factory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory lock when Redis is unavailable.
// Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, ttl time.Duration, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a Redis lock when Redis is enabled and reachable, the in-memory lock otherwise.
// The returned client is nil for the in-memory lock; the caller closes it on shutdown.
func (f *Factory) Create(ctx context.Context) (RunLock, *redis.Client, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory run lock")
		return NewMemoryRunLock(f.ttl), nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		if !f.allowInMemoryFallback {
			return nil, nil, fmt.Errorf("redis required for run lock but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory run lock. "+
			"Several instances may then run the same generation; the unique period index still prevents duplicate bills.",
			zap.Error(err))
		return NewMemoryRunLock(f.ttl), nil, nil
	}

	f.logger.Info("Using Redis run lock", zap.String("addr", f.redisConfig.Addr()))
	return NewRedisRunLock(client, f.ttl, DefaultKeyPrefix), client, nil
}
