package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces run lock keys in Redis
const DefaultKeyPrefix = "rentflow:lock:"

// RedisRunLock implements a distributed run lock with redsync on top of go-redis.
// Suitable for deployments where several instances share one schedule.
type RedisRunLock struct {
	rs        *redsync.Redsync
	keyPrefix string
	ttl       time.Duration
}

// NewRedisRunLock creates a run lock on an existing Redis client.
// ttl must outlive the longest run; the lock expires on its own if the holder dies.
func NewRedisRunLock(client redis.UniversalClient, ttl time.Duration, keyPrefix string) *RedisRunLock {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisRunLock{
		rs:        redsync.New(goredis.NewPool(client)),
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// TryAcquire makes a single attempt to take the lock for key.
// A lock held by someone else is reported as acquired=false with a nil error.
func (l *RedisRunLock) TryAcquire(ctx context.Context, key string) (func(context.Context) error, bool, error) {
	mutex := l.rs.NewMutex(l.keyPrefix+key,
		redsync.WithExpiry(l.ttl),
		redsync.WithTries(1),
	)

	if err := mutex.TryLockContext(ctx); err != nil {
		if isTaken(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to acquire run lock %q: %w", key, err)
	}

	release := func(ctx context.Context) error {
		ok, err := mutex.UnlockContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to release run lock %q: %w", key, err)
		}
		if !ok {
			return fmt.Errorf("run lock %q was no longer held", key)
		}
		return nil
	}
	return release, true, nil
}

// isTaken separates "someone else holds it" from Redis being unreachable
func isTaken(err error) bool {
	var taken *redsync.ErrTaken
	var nodeTaken *redsync.ErrNodeTaken
	var redisErr *redsync.RedisError
	switch {
	case errors.As(err, &taken), errors.As(err, &nodeTaken):
		return true
	case errors.As(err, &redisErr):
		return false
	}
	return errors.Is(err, redsync.ErrFailed)
}
