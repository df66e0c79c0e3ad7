package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const lockPrefix = "materialize:lock:"

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(1, `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RunLocks hands out per-user locks so a batch run for a user happens on at
// most one replica at a time.
type RunLocks struct {
	pool   *redis.Pool
	logger *zap.SugaredLogger
	ttl    time.Duration
}

func NewRunLocks(pool *redis.Pool, logger *zap.SugaredLogger, ttl time.Duration) *RunLocks {
	return &RunLocks{
		pool:   pool,
		logger: logger,
		ttl:    ttl,
	}
}

// Acquire returns ok=false when another holder owns the lock. The returned
// release func is a no-op in that case.
func (l *RunLocks) Acquire(ctx context.Context, userID string) (release func(), ok bool, err error) {
	conn, err := l.pool.GetContext(ctx)
	if err != nil {
		return func() {}, false, fmt.Errorf("get redis connection: %w", err)
	}
	defer conn.Close()

	key := lockPrefix + userID
	token := uuid.NewString()

	_, err = redis.String(conn.Do("SET", key, token, "NX", "PX", l.ttl.Milliseconds()))
	if errors.Is(err, redis.ErrNil) {
		return func() {}, false, nil
	}
	if err != nil {
		return func() {}, false, fmt.Errorf("SET %v: %w", key, err)
	}

	release = func() {
		conn := l.pool.Get()
		defer conn.Close()

		if _, err := releaseScript.Do(conn, key, token); err != nil {
			l.logger.Errorw("failed to release run lock", "key", key, "err", err)
		}
	}

	return release, true, nil
}
