package redis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore backs memConn with just enough of SET NX and the release script.
type memStore struct {
	mu   sync.Mutex
	keys map[string]string
	ttls map[string]int64
}

type memConn struct {
	store *memStore
}

func (c *memConn) Close() error { return nil }
func (c *memConn) Err() error   { return nil }

func (c *memConn) Send(string, ...interface{}) error { return nil }
func (c *memConn) Flush() error                      { return nil }
func (c *memConn) Receive() (interface{}, error)     { return nil, nil }

func (c *memConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	switch strings.ToUpper(cmd) {
	case "":
		return nil, nil
	case "SET":
		key, val := args[0].(string), args[1].(string)
		if _, ok := s.keys[key]; ok {
			return nil, nil
		}
		s.keys[key] = val
		s.ttls[key] = args[4].(int64)
		return "OK", nil
	case "EVALSHA":
		return nil, redis.Error("NOSCRIPT No matching script.")
	case "EVAL":
		key, token := args[2].(string), args[3].(string)
		if s.keys[key] != token {
			return int64(0), nil
		}
		delete(s.keys, key)
		return int64(1), nil
	}

	return nil, errors.New("unsupported command " + cmd)
}

func newTestLocks(t *testing.T) (*RunLocks, *memStore) {
	t.Helper()

	store := &memStore{keys: make(map[string]string), ttls: make(map[string]int64)}
	pool := &redis.Pool{
		Dial: func() (redis.Conn, error) {
			return &memConn{store: store}, nil
		},
	}
	t.Cleanup(func() { _ = pool.Close() })

	return NewRunLocks(pool, zap.NewNop().Sugar(), 10*time.Minute), store
}

func TestRunLocks(t *testing.T) {
	locks, store := newTestLocks(t)
	ctx := context.Background()

	release, ok, err := locks.Acquire(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(600000), store.ttls[lockPrefix+"user-1"])

	_, ok, err = locks.Acquire(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = locks.Acquire(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, ok)

	release()
	assert.NotContains(t, store.keys, lockPrefix+"user-1")

	_, ok, err = locks.Acquire(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunLocks_ReleaseKeepsForeignToken(t *testing.T) {
	locks, store := newTestLocks(t)

	release, ok, err := locks.Acquire(context.Background(), "user-1")
	require.NoError(t, err)
	require.True(t, ok)

	// The lock expired and another replica took it over.
	store.keys[lockPrefix+"user-1"] = "someone-else"

	release()
	assert.Equal(t, "someone-else", store.keys[lockPrefix+"user-1"])
}
