// Package lock implements distributed account locks on Redis with the RedLock algorithm.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/commandhandler/pkg/lock"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

var ErrEmptyKeys = errors.New("lock: no keys to lock")

// Options tunes lock acquisition.
type Options struct {
	Expiry     time.Duration
	Tries      int
	RetryDelay time.Duration
}

// DefaultOptions suits operations that finish well within a few seconds.
func DefaultOptions() Options {
	return Options{
		Expiry:     8 * time.Second,
		Tries:      32,
		RetryDelay: 50 * time.Millisecond,
	}
}

// RedisLocker takes one redsync mutex per key.
type RedisLocker struct {
	rs     *redsync.Redsync
	prefix string
	opts   Options
	logger *slog.Logger
}

// NewRedisLocker creates a locker on top of an existing go-redis client.
func NewRedisLocker(client redis.UniversalClient, prefix string, opts Options, logger *slog.Logger) *RedisLocker {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultOptions()
	if opts.Expiry <= 0 {
		opts.Expiry = def.Expiry
	}
	if opts.Tries < 1 {
		opts.Tries = def.Tries
	}
	if opts.RetryDelay < 0 {
		opts.RetryDelay = def.RetryDelay
	}
	return &RedisLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		prefix: prefix,
		opts:   opts,
		logger: logger.With("component", "lock"),
	}
}

// WithLock acquires the keys in ascending order, runs fn, and releases them.
// If any key cannot be acquired the ones already held are released and the
// acquisition error is returned.
func (l *RedisLocker) WithLock(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	ordered := lock.Order(keys)
	if len(ordered) == 0 {
		return ErrEmptyKeys
	}

	held := make([]*redsync.Mutex, 0, len(ordered))
	defer func() {
		for i := len(held) - 1; i >= 0; i-- {
			if ok, err := held[i].UnlockContext(context.WithoutCancel(ctx)); !ok || err != nil {
				l.logger.Warn("failed to release lock", "key", held[i].Name(), "error", err)
			}
		}
	}()

	for _, key := range ordered {
		m := l.rs.NewMutex(
			l.prefix+"lock:"+key,
			redsync.WithExpiry(l.opts.Expiry),
			redsync.WithTries(l.opts.Tries),
			redsync.WithRetryDelay(l.opts.RetryDelay),
		)
		if err := m.LockContext(ctx); err != nil {
			return fmt.Errorf("lock: acquire %s: %w", key, err)
		}
		held = append(held, m)
	}

	return fn(ctx)
}

var _ lock.Locker = (*RedisLocker)(nil)
