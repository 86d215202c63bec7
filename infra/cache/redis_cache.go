package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/commandhandler/infra/repository"
	"github.com/amirasaad/commandhandler/pkg/domain/command"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisOutcomeCache keeps decided outcomes in Redis. Failures are logged and
// reported as misses so the database stays the source of truth.
type RedisOutcomeCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisOutcomeCache creates a cache on top of an existing client.
func NewRedisOutcomeCache(
	client redis.UniversalClient,
	prefix string,
	ttl time.Duration,
	logger *slog.Logger,
) *RedisOutcomeCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisOutcomeCache{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (r *RedisOutcomeCache) key(kind string, id uuid.UUID) string {
	return r.prefix + "outcome:" + kind + ":" + id.String()
}

func (r *RedisOutcomeCache) GetCreation(ctx context.Context, commandID uuid.UUID) (*command.CreationOutcome, bool) {
	var o command.CreationOutcome
	if !r.get(ctx, r.key("creation", commandID), &o) {
		return nil, false
	}
	return &o, true
}

func (r *RedisOutcomeCache) SetCreation(ctx context.Context, outcome *command.CreationOutcome) {
	r.set(ctx, r.key("creation", outcome.CommandID), outcome)
}

func (r *RedisOutcomeCache) GetTransfer(ctx context.Context, commandID uuid.UUID) (*command.TransferOutcome, bool) {
	var o command.TransferOutcome
	if !r.get(ctx, r.key("transfer", commandID), &o) {
		return nil, false
	}
	return &o, true
}

func (r *RedisOutcomeCache) SetTransfer(ctx context.Context, outcome *command.TransferOutcome) {
	r.set(ctx, r.key("transfer", outcome.CommandID), outcome)
}

func (r *RedisOutcomeCache) get(ctx context.Context, key string, out any) bool {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "key", key)
		return false
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(val, out); err != nil {
		r.logger.Error("Redis cache unmarshal error", "key", key, "error", err)
		return false
	}
	r.logger.Debug("Redis cache hit", "key", key)
	return true
}

func (r *RedisOutcomeCache) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		r.logger.Error("Redis cache marshal error", "key", key, "error", err)
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "key", key, "error", err)
		return
	}
	r.logger.Debug("Redis cache set", "key", key, "ttl", r.ttl)
}

var _ repository.OutcomeCache = (*RedisOutcomeCache)(nil)
