package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/commandhandler/infra"
	infra_cache "github.com/amirasaad/commandhandler/infra/cache"
	infra_eventbus "github.com/amirasaad/commandhandler/infra/eventbus"
	infra_lock "github.com/amirasaad/commandhandler/infra/lock"
	infra_repository "github.com/amirasaad/commandhandler/infra/repository"
	"github.com/amirasaad/commandhandler/pkg/config"
	"github.com/amirasaad/commandhandler/pkg/lock"
	"github.com/redis/go-redis/v9"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(ctx context.Context, cfg *config.App) (
	deps *config.Deps,
	err error,
) {
	logger := setupLogger(cfg.Log)
	deps = &config.Deps{Logger: logger, Config: cfg}

	var closers []func() error
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}
	deps.Close = closeAll
	defer func() {
		if err != nil {
			_ = closeAll()
		}
	}()

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	closers = append(closers, sqlDB.Close)

	if cfg.DB.Migrate {
		if err := infra.RunMigrations(db); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("Database migrations applied")
	}

	// Initialize outcome cache and lock
	var client redis.UniversalClient
	if cfg.Redis != nil && cfg.Redis.URL != "" {
		client, err = newRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		closers = append(closers, client.Close)
	}
	outcomeCache, locker := initOutcomeCacheAndLock(client, cfg, logger)

	// Initialize unit of work
	deps.Uow = infra_repository.NewUoW(db, infra_repository.WithOutcomeCache(outcomeCache))
	deps.Locker = locker

	// Initialize event bus
	bus, err := initEventBus(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	closers = append(closers, bus.Close)
	deps.Publisher = bus
	deps.Subscriber = bus

	return deps, nil
}

func newRedisClient(ctx context.Context, cfg *config.Redis) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opt.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opt.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opt.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opt)

	// Test the connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// initOutcomeCacheAndLock picks the Redis-backed outcome cache and lock when a
// client is available, otherwise a process-local cache and no lock.
func initOutcomeCacheAndLock(
	client redis.UniversalClient,
	cfg *config.App,
	logger *slog.Logger,
) (infra_repository.OutcomeCache, lock.Locker) {
	ttl := 24 * time.Hour
	prefix := ""
	if cfg.Redis != nil {
		if cfg.Redis.OutcomeTTL > 0 {
			ttl = cfg.Redis.OutcomeTTL
		}
		prefix = cfg.Redis.KeyPrefix
	}
	lockEnabled := cfg.Lock != nil && cfg.Lock.Enabled

	if client == nil {
		if lockEnabled {
			logger.Warn("⚠️ LOCK_ENABLED is set but Redis is not configured; relying on versioned updates only")
		}
		logger.Info("Using in-memory outcome cache", "ttl", ttl)
		return infra_cache.NewMemoryOutcomeCache(ttl), lock.Noop{}
	}

	var locker lock.Locker = lock.Noop{}
	if lockEnabled {
		locker = infra_lock.NewRedisLocker(client, prefix, infra_lock.Options{
			Expiry:     cfg.Lock.Expiry,
			Tries:      cfg.Lock.Tries,
			RetryDelay: cfg.Lock.RetryDelay,
		}, logger)
	}
	logger.Info("Using Redis outcome cache",
		"key_prefix", prefix,
		"ttl", ttl,
		"lock_enabled", lockEnabled,
	)
	return infra_cache.NewRedisOutcomeCache(client, prefix, ttl, logger), locker
}

func kafkaConfig(cfg *config.App) *infra_eventbus.KafkaConfig {
	k := cfg.Kafka
	return &infra_eventbus.KafkaConfig{
		Brokers:       k.Brokers,
		GroupID:       k.GroupID,
		ClientID:      k.ClientID,
		BatchTimeout:  k.BatchTimeout,
		Retry:         infra_eventbus.RetryPolicy{Initial: k.RetryInitial, Max: k.RetryMax},
		DLQSuffix:     k.DLQSuffix,
		SASLUsername:  k.SASLUsername,
		SASLPassword:  k.SASLPassword,
		TLSEnabled:    k.TLSEnabled,
		TLSCAFile:     k.TLSCAFile,
		TLSCertFile:   k.TLSCertFile,
		TLSKeyFile:    k.TLSKeyFile,
		TLSSkipVerify: k.TLSSkipVerify,
	}
}

func initEventBus(ctx context.Context, cfg *config.App, logger *slog.Logger) (*infra_eventbus.KafkaBus, error) {
	if cfg.Kafka == nil || cfg.Topics == nil {
		return nil, errors.New("kafka and topic configuration are required")
	}
	bus, err := infra_eventbus.NewWithKafka(ctx, kafkaConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka event bus: %w", err)
	}

	t := cfg.Topics
	topics := []string{
		t.ConfirmAccountCreation,
		t.ConfirmMoneyTransfer,
		t.AccountCreationFeedback,
		t.MoneyTransferFeedback,
		t.BalanceChanged,
	}
	if cfg.Kafka.DLQSuffix != "" {
		topics = append(topics,
			t.ConfirmAccountCreation+cfg.Kafka.DLQSuffix,
			t.ConfirmMoneyTransfer+cfg.Kafka.DLQSuffix,
		)
	}
	if err := bus.EnsureTopics(ctx, topics...); err != nil {
		// brokers with auto topic creation still work
		logger.Warn("Failed to ensure Kafka topics", "error", err)
	}
	return bus, nil
}
