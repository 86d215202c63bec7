package common

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"
)

// InflightGuard serialises concurrent work on the same command id inside one
// process. Durable deduplication lives in the outcome stores; the guard only
// keeps two deliveries of one command from racing each other to decide it.
type InflightGuard struct {
	inflight singleflight.Group
	logger   *slog.Logger
}

// NewInflightGuard creates a new in-flight guard.
func NewInflightGuard(logger *slog.Logger) *InflightGuard {
	if logger == nil {
		logger = slog.Default()
	}
	return &InflightGuard{logger: logger}
}

// Do runs fn once no other call for key is in flight. A caller that arrives
// while another run is in progress waits for it to finish and then runs its
// own fn, so every caller observes the result of its own fn.
func (g *InflightGuard) Do(ctx context.Context, key string, fn func() error) error {
	if key == "" {
		return fn()
	}
	for {
		executed := false
		_, err, shared := g.inflight.Do(key, func() (any, error) {
			executed = true
			return nil, fn()
		})
		if executed {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		g.logger.Debug("🔁 waited for in-flight command, running again", "key", key, "shared", shared)
	}
}
