package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/commandhandler/pkg/eventbus"
	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds the delay between attempts at one message. Attempts never
// stop on their own: a message is either handled, skipped as poison, or the
// context ends.
type RetryPolicy struct {
	Initial time.Duration
	Max     time.Duration
}

// DefaultRetryPolicy returns the policy used when none is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Initial: 100 * time.Millisecond, Max: 10 * time.Second}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	def := DefaultRetryPolicy()
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.Initial
	if b.InitialInterval <= 0 {
		b.InitialInterval = def.Initial
	}
	b.MaxInterval = p.Max
	if b.MaxInterval <= 0 {
		b.MaxInterval = def.Max
	}
	b.MaxElapsedTime = 0
	return backoff.WithContext(b, ctx)
}

// deliver hands msg to handler until it succeeds or reports poison. Poison
// messages go to onPoison, which is retried the same way. The returned error
// is non-nil only when ctx ended first.
func deliver(
	ctx context.Context,
	logger *slog.Logger,
	policy RetryPolicy,
	msg eventbus.Message,
	handler eventbus.HandlerFunc,
	onPoison func(ctx context.Context, msg eventbus.Message, cause error) error,
) error {
	op := func() error {
		err := handler(ctx, msg)
		if err == nil {
			return nil
		}
		if errors.Is(err, eventbus.ErrPoison) {
			logger.Error("☠️ skipping poison message",
				"error", err,
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
			)
			if onPoison == nil {
				return nil
			}
			return onPoison(ctx, msg, err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn("message processing failed; will retry",
			"error", err,
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"retry_in", wait,
		)
	}
	if err := backoff.RetryNotify(op, policy.backOff(ctx), notify); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}
