// Package transfer decides ConfirmMoneyTransfer commands.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/commandhandler/pkg/domain"
	"github.com/amirasaad/commandhandler/pkg/domain/account"
	"github.com/amirasaad/commandhandler/pkg/domain/command"
	"github.com/amirasaad/commandhandler/pkg/domain/events"
	"github.com/amirasaad/commandhandler/pkg/handler/common"
	"github.com/amirasaad/commandhandler/pkg/lock"
	"github.com/amirasaad/commandhandler/pkg/repository"
	"github.com/google/uuid"
)

// Engine validates and settles money transfers. Every command id is decided
// once; later deliveries replay the stored verdict without touching balances.
type Engine struct {
	uow    repository.UnitOfWork
	locker lock.Locker
	now    func() time.Time
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocker serialises transfers touching the same accounts across processes.
func WithLocker(l lock.Locker) Option {
	return func(e *Engine) {
		if l != nil {
			e.locker = l
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates a money transfer engine.
func New(uow repository.UnitOfWork, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		uow:    uow,
		locker: lock.Noop{},
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle returns the records produced by cmd: the failed feedback alone, or
// up to two balance changes followed by the confirmed feedback. Errors are
// infrastructure failures; nothing was committed and the command should be
// retried.
//
// Balance changes are kept in the outbox until Published is called, so a
// redelivered command re-emits the ones that never went out ahead of its
// replayed feedback.
func (e *Engine) Handle(ctx context.Context, cmd command.ConfirmMoneyTransfer) ([]events.Record, error) {
	log := e.logger.With(
		"handler", "MoneyTransfer",
		"command_id", cmd.CommandID,
		"from", cmd.From,
		"to", cmd.To,
		"amount", cmd.Amount,
	)

	outcomes, err := common.GetTransferOutcomeRepository(e.uow, log)
	if err != nil {
		return nil, err
	}
	existing, err := outcomes.Get(ctx, cmd.CommandID)
	switch {
	case err == nil:
		log.Info("🔁 [REPLAY] command already decided", "reason", existing.FailureReason)
		return e.replay(ctx, existing, log)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("transfer: lookup outcome: %w", err)
	}

	var records []events.Record
	decide := func(ctx context.Context) error {
		return e.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			recs, reason, err := e.settle(ctx, uow, cmd, log)
			if err != nil {
				return err
			}
			outcomes, err := common.GetTransferOutcomeRepository(uow, log)
			if err != nil {
				return err
			}
			if err := outcomes.Create(ctx, &command.TransferOutcome{
				CommandID:     cmd.CommandID,
				FailureReason: reason,
				DecidedAt:     e.now(),
			}); err != nil {
				return fmt.Errorf("transfer: insert outcome: %w", err)
			}
			if changes := balanceChanges(recs); len(changes) > 0 {
				outbox, err := common.GetOutboxRepository(uow, log)
				if err != nil {
					return err
				}
				if err := outbox.Add(ctx, cmd.CommandID, changes); err != nil {
					return fmt.Errorf("transfer: store balance changes: %w", err)
				}
			}
			records = recs
			return nil
		})
	}

	keys := lockKeys(cmd)
	if len(keys) == 0 {
		err = decide(ctx)
	} else {
		err = e.locker.WithLock(ctx, keys, decide)
	}
	if err != nil {
		log.Error("money transfer failed", "error", err)
		return nil, err
	}

	log.Info("✅ money transfer decided", "records", len(records))
	return records, nil
}

// Published marks the balance changes of commandID as delivered.
func (e *Engine) Published(ctx context.Context, commandID uuid.UUID) error {
	outbox, err := common.GetOutboxRepository(e.uow, e.logger)
	if err != nil {
		return err
	}
	if err := outbox.MarkPublished(ctx, commandID); err != nil {
		return fmt.Errorf("transfer: mark %s published: %w", commandID, err)
	}
	return nil
}

// settle validates cmd and applies it to the balances. A non-empty reason
// means the transfer was rejected and nothing was changed.
func (e *Engine) settle(
	ctx context.Context,
	uow repository.UnitOfWork,
	cmd command.ConfirmMoneyTransfer,
	log *slog.Logger,
) ([]events.Record, string, error) {
	reject := func(err error) ([]events.Record, string, error) {
		log.Info("❌ [FAIL] money transfer rejected", "reason", err)
		return []events.Record{events.NewMoneyTransferFailed(cmd.CommandID, err.Error())}, err.Error(), nil
	}

	if !account.IsValidSource(cmd.From) {
		return reject(account.ErrInvalidSource)
	}
	if cmd.From == cmd.To {
		return reject(account.ErrSameAccount)
	}

	balances, err := common.GetBalanceRepository(uow, log)
	if err != nil {
		return nil, "", err
	}
	from, err := loadOpen(ctx, balances, cmd.From)
	if err != nil {
		return nil, "", err
	}
	to, err := loadOpen(ctx, balances, cmd.To)
	if err != nil {
		return nil, "", err
	}

	// both sides are checked before anything is written
	now := e.now()
	if from != nil {
		if err := from.Authorize(cmd.Token); err != nil {
			return reject(err)
		}
		if err := from.Debit(cmd.Amount, now); err != nil {
			return reject(err)
		}
	} else if account.IsValidIBAN(cmd.From) {
		log.Warn("source account has no balance, nothing debited")
	}
	if to != nil {
		if err := to.Credit(cmd.Amount, now); err != nil {
			return reject(err)
		}
	} else if account.IsValidIBAN(cmd.To) {
		log.Warn("destination account has no balance, nothing credited")
	}

	var records []events.Record
	if from != nil {
		if err := balances.Update(ctx, from); err != nil {
			return nil, "", fmt.Errorf("transfer: debit %s: %w", cmd.From, err)
		}
		records = append(records, events.NewBalanceChanged(from.AccountID, from.Amount, -cmd.Amount, cmd.To, cmd.Description))
	}
	if to != nil {
		if err := balances.Update(ctx, to); err != nil {
			return nil, "", fmt.Errorf("transfer: credit %s: %w", cmd.To, err)
		}
		records = append(records, events.NewBalanceChanged(to.AccountID, to.Amount, cmd.Amount, cmd.From, cmd.Description))
	}

	return append(records, events.NewMoneyTransferConfirmed(cmd.CommandID)), "", nil
}

// loadOpen returns the balance of an open IBAN, or nil when accountID is not
// an open IBAN or has no balance row.
func loadOpen(
	ctx context.Context,
	balances repository.BalanceRepository,
	accountID string,
) (*account.Balance, error) {
	if !account.IsValidIBAN(accountID) {
		return nil, nil
	}
	b, err := balances.Get(ctx, accountID)
	switch {
	case err == nil:
		return b, nil
	case errors.Is(err, domain.ErrNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("transfer: lookup %s: %w", accountID, err)
	}
}

// lockKeys lists the open accounts a transfer may touch.
func lockKeys(cmd command.ConfirmMoneyTransfer) []string {
	var keys []string
	for _, id := range []string{cmd.From, cmd.To} {
		if account.IsValidIBAN(id) {
			keys = append(keys, id)
		}
	}
	return lock.Order(keys)
}

func balanceChanges(records []events.Record) []events.Record {
	var changes []events.Record
	for _, r := range records {
		if r.Kind == events.KindBalanceChanged {
			changes = append(changes, r)
		}
	}
	return changes
}

// replay rebuilds the feedback of a decided command, preceded by any of its
// balance changes that were never published.
func (e *Engine) replay(ctx context.Context, o *command.TransferOutcome, log *slog.Logger) ([]events.Record, error) {
	if !o.Succeeded() {
		return []events.Record{events.NewMoneyTransferFailed(o.CommandID, o.FailureReason)}, nil
	}
	outbox, err := common.GetOutboxRepository(e.uow, log)
	if err != nil {
		return nil, err
	}
	pending, err := outbox.Pending(ctx, o.CommandID)
	if err != nil {
		return nil, fmt.Errorf("transfer: load pending balance changes: %w", err)
	}
	if len(pending) > 0 {
		log.Warn("🔁 [REPLAY] re-emitting unpublished balance changes", "records", len(pending))
	}
	return append(pending, events.NewMoneyTransferConfirmed(o.CommandID)), nil
}
