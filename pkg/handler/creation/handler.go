// Package creation decides ConfirmAccountCreation commands.
package creation

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
	"github.com/amirasaad/commandhandler/pkg/repository"
)

// Engine allocates accounts. Every command id is decided once; later
// deliveries replay the stored decision.
type Engine struct {
	uow          repository.UnitOfWork
	gen          account.Generator
	defaultLimit int64
	now          func() time.Time
	logger       *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithDefaultLimit overrides the limit given to new accounts.
func WithDefaultLimit(limit int64) Option {
	return func(e *Engine) { e.defaultLimit = limit }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an account creation engine.
func New(uow repository.UnitOfWork, gen account.Generator, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if gen == nil {
		gen = account.RandomGenerator{}
	}
	e := &Engine{
		uow:          uow,
		gen:          gen,
		defaultLimit: account.DefaultLimit,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle returns exactly one feedback record for cmd. Errors are
// infrastructure failures; the command should be retried.
func (e *Engine) Handle(ctx context.Context, cmd command.ConfirmAccountCreation) ([]events.Record, error) {
	log := e.logger.With(
		"handler", "AccountCreation",
		"command_id", cmd.CommandID,
	)

	outcomes, err := common.GetCreationOutcomeRepository(e.uow, log)
	if err != nil {
		return nil, err
	}
	existing, err := outcomes.Get(ctx, cmd.CommandID)
	switch {
	case err == nil:
		log.Info("🔁 [REPLAY] command already decided", "account_id", existing.AccountID)
		return []events.Record{replay(existing)}, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("creation: lookup outcome: %w", err)
	}

	var record events.Record
	err = e.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		balances, err := common.GetBalanceRepository(uow, log)
		if err != nil {
			return err
		}
		outcomes, err := common.GetCreationOutcomeRepository(uow, log)
		if err != nil {
			return err
		}

		now := e.now()
		iban := e.gen.NewIBAN()
		outcome := &command.CreationOutcome{
			CommandID:   cmd.CommandID,
			AccountType: cmd.AccountType,
			DecidedAt:   now,
		}

		_, err = balances.Get(ctx, iban)
		switch {
		case err == nil:
			log.Warn("❌ [FAIL] generated iban already in use", "account_id", iban)
			outcome.FailureReason = account.ErrIBANCollision.Error()
			record = events.NewAccountCreationFailed(cmd.CommandID, outcome.FailureReason)
		case errors.Is(err, domain.ErrNotFound):
			token := e.gen.NewToken()
			balance, err := account.New().
				WithAccountID(iban).
				WithToken(token).
				WithAccountType(cmd.AccountType).
				WithLimit(e.defaultLimit).
				WithCreatedAt(now).
				WithUpdatedAt(now).
				Build()
			if err != nil {
				return err
			}
			if err := balances.Create(ctx, balance); err != nil {
				return fmt.Errorf("creation: insert balance: %w", err)
			}
			outcome.AccountID = iban
			outcome.Token = token
			record = events.NewAccountCreationConfirmed(cmd.CommandID, iban, token, cmd.AccountType)
		default:
			return fmt.Errorf("creation: lookup balance: %w", err)
		}

		if err := outcomes.Create(ctx, outcome); err != nil {
			return fmt.Errorf("creation: insert outcome: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("account creation failed", "error", err)
		return nil, err
	}

	log.Info("✅ account creation decided", "kind", record.Kind)
	return []events.Record{record}, nil
}

func replay(o *command.CreationOutcome) events.Record {
	if o.Succeeded() {
		return events.NewAccountCreationConfirmed(o.CommandID, o.AccountID, o.Token, o.AccountType)
	}
	return events.NewAccountCreationFailed(o.CommandID, o.FailureReason)
}
