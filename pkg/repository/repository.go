package repository

import (
	"context"

	"github.com/amirasaad/commandhandler/pkg/domain/account"
	"github.com/amirasaad/commandhandler/pkg/domain/command"
	"github.com/amirasaad/commandhandler/pkg/domain/events"
	"github.com/google/uuid"
)

// BalanceRepository defines data access for account balances.
type BalanceRepository interface {
	// Get returns the balance for an IBAN or domain.ErrNotFound.
	Get(ctx context.Context, accountID string) (*account.Balance, error)
	// Create inserts a new balance. A duplicate IBAN yields domain.ErrAlreadyExists.
	Create(ctx context.Context, balance *account.Balance) error
	// Update persists amount and updatedAt if the stored version still equals
	// balance.Version, then increments balance.Version. A stale version yields
	// domain.ErrConcurrentUpdate.
	Update(ctx context.Context, balance *account.Balance) error
}

// CreationOutcomeRepository stores the decisions taken for account creation commands.
type CreationOutcomeRepository interface {
	// Get returns the outcome for a command id or domain.ErrNotFound.
	Get(ctx context.Context, commandID uuid.UUID) (*command.CreationOutcome, error)
	// Create inserts the outcome. Outcomes are immutable.
	Create(ctx context.Context, outcome *command.CreationOutcome) error
}

// TransferOutcomeRepository stores the verdicts of money transfer commands.
type TransferOutcomeRepository interface {
	// Get returns the outcome for a command id or domain.ErrNotFound.
	Get(ctx context.Context, commandID uuid.UUID) (*command.TransferOutcome, error)
	// Create inserts the outcome. Outcomes are immutable.
	Create(ctx context.Context, outcome *command.TransferOutcome) error
}

// OutboxRepository keeps the notifications produced by a decision until they
// were published, so a delivery that failed after commit can be completed.
type OutboxRepository interface {
	// Add stores records for commandID. Call it inside the unit of work that
	// produced them.
	Add(ctx context.Context, commandID uuid.UUID, records []events.Record) error
	// Pending returns the unpublished records of commandID in insertion order.
	Pending(ctx context.Context, commandID uuid.UUID) ([]events.Record, error)
	// MarkPublished flags every pending record of commandID as published.
	MarkPublished(ctx context.Context, commandID uuid.UUID) error
}
