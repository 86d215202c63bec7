package repository

import (
	"context"
)

// UnitOfWork defines the contract for transactional work and repository access.
//
// Repositories obtained from the UnitOfWork passed to Do share one transaction, so a
// balance mutation and the outcome row that records it commit or roll back together.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary.
	// If fn returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	BalanceRepository() (BalanceRepository, error)
	CreationOutcomeRepository() (CreationOutcomeRepository, error)
	TransferOutcomeRepository() (TransferOutcomeRepository, error)
	OutboxRepository() (OutboxRepository, error)
}
