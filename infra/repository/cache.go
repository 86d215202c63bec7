package repository

import (
	"context"

	"github.com/amirasaad/commandhandler/pkg/domain/command"
	"github.com/google/uuid"
)

// OutcomeCache is a read-through cache for committed outcomes. Outcomes never
// change once written, so entries need no invalidation. Implementations
// report a miss on any failure.
type OutcomeCache interface {
	GetCreation(ctx context.Context, commandID uuid.UUID) (*command.CreationOutcome, bool)
	SetCreation(ctx context.Context, outcome *command.CreationOutcome)
	GetTransfer(ctx context.Context, commandID uuid.UUID) (*command.TransferOutcome, bool)
	SetTransfer(ctx context.Context, outcome *command.TransferOutcome)
}

type noopCache struct{}

func (noopCache) GetCreation(context.Context, uuid.UUID) (*command.CreationOutcome, bool) {
	return nil, false
}
func (noopCache) SetCreation(context.Context, *command.CreationOutcome) {}
func (noopCache) GetTransfer(context.Context, uuid.UUID) (*command.TransferOutcome, bool) {
	return nil, false
}
func (noopCache) SetTransfer(context.Context, *command.TransferOutcome) {}
