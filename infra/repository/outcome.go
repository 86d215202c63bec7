package repository

import (
	"context"

	"github.com/amirasaad/commandhandler/pkg/domain/command"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type creationOutcomeRepository struct {
	db    *gorm.DB
	cache OutcomeCache
}

func (r *creationOutcomeRepository) Get(ctx context.Context, commandID uuid.UUID) (*command.CreationOutcome, error) {
	if o, ok := r.cache.GetCreation(ctx, commandID); ok {
		return o, nil
	}
	var m CreationOutcome
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Where("command_id = ?", commandID).Take(&m).Error
	}); err != nil {
		return nil, err
	}
	o := m.toDomain()
	r.cache.SetCreation(ctx, o)
	return o, nil
}

func (r *creationOutcomeRepository) Create(ctx context.Context, outcome *command.CreationOutcome) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(toCreationOutcomeModel(outcome)).Error
	})
}

type transferOutcomeRepository struct {
	db    *gorm.DB
	cache OutcomeCache
}

func (r *transferOutcomeRepository) Get(ctx context.Context, commandID uuid.UUID) (*command.TransferOutcome, error) {
	if o, ok := r.cache.GetTransfer(ctx, commandID); ok {
		return o, nil
	}
	var m TransferOutcome
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Where("command_id = ?", commandID).Take(&m).Error
	}); err != nil {
		return nil, err
	}
	o := m.toDomain()
	r.cache.SetTransfer(ctx, o)
	return o, nil
}

func (r *transferOutcomeRepository) Create(ctx context.Context, outcome *command.TransferOutcome) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(toTransferOutcomeModel(outcome)).Error
	})
}
