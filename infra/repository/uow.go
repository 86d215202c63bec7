package repository

import (
	"context"

	"github.com/amirasaad/commandhandler/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one abstraction.
// Repositories taken from the UoW handed to Do share its transaction.
type UoW struct {
	db    *gorm.DB
	tx    *gorm.DB
	cache OutcomeCache
}

// Option configures a UoW.
type Option func(*UoW)

// WithOutcomeCache puts a read-through cache in front of outcome lookups.
func WithOutcomeCache(c OutcomeCache) Option {
	return func(u *UoW) {
		if c != nil {
			u.cache = c
		}
	}
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB, opts ...Option) *UoW {
	u := &UoW{db: db, cache: noopCache{}}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Do runs fn in a transaction. Nested calls join the outer transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, cache: u.cache})
	})
}

func (u *UoW) BalanceRepository() (repository.BalanceRepository, error) {
	return &balanceRepository{db: u.session(), forUpdate: u.tx != nil}, nil
}

func (u *UoW) CreationOutcomeRepository() (repository.CreationOutcomeRepository, error) {
	return &creationOutcomeRepository{db: u.session(), cache: u.cache}, nil
}

func (u *UoW) TransferOutcomeRepository() (repository.TransferOutcomeRepository, error) {
	return &transferOutcomeRepository{db: u.session(), cache: u.cache}, nil
}

func (u *UoW) OutboxRepository() (repository.OutboxRepository, error) {
	return &outboxRepository{db: u.session()}, nil
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

var _ repository.UnitOfWork = (*UoW)(nil)
