// Package memory provides an in-process UnitOfWork for tests and local runs.
// Units of work are serialised and applied copy-on-commit, so a failed unit
// leaves no trace.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/amirasaad/commandhandler/pkg/domain"
	"github.com/amirasaad/commandhandler/pkg/domain/account"
	"github.com/amirasaad/commandhandler/pkg/domain/command"
	"github.com/amirasaad/commandhandler/pkg/domain/events"
	"github.com/amirasaad/commandhandler/pkg/repository"
	"github.com/google/uuid"
)

type outboxEntry struct {
	record    events.Record
	published bool
}

type state struct {
	balances  map[string]account.Balance
	creations map[uuid.UUID]command.CreationOutcome
	transfers map[uuid.UUID]command.TransferOutcome
	// entries are replaced, never mutated in place, so a shallow clone is enough
	outbox map[uuid.UUID][]outboxEntry
}

func (s *state) clone() *state {
	return &state{
		balances:  maps.Clone(s.balances),
		creations: maps.Clone(s.creations),
		transfers: maps.Clone(s.transfers),
		outbox:    maps.Clone(s.outbox),
	}
}

type store struct {
	txMu  sync.Mutex
	mu    sync.RWMutex
	state *state
}

// UoW implements repository.UnitOfWork on top of maps.
type UoW struct {
	store *store
	tx    *state // nil outside of Do
}

// New creates an empty in-memory unit of work.
func New() *UoW {
	return &UoW{store: &store{state: &state{
		balances:  make(map[string]account.Balance),
		creations: make(map[uuid.UUID]command.CreationOutcome),
		transfers: make(map[uuid.UUID]command.TransferOutcome),
		outbox:    make(map[uuid.UUID][]outboxEntry),
	}}}
}

// Do runs fn against a private copy of the state and publishes it only when fn succeeds.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	u.store.txMu.Lock()
	defer u.store.txMu.Unlock()

	u.store.mu.RLock()
	tx := &UoW{store: u.store, tx: u.store.state.clone()}
	u.store.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}

	u.store.mu.Lock()
	u.store.state = tx.tx
	u.store.mu.Unlock()
	return nil
}

func (u *UoW) BalanceRepository() (repository.BalanceRepository, error) {
	return &balanceRepository{uow: u}, nil
}

func (u *UoW) CreationOutcomeRepository() (repository.CreationOutcomeRepository, error) {
	return &creationOutcomeRepository{uow: u}, nil
}

func (u *UoW) TransferOutcomeRepository() (repository.TransferOutcomeRepository, error) {
	return &transferOutcomeRepository{uow: u}, nil
}

func (u *UoW) OutboxRepository() (repository.OutboxRepository, error) {
	return &outboxRepository{uow: u}, nil
}

// Seed stores balances directly, bypassing versioning. Intended for test setup.
func (u *UoW) Seed(balances ...*account.Balance) {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for _, b := range balances {
		u.store.state.balances[b.AccountID] = *b
	}
}

// Balances returns a snapshot of all committed balances.
func (u *UoW) Balances() map[string]account.Balance {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	return maps.Clone(u.store.state.balances)
}

// OutcomeCount returns the number of committed creation and transfer outcomes.
func (u *UoW) OutcomeCount() (creations, transfers int) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	return len(u.store.state.creations), len(u.store.state.transfers)
}

// read runs fn against the transaction state, or the committed state outside a transaction.
func (u *UoW) read(fn func(s *state)) {
	if u.tx != nil {
		fn(u.tx)
		return
	}
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	fn(u.store.state)
}

// write runs fn inside the current transaction, or inside its own one.
func (u *UoW) write(ctx context.Context, fn func(s *state) error) error {
	return u.Do(ctx, func(tx repository.UnitOfWork) error {
		return fn(tx.(*UoW).tx)
	})
}

type balanceRepository struct {
	uow *UoW
}

func (r *balanceRepository) Get(_ context.Context, accountID string) (*account.Balance, error) {
	var (
		b  account.Balance
		ok bool
	)
	r.uow.read(func(s *state) { b, ok = s.balances[accountID] })
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (r *balanceRepository) Create(ctx context.Context, balance *account.Balance) error {
	return r.uow.write(ctx, func(s *state) error {
		if _, exists := s.balances[balance.AccountID]; exists {
			return domain.ErrAlreadyExists
		}
		s.balances[balance.AccountID] = *balance
		return nil
	})
}

func (r *balanceRepository) Update(ctx context.Context, balance *account.Balance) error {
	return r.uow.write(ctx, func(s *state) error {
		stored, exists := s.balances[balance.AccountID]
		if !exists {
			return domain.ErrNotFound
		}
		if stored.Version != balance.Version {
			return domain.ErrConcurrentUpdate
		}
		stored.Amount = balance.Amount
		stored.UpdatedAt = balance.UpdatedAt
		stored.Version++
		s.balances[balance.AccountID] = stored
		balance.Version = stored.Version
		return nil
	})
}

type creationOutcomeRepository struct {
	uow *UoW
}

func (r *creationOutcomeRepository) Get(_ context.Context, commandID uuid.UUID) (*command.CreationOutcome, error) {
	var (
		o  command.CreationOutcome
		ok bool
	)
	r.uow.read(func(s *state) { o, ok = s.creations[commandID] })
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (r *creationOutcomeRepository) Create(ctx context.Context, outcome *command.CreationOutcome) error {
	return r.uow.write(ctx, func(s *state) error {
		if _, exists := s.creations[outcome.CommandID]; exists {
			return domain.ErrAlreadyExists
		}
		s.creations[outcome.CommandID] = *outcome
		return nil
	})
}

type transferOutcomeRepository struct {
	uow *UoW
}

func (r *transferOutcomeRepository) Get(_ context.Context, commandID uuid.UUID) (*command.TransferOutcome, error) {
	var (
		o  command.TransferOutcome
		ok bool
	)
	r.uow.read(func(s *state) { o, ok = s.transfers[commandID] })
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (r *transferOutcomeRepository) Create(ctx context.Context, outcome *command.TransferOutcome) error {
	return r.uow.write(ctx, func(s *state) error {
		if _, exists := s.transfers[outcome.CommandID]; exists {
			return domain.ErrAlreadyExists
		}
		s.transfers[outcome.CommandID] = *outcome
		return nil
	})
}

type outboxRepository struct {
	uow *UoW
}

func (r *outboxRepository) Add(ctx context.Context, commandID uuid.UUID, records []events.Record) error {
	if len(records) == 0 {
		return nil
	}
	return r.uow.write(ctx, func(s *state) error {
		entries := slices.Clone(s.outbox[commandID])
		for _, rec := range records {
			entries = append(entries, outboxEntry{record: rec})
		}
		s.outbox[commandID] = entries
		return nil
	})
}

func (r *outboxRepository) Pending(_ context.Context, commandID uuid.UUID) ([]events.Record, error) {
	var pending []events.Record
	r.uow.read(func(s *state) {
		for _, e := range s.outbox[commandID] {
			if !e.published {
				pending = append(pending, e.record)
			}
		}
	})
	return pending, nil
}

func (r *outboxRepository) MarkPublished(ctx context.Context, commandID uuid.UUID) error {
	return r.uow.write(ctx, func(s *state) error {
		entries := slices.Clone(s.outbox[commandID])
		for i := range entries {
			entries[i].published = true
		}
		if entries != nil {
			s.outbox[commandID] = entries
		}
		return nil
	})
}

var _ repository.UnitOfWork = (*UoW)(nil)
