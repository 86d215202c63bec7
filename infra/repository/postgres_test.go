//go:build integration

package repository_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	infrarepo "github.com/amirasaad/commandhandler/infra/repository"
	"github.com/amirasaad/commandhandler/pkg/domain/account"
	"github.com/amirasaad/commandhandler/pkg/domain/command"
	"github.com/amirasaad/commandhandler/pkg/domain/events"
	"github.com/amirasaad/commandhandler/pkg/handler/creation"
	"github.com/amirasaad/commandhandler/pkg/handler/transfer"
	"github.com/amirasaad/commandhandler/pkg/repository"
	"github.com/amirasaad/commandhandler/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedGenerator struct{ iban, token string }

func (g fixedGenerator) NewIBAN() string  { return g.iban }
func (g fixedGenerator) NewToken() string { return g.token }

func TestPostgres_CreateDepositDebitReplay(t *testing.T) {
	db := testutils.SetupPostgres(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := infrarepo.NewUoW(db)
	ctx := context.Background()

	gen := fixedGenerator{iban: "NL66OPEN0000000000", token: "12345678901234567890"}
	creator := creation.New(uow, gen, logger)

	createCmd := command.ConfirmAccountCreation{CommandID: uuid.New(), AccountType: "savings"}
	records, err := creator.Handle(ctx, createCmd)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, events.KindAccountCreationConfirmed, records[0].Kind)

	// same IBAN drawn again
	collision, err := creator.Handle(ctx, command.ConfirmAccountCreation{CommandID: uuid.New(), AccountType: "savings"})
	require.NoError(t, err)
	assert.Equal(t, events.KindAccountCreationFailed, collision[0].Kind)
	assert.Equal(t, account.ErrIBANCollision.Error(), collision[0].CreationFeedback.Reason)

	mover := transfer.New(uow, logger)
	deposit := command.ConfirmMoneyTransfer{CommandID: uuid.New(), From: account.CashSource, To: gen.iban, Amount: 1000}
	records, err = mover.Handle(ctx, deposit)
	require.NoError(t, err)
	require.Len(t, records, 2)

	overdraw := command.ConfirmMoneyTransfer{CommandID: uuid.New(), From: gen.iban, To: "NL80OPEN0123456789", Amount: 51001, Token: gen.token}
	records, err = mover.Handle(ctx, overdraw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, account.ErrInsufficientFunds.Error(), records[0].TransferFeedback.Reason)

	debit := command.ConfirmMoneyTransfer{CommandID: uuid.New(), From: gen.iban, To: "NL80OPEN0123456789", Amount: 51000, Token: gen.token}
	records, err = mover.Handle(ctx, debit)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(-50000), records[0].BalanceChanged.NewAmount)

	// not yet marked published: the balance change comes back from the outbox
	replayed, err := mover.Handle(ctx, debit)
	require.NoError(t, err)
	require.Len(t, replayed, 2)
	assert.Equal(t, records[0], replayed[0])

	require.NoError(t, mover.Published(ctx, debit.CommandID))
	replayed, err = mover.Handle(ctx, debit)
	require.NoError(t, err)
	require.Len(t, replayed, 1)
	assert.Equal(t, events.KindMoneyTransferConfirmed, replayed[0].Kind)

	balances, err := uow.BalanceRepository()
	require.NoError(t, err)
	b, err := balances.Get(ctx, gen.iban)
	require.NoError(t, err)
	assert.Equal(t, int64(-50000), b.Amount)
	assert.Equal(t, int64(2), b.Version)
}

func TestPostgres_ConcurrentTransfersConserveMoney(t *testing.T) {
	db := testutils.SetupPostgres(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := infrarepo.NewUoW(db)
	ctx := context.Background()

	a, b := "NL66OPEN0000000000", "NL80OPEN0123456789"
	require.NoError(t, uow.Do(ctx, func(tx repository.UnitOfWork) error {
		repo, err := tx.BalanceRepository()
		if err != nil {
			return err
		}
		for _, id := range []string{a, b} {
			bal, err := account.New().WithAccountID(id).WithToken("t-" + id).WithAccountType("checking").WithAmount(5000).Build()
			if err != nil {
				return err
			}
			if err := repo.Create(ctx, bal); err != nil {
				return err
			}
		}
		return nil
	}))

	mover := transfer.New(uow, logger)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		from, to := a, b
		if i%2 == 1 {
			from, to = b, a
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd := command.ConfirmMoneyTransfer{CommandID: uuid.New(), From: from, To: to, Amount: 100, Token: "t-" + from}
			// opposite transfers may deadlock on row locks; a consumer would redeliver
			for attempt := 0; attempt < 100; attempt++ {
				if _, err := mover.Handle(ctx, cmd); err == nil {
					return
				}
			}
			t.Errorf("transfer %s never succeeded", cmd.CommandID)
		}()
	}
	wg.Wait()

	repo, err := uow.BalanceRepository()
	require.NoError(t, err)
	ba, err := repo.Get(ctx, a)
	require.NoError(t, err)
	bb, err := repo.Get(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), ba.Amount+bb.Amount)
}
