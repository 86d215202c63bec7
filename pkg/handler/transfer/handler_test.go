package transfer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/amirasaad/commandhandler/infra/repository/memory"
	"github.com/amirasaad/commandhandler/internal/fixtures/mocks"
	"github.com/amirasaad/commandhandler/pkg/domain"
	"github.com/amirasaad/commandhandler/pkg/domain/account"
	"github.com/amirasaad/commandhandler/pkg/domain/command"
	"github.com/amirasaad/commandhandler/pkg/domain/events"
	"github.com/amirasaad/commandhandler/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	ibanA = "NL66OPEN0000000000"
	ibanB = "NL80OPEN0123456789"
	ibanC = "NL48OPEN0999999999"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seeded() *memory.UoW {
	uow := memory.New()
	uow.Seed(
		&account.Balance{AccountID: ibanA, Token: "T", Amount: 500, Limit: -1000, AccountType: "savings"},
		&account.Balance{AccountID: ibanB, Token: "U", Amount: 200, Limit: -1000, AccountType: "savings"},
	)
	return uow
}

func transfer(from, to string, amount int64, token string) command.ConfirmMoneyTransfer {
	return command.ConfirmMoneyTransfer{
		CommandID:   uuid.New(),
		From:        from,
		To:          to,
		Amount:      amount,
		Token:       token,
		Description: "rent",
	}
}

func TestHandle_SettlesBetweenAccounts(t *testing.T) {
	uow := seeded()
	cmd := transfer(ibanA, ibanB, 100, "T")

	records, err := New(uow, discardLogger()).Handle(context.Background(), cmd)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, events.KindBalanceChanged, records[0].Kind)
	assert.Equal(t, &events.BalanceChanged{
		AccountID: ibanA, NewAmount: 400, Delta: -100, CounterpartyAccountID: ibanB, Description: "rent",
	}, records[0].BalanceChanged)
	assert.Equal(t, ibanA, records[0].Key)

	assert.Equal(t, events.KindBalanceChanged, records[1].Kind)
	assert.Equal(t, &events.BalanceChanged{
		AccountID: ibanB, NewAmount: 300, Delta: 100, CounterpartyAccountID: ibanA, Description: "rent",
	}, records[1].BalanceChanged)

	assert.Equal(t, events.KindMoneyTransferConfirmed, records[2].Kind)
	assert.Equal(t, cmd.CommandID, records[2].TransferFeedback.CommandID)

	balances := uow.Balances()
	assert.Equal(t, int64(400), balances[ibanA].Amount)
	assert.Equal(t, int64(300), balances[ibanB].Amount)
	assert.Equal(t, int64(700), balances[ibanA].Amount+balances[ibanB].Amount)
	assert.Equal(t, int64(1), balances[ibanA].Version)
	assert.Equal(t, int64(1), balances[ibanB].Version)
}

func TestHandle_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		cmd    command.ConfirmMoneyTransfer
		reason string
	}{
		{"invalid source", transfer("DE89370400440532013000", ibanB, 1, "T"), "from is invalid"},
		{"empty source", transfer("", ibanB, 1, "T"), "from is invalid"},
		{"bad check digits", transfer("NL67OPEN0000000000", ibanB, 1, "T"), "from is invalid"},
		{"same account", transfer(ibanA, ibanA, 1, "T"), "from and to can't be same for transfer"},
		{"cash to cash", transfer("cash", "cash", 1, ""), "from and to can't be same for transfer"},
		{"wrong token", transfer(ibanA, ibanB, 1, "nope"), "invalid token"},
		{"beyond limit", transfer(ibanA, ibanB, 1501, "T"), "insufficient funds"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uow := seeded()
			before := uow.Balances()

			records, err := New(uow, discardLogger()).Handle(context.Background(), tc.cmd)
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, events.KindMoneyTransferFailed, records[0].Kind)
			assert.Equal(t, tc.reason, records[0].TransferFeedback.Reason)

			assert.Equal(t, before, uow.Balances(), "balances must not change")
			outcomes, _ := uow.TransferOutcomeRepository()
			stored, err := outcomes.Get(context.Background(), tc.cmd.CommandID)
			require.NoError(t, err)
			assert.Equal(t, tc.reason, stored.FailureReason)
		})
	}
}

func TestHandle_DebitDownToLimitIsAllowed(t *testing.T) {
	uow := seeded()
	records, err := New(uow, discardLogger()).Handle(context.Background(), transfer(ibanA, ibanB, 1500, "T"))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, int64(-1000), uow.Balances()[ibanA].Amount)
}

func TestHandle_CashDeposit(t *testing.T) {
	uow := seeded()
	records, err := New(uow, discardLogger()).Handle(context.Background(), transfer("cash", ibanB, 250, ""))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, &events.BalanceChanged{
		AccountID: ibanB, NewAmount: 450, Delta: 250, CounterpartyAccountID: "cash", Description: "rent",
	}, records[0].BalanceChanged)
	assert.Equal(t, events.KindMoneyTransferConfirmed, records[1].Kind)
}

func TestHandle_UnknownAccountsAreSkipped(t *testing.T) {
	uow := seeded()

	// source is a valid open iban without a balance row: no debit, no failure
	records, err := New(uow, discardLogger()).Handle(context.Background(), transfer(ibanC, ibanB, 10, "whatever"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ibanB, records[0].BalanceChanged.AccountID)

	// destination is not an open iban: only the debit happens
	records, err = New(uow, discardLogger()).Handle(context.Background(), transfer(ibanA, "external-account", 10, "T"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ibanA, records[0].BalanceChanged.AccountID)
	assert.Equal(t, int64(490), uow.Balances()[ibanA].Amount)
}

func TestHandle_ReplayDoesNotMutate(t *testing.T) {
	uow := seeded()
	engine := New(uow, discardLogger())
	cmd := transfer(ibanA, ibanB, 100, "T")

	first, err := engine.Handle(context.Background(), cmd)
	require.NoError(t, err)
	afterFirst := uow.Balances()

	require.NoError(t, engine.Published(context.Background(), cmd.CommandID))

	second, err := engine.Handle(context.Background(), cmd)
	require.NoError(t, err)

	require.Len(t, second, 1)
	assert.Equal(t, first[len(first)-1], second[0])
	assert.Equal(t, afterFirst, uow.Balances())
	_, transfers := uow.OutcomeCount()
	assert.Equal(t, 1, transfers)
}

func TestHandle_ReplayReEmitsUnpublishedBalanceChanges(t *testing.T) {
	uow := seeded()
	engine := New(uow, discardLogger())
	cmd := transfer(ibanA, ibanB, 100, "T")

	first, err := engine.Handle(context.Background(), cmd)
	require.NoError(t, err)
	require.Len(t, first, 3)
	afterFirst := uow.Balances()

	// the first delivery never reached the broker
	second, err := engine.Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, afterFirst, uow.Balances(), "replay must not touch balances")

	require.NoError(t, engine.Published(context.Background(), cmd.CommandID))
	third, err := engine.Handle(context.Background(), cmd)
	require.NoError(t, err)
	require.Len(t, third, 1)
	assert.Equal(t, events.KindMoneyTransferConfirmed, third[0].Kind)
}

func TestHandle_AmountsThatWouldOverflow(t *testing.T) {
	tests := []struct {
		name   string
		seed   []*account.Balance
		cmd    command.ConfirmMoneyTransfer
		reason string
	}{
		{
			name: "max amount from overdrawn account",
			seed: []*account.Balance{
				{AccountID: ibanA, Token: "T", Amount: -2, Limit: -50000},
				{AccountID: ibanB, Token: "U", Amount: 0, Limit: -50000},
			},
			cmd:    transfer(ibanA, ibanB, math.MaxInt64, "T"),
			reason: "insufficient funds",
		},
		{
			name: "min amount",
			seed: []*account.Balance{
				{AccountID: ibanA, Token: "T", Amount: 0, Limit: -50000},
				{AccountID: ibanB, Token: "U", Amount: 0, Limit: -50000},
			},
			cmd:    transfer(ibanA, ibanB, math.MinInt64, "T"),
			reason: "amount out of range",
		},
		{
			name: "cash onto a full account",
			seed: []*account.Balance{
				{AccountID: ibanB, Token: "U", Amount: 200, Limit: -50000},
			},
			cmd:    transfer("cash", ibanB, math.MaxInt64, ""),
			reason: "amount out of range",
		},
		{
			name: "credit overflow leaves the debit undone",
			seed: []*account.Balance{
				{AccountID: ibanA, Token: "T", Amount: 500, Limit: -50000},
				{AccountID: ibanB, Token: "U", Amount: math.MaxInt64 - 10, Limit: -50000},
			},
			cmd:    transfer(ibanA, ibanB, 100, "T"),
			reason: "amount out of range",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uow := memory.New()
			uow.Seed(tc.seed...)
			before := uow.Balances()

			records, err := New(uow, discardLogger()).Handle(context.Background(), tc.cmd)
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, events.KindMoneyTransferFailed, records[0].Kind)
			assert.Equal(t, tc.reason, records[0].TransferFeedback.Reason)
			assert.Equal(t, before, uow.Balances(), "balances must not change")
		})
	}
}

func TestHandle_ReplayOfFailure(t *testing.T) {
	uow := seeded()
	engine := New(uow, discardLogger())
	cmd := transfer(ibanA, ibanB, 100000, "T")

	first, err := engine.Handle(context.Background(), cmd)
	require.NoError(t, err)
	second, err := engine.Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHandle_ConcurrentTransfersConserveMoney(t *testing.T) {
	uow := seeded()
	engine := New(uow, discardLogger())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := engine.Handle(context.Background(), transfer(ibanA, ibanB, 10, "T"))
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := engine.Handle(context.Background(), transfer(ibanB, ibanA, 5, "U"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	balances := uow.Balances()
	assert.Equal(t, int64(700), balances[ibanA].Amount+balances[ibanB].Amount)
	assert.Equal(t, int64(500-20*10+20*5), balances[ibanA].Amount)
}

func TestHandle_LocksBothAccountsInOrder(t *testing.T) {
	uow := seeded()
	locker := mocks.NewMockLocker(t)
	locker.On("WithLock", mock.Anything, []string{ibanA, ibanB}, mock.Anything).Return(
		func(ctx context.Context, _ []string, fn func(context.Context) error) error { return fn(ctx) },
	)

	records, err := New(uow, discardLogger(), WithLocker(locker)).Handle(context.Background(), transfer(ibanB, ibanA, 50, "U"))
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestHandle_NoLockWithoutOpenAccounts(t *testing.T) {
	uow := seeded()
	locker := mocks.NewMockLocker(t)

	records, err := New(uow, discardLogger(), WithLocker(locker)).Handle(context.Background(), transfer("cash", "elsewhere", 50, ""))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, events.KindMoneyTransferConfirmed, records[0].Kind)
	locker.AssertNotCalled(t, "WithLock", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_LockFailureIsInfrastructureError(t *testing.T) {
	uow := seeded()
	locker := mocks.NewMockLocker(t)
	boom := errors.New("redis unavailable")
	locker.On("WithLock", mock.Anything, mock.Anything, mock.Anything).Return(boom)

	cmd := transfer(ibanA, ibanB, 50, "T")
	_, err := New(uow, discardLogger(), WithLocker(locker)).Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, boom)
	_, transfers := uow.OutcomeCount()
	assert.Zero(t, transfers)
}

func TestHandle_ConcurrentUpdateRollsBack(t *testing.T) {
	uow := mocks.NewMockUnitOfWork(t)
	outcomes := mocks.NewMockTransferOutcomeRepository(t)
	balances := mocks.NewMockBalanceRepository(t)
	cmd := transfer(ibanA, ibanB, 10, "T")

	uow.On("TransferOutcomeRepository").Return(outcomes, nil)
	uow.On("BalanceRepository").Return(balances, nil)
	uow.On("Do", mock.Anything, mock.Anything).Return(
		func(_ context.Context, fn func(repository.UnitOfWork) error) error { return fn(uow) },
	)
	outcomes.On("Get", mock.Anything, cmd.CommandID).Return(nil, domain.ErrNotFound)
	balances.On("Get", mock.Anything, ibanA).Return(&account.Balance{AccountID: ibanA, Token: "T", Amount: 100}, nil)
	balances.On("Get", mock.Anything, ibanB).Return(&account.Balance{AccountID: ibanB, Token: "U"}, nil)
	balances.On("Update", mock.Anything, mock.Anything).Return(domain.ErrConcurrentUpdate)

	records, err := New(uow, discardLogger()).Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrConcurrentUpdate)
	assert.Nil(t, records)
	outcomes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandle_OutboxFailureRollsBack(t *testing.T) {
	uow := mocks.NewMockUnitOfWork(t)
	outcomes := mocks.NewMockTransferOutcomeRepository(t)
	balances := mocks.NewMockBalanceRepository(t)
	outbox := mocks.NewMockOutboxRepository(t)
	cmd := transfer("cash", ibanB, 10, "")
	boom := errors.New("outbox insert failed")

	uow.On("TransferOutcomeRepository").Return(outcomes, nil)
	uow.On("BalanceRepository").Return(balances, nil)
	uow.On("OutboxRepository").Return(outbox, nil)
	uow.On("Do", mock.Anything, mock.Anything).Return(
		func(_ context.Context, fn func(repository.UnitOfWork) error) error { return fn(uow) },
	)
	outcomes.On("Get", mock.Anything, cmd.CommandID).Return(nil, domain.ErrNotFound)
	outcomes.On("Create", mock.Anything, mock.AnythingOfType("*command.TransferOutcome")).Return(nil)
	balances.On("Get", mock.Anything, ibanB).Return(&account.Balance{AccountID: ibanB, Token: "U"}, nil)
	balances.On("Update", mock.Anything, mock.Anything).Return(nil)
	outbox.On("Add", mock.Anything, cmd.CommandID, mock.MatchedBy(func(recs []events.Record) bool {
		return len(recs) == 1 && recs[0].Kind == events.KindBalanceChanged
	})).Return(boom)

	records, err := New(uow, discardLogger()).Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, records)
}
