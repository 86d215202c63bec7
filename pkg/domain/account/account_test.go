package account

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	b, err := New().
		WithAccountID("NL66OPEN0000000000").
		WithToken("12345678901234567890").
		WithAccountType("SAVINGS").
		Build()
	require.NoError(err)
	assert.Equal(int64(0), b.Amount)
	assert.Equal(DefaultLimit, b.Limit)
	assert.Equal(int64(0), b.Version)
	assert.False(b.CreatedAt.IsZero())

	_, err = New().Build()
	assert.Error(err)
}

func TestBalance_Debit(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		amount    int64
		limit     int64
		debit     int64
		want      int64
		expectErr error
	}{
		{"within funds", 500, -1000, 100, 400, nil},
		{"into overdraft", 500, -1000, 1500, -1000, nil},
		{"below limit", 500, -1000, 1501, 500, ErrInsufficientFunds},
		{"zero limit exact", 100, 0, 100, 0, nil},
		{"zero limit exceeded", 100, 0, 101, 100, ErrInsufficientFunds},
		{"max amount wraps past limit", -2, -50000, math.MaxInt64, -2, ErrInsufficientFunds},
		{"max amount from max balance", math.MaxInt64, 0, math.MaxInt64, 0, nil},
		{"min amount", 0, -50000, math.MinInt64, 0, ErrAmountOutOfRange},
		{"negative amount overflows", 1, -50000, -math.MaxInt64, 1, ErrAmountOutOfRange},
		{"negative amount credits", 10, -50000, -5, 15, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &Balance{AccountID: "NL66OPEN0000000000", Amount: tc.amount, Limit: tc.limit}
			err := b.Debit(tc.debit, now)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				assert.True(t, b.UpdatedAt.IsZero(), "failed debit must not touch the balance")
			} else {
				require.NoError(t, err)
				assert.Equal(t, now, b.UpdatedAt)
			}
			assert.Equal(t, tc.want, b.Amount)
		})
	}
}

func TestBalance_Credit(t *testing.T) {
	now := time.Now()
	b := &Balance{Amount: -50000, Limit: -50000}
	require.NoError(t, b.Credit(250, now))
	assert.Equal(t, int64(-49750), b.Amount)
	assert.Equal(t, now, b.UpdatedAt)
}

func TestBalance_CreditOverflow(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		credit int64
	}{
		{"max onto positive", 1, math.MaxInt64},
		{"min onto negative", -1, math.MinInt64},
		{"max onto max", math.MaxInt64, math.MaxInt64},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &Balance{Amount: tc.amount, Limit: -50000}
			assert.ErrorIs(t, b.Credit(tc.credit, time.Now()), ErrAmountOutOfRange)
			assert.Equal(t, tc.amount, b.Amount)
			assert.True(t, b.UpdatedAt.IsZero())
		})
	}

	b := &Balance{Amount: -2}
	require.NoError(t, b.Credit(math.MaxInt64, time.Now()))
	assert.Equal(t, int64(math.MaxInt64-2), b.Amount)
}

func TestBalance_Authorize(t *testing.T) {
	b := &Balance{Token: "T"}
	assert.NoError(t, b.Authorize("T"))
	assert.ErrorIs(t, b.Authorize("X"), ErrInvalidToken)
	assert.ErrorIs(t, b.Authorize(""), ErrInvalidToken)
}

func TestFailureReasons(t *testing.T) {
	assert.Equal(t, "from is invalid", ErrInvalidSource.Error())
	assert.Equal(t, "from and to can't be same for transfer", ErrSameAccount.Error())
	assert.Equal(t, "invalid token", ErrInvalidToken.Error())
	assert.Equal(t, "insufficient funds", ErrInsufficientFunds.Error())
	assert.Equal(t, "generated iban already exists, try again", ErrIBANCollision.Error())
	assert.Equal(t, "amount out of range", ErrAmountOutOfRange.Error())
}
