package account

import (
	"errors"
	"math"
	"time"
)

// DefaultLimit is the overdraft floor given to newly created accounts, in minor units.
const DefaultLimit int64 = -50000

var (
	// ErrInvalidSource is returned when the source of a transfer is neither cash nor a valid open IBAN.
	ErrInvalidSource = errors.New("from is invalid")

	// ErrSameAccount is returned when a transfer names the same account on both sides.
	ErrSameAccount = errors.New("from and to can't be same for transfer")

	// ErrInvalidToken is returned when the transfer token does not match the source account.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInsufficientFunds is returned when a debit would bring the balance below its limit.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrIBANCollision is returned when a freshly generated IBAN is already in use.
	ErrIBANCollision = errors.New("generated iban already exists, try again")

	// ErrAmountOutOfRange is returned when applying an amount would overflow the balance.
	ErrAmountOutOfRange = errors.New("amount out of range")
)

// Balance is the monetary state of one account and the aggregate root for debits and credits.
//
// Invariants:
//   - AccountID is unique across all balances.
//   - After a successful Debit, Amount >= Limit.
//   - Version increases by one with every persisted mutation.
type Balance struct {
	AccountID   string
	Token       string
	Amount      int64
	AccountType string
	Limit       int64
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Builder provides a fluent API for constructing Balance instances.
type Builder struct {
	accountID   string
	token       string
	amount      int64
	accountType string
	limit       int64
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// New creates a new Builder for an empty balance with the default limit.
func New() *Builder {
	now := time.Now().UTC()
	return &Builder{
		limit:     DefaultLimit,
		createdAt: now,
		updatedAt: now,
	}
}

// WithAccountID sets the IBAN of the balance. This is a mandatory field.
func (b *Builder) WithAccountID(accountID string) *Builder {
	b.accountID = accountID
	return b
}

// WithToken sets the credential required to debit the account.
func (b *Builder) WithToken(token string) *Builder {
	b.token = token
	return b
}

// WithAccountType sets the category tag of the account.
func (b *Builder) WithAccountType(accountType string) *Builder {
	b.accountType = accountType
	return b
}

// WithAmount sets the current amount. Only used when hydrating from a store or in tests.
func (b *Builder) WithAmount(amount int64) *Builder {
	b.amount = amount
	return b
}

// WithLimit overrides the overdraft floor.
func (b *Builder) WithLimit(limit int64) *Builder {
	b.limit = limit
	return b
}

// WithVersion sets the persisted version. Only used when hydrating from a store.
func (b *Builder) WithVersion(version int64) *Builder {
	b.version = version
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the mandatory fields and returns the Balance.
func (b *Builder) Build() (*Balance, error) {
	if b.accountID == "" {
		return nil, errors.New("accountID is required")
	}
	return &Balance{
		AccountID:   b.accountID,
		Token:       b.token,
		Amount:      b.amount,
		AccountType: b.accountType,
		Limit:       b.limit,
		Version:     b.version,
		CreatedAt:   b.createdAt,
		UpdatedAt:   b.updatedAt,
	}, nil
}

// Authorize checks that token grants debit rights on the account.
func (b *Balance) Authorize(token string) error {
	if b.Token != token {
		return ErrInvalidToken
	}
	return nil
}

// Debit subtracts amount if the result stays at or above the limit.
// The balance is left untouched on error.
func (b *Balance) Debit(amount int64, now time.Time) error {
	// the negated amount is published as the delta
	if amount == math.MinInt64 {
		return ErrAmountOutOfRange
	}
	next, ok := addInt64(b.Amount, -amount)
	switch {
	case !ok && amount > 0:
		return ErrInsufficientFunds
	case !ok:
		return ErrAmountOutOfRange
	case next < b.Limit:
		return ErrInsufficientFunds
	}
	b.Amount = next
	b.UpdatedAt = now
	return nil
}

// Credit adds amount. Credits are never limited, but the sum must fit in an int64.
// The balance is left untouched on error.
func (b *Balance) Credit(amount int64, now time.Time) error {
	next, ok := addInt64(b.Amount, amount)
	if !ok {
		return ErrAmountOutOfRange
	}
	b.Amount = next
	b.UpdatedAt = now
	return nil
}

// addInt64 returns x+y and false when the sum wrapped.
func addInt64(x, y int64) (int64, bool) {
	sum := x + y
	if (x >= 0) == (y >= 0) && (sum >= 0) != (x >= 0) {
		return sum, false
	}
	return sum, true
}
