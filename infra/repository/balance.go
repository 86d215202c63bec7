package repository

import (
	"context"

	"github.com/amirasaad/commandhandler/pkg/domain"
	"github.com/amirasaad/commandhandler/pkg/domain/account"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type balanceRepository struct {
	db        *gorm.DB
	forUpdate bool
}

func (r *balanceRepository) Get(ctx context.Context, accountID string) (*account.Balance, error) {
	q := r.db.WithContext(ctx)
	if r.forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var m Balance
	if err := WrapError(func() error {
		return q.Where("iban = ?", accountID).Take(&m).Error
	}); err != nil {
		return nil, err
	}
	return m.toDomain()
}

func (r *balanceRepository) Create(ctx context.Context, balance *account.Balance) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(toBalanceModel(balance)).Error
	})
}

// Update is a compare-and-swap on the version column.
func (r *balanceRepository) Update(ctx context.Context, balance *account.Balance) error {
	res := r.db.WithContext(ctx).
		Model(&Balance{}).
		Where("iban = ? AND version = ?", balance.AccountID, balance.Version).
		Updates(map[string]any{
			"amount":     balance.Amount,
			"updated_at": balance.UpdatedAt,
			"version":    gorm.Expr("version + ?", 1),
		})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&Balance{}).Where("iban = ?", balance.AccountID).Count(&count).Error; err != nil {
			return MapGormErrorToDomain(err)
		}
		if count == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrConcurrentUpdate
	}
	balance.Version++
	return nil
}
