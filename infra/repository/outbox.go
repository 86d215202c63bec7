package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/amirasaad/commandhandler/pkg/domain/events"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type outboxRepository struct {
	db *gorm.DB
}

func (r *outboxRepository) Add(ctx context.Context, commandID uuid.UUID, records []events.Record) error {
	if len(records) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]*OutboxRecord, 0, len(records))
	for _, rec := range records {
		row, err := toOutboxModel(commandID, rec, now)
		if err != nil {
			return fmt.Errorf("outbox: encode %s: %w", rec.Kind, err)
		}
		rows = append(rows, row)
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&rows).Error
	})
}

func (r *outboxRepository) Pending(ctx context.Context, commandID uuid.UUID) ([]events.Record, error) {
	var rows []OutboxRecord
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("command_id = ? AND published_at IS NULL", commandID).
			Order("id").
			Find(&rows).Error
	}); err != nil {
		return nil, err
	}
	records := make([]events.Record, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("outbox: decode record %d: %w", rows[i].ID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *outboxRepository) MarkPublished(ctx context.Context, commandID uuid.UUID) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).
			Model(&OutboxRecord{}).
			Where("command_id = ? AND published_at IS NULL", commandID).
			Update("published_at", time.Now().UTC()).Error
	})
}
