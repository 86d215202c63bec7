package repository

import (
	"time"

	"github.com/amirasaad/commandhandler/pkg/domain/account"
	"github.com/amirasaad/commandhandler/pkg/domain/command"
	"github.com/amirasaad/commandhandler/pkg/domain/events"
	"github.com/google/uuid"
)

// Balance represents a balance row in the database.
type Balance struct {
	ID          uint   `gorm:"primaryKey"`
	IBAN        string `gorm:"column:iban;uniqueIndex;not null;size:18"`
	Token       string `gorm:"not null;size:20"`
	Amount      int64  `gorm:"not null;default:0"`
	AccountType string `gorm:"not null"`
	Limit       int64  `gorm:"column:lmt;not null"`
	Version     int64  `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Balance) TableName() string { return "balances" }

// CreationOutcome represents the persisted decision for an account creation command.
type CreationOutcome struct {
	CommandID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	IBAN        string    `gorm:"column:iban;size:18"`
	Token       string    `gorm:"size:20"`
	AccountType string
	Reason      string
	DecidedAt   time.Time `gorm:"not null"`
}

func (CreationOutcome) TableName() string { return "creation_outcomes" }

// TransferOutcome represents the persisted verdict for a money transfer command.
type TransferOutcome struct {
	CommandID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reason    string
	DecidedAt time.Time `gorm:"not null"`
}

func (TransferOutcome) TableName() string { return "transfer_outcomes" }

// OutboxRecord is a notification waiting to be published for a decided command.
type OutboxRecord struct {
	ID          uint64    `gorm:"primaryKey"`
	CommandID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind        string    `gorm:"not null"`
	MsgKey      string    `gorm:"column:msg_key"`
	Payload     string    `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time
	PublishedAt *time.Time
}

func (OutboxRecord) TableName() string { return "outbox_records" }

func toOutboxModel(commandID uuid.UUID, r events.Record, now time.Time) (*OutboxRecord, error) {
	payload, err := r.MarshalPayload()
	if err != nil {
		return nil, err
	}
	return &OutboxRecord{
		CommandID: commandID,
		Kind:      r.Kind.String(),
		MsgKey:    r.Key,
		Payload:   string(payload),
		CreatedAt: now,
	}, nil
}

func (m *OutboxRecord) toDomain() (events.Record, error) {
	return events.UnmarshalRecord(events.Kind(m.Kind), m.MsgKey, []byte(m.Payload))
}

func toBalanceModel(b *account.Balance) *Balance {
	return &Balance{
		IBAN:        b.AccountID,
		Token:       b.Token,
		Amount:      b.Amount,
		AccountType: b.AccountType,
		Limit:       b.Limit,
		Version:     b.Version,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (m *Balance) toDomain() (*account.Balance, error) {
	return account.New().
		WithAccountID(m.IBAN).
		WithToken(m.Token).
		WithAmount(m.Amount).
		WithAccountType(m.AccountType).
		WithLimit(m.Limit).
		WithVersion(m.Version).
		WithCreatedAt(m.CreatedAt).
		WithUpdatedAt(m.UpdatedAt).
		Build()
}

func toCreationOutcomeModel(o *command.CreationOutcome) *CreationOutcome {
	return &CreationOutcome{
		CommandID:   o.CommandID,
		IBAN:        o.AccountID,
		Token:       o.Token,
		AccountType: o.AccountType,
		Reason:      o.FailureReason,
		DecidedAt:   o.DecidedAt,
	}
}

func (m *CreationOutcome) toDomain() *command.CreationOutcome {
	return &command.CreationOutcome{
		CommandID:     m.CommandID,
		AccountID:     m.IBAN,
		Token:         m.Token,
		AccountType:   m.AccountType,
		FailureReason: m.Reason,
		DecidedAt:     m.DecidedAt,
	}
}

func toTransferOutcomeModel(o *command.TransferOutcome) *TransferOutcome {
	return &TransferOutcome{
		CommandID: o.CommandID,
		Reason:    o.FailureReason,
		DecidedAt: o.DecidedAt,
	}
}

func (m *TransferOutcome) toDomain() *command.TransferOutcome {
	return &command.TransferOutcome{
		CommandID:     m.CommandID,
		FailureReason: m.Reason,
		DecidedAt:     m.DecidedAt,
	}
}
