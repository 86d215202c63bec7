package events

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Status of a command as reported on a feedback channel.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// AccountCreationFeedback acknowledges a ConfirmAccountCreation command.
type AccountCreationFeedback struct {
	CommandID   uuid.UUID `json:"commandId"`
	Status      Status    `json:"status"`
	AccountID   string    `json:"accountId,omitempty"`
	Token       string    `json:"token,omitempty"`
	AccountType string    `json:"accountType,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}

// MoneyTransferFeedback acknowledges a ConfirmMoneyTransfer command.
type MoneyTransferFeedback struct {
	CommandID uuid.UUID `json:"commandId"`
	Status    Status    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
}

// BalanceChanged notifies downstream consumers that an account balance moved.
type BalanceChanged struct {
	AccountID             string `json:"accountId"`
	NewAmount             int64  `json:"newAmount"`
	Delta                 int64  `json:"delta"`
	CounterpartyAccountID string `json:"counterpartyAccountId"`
	Description           string `json:"description"`
}

// Record is one output of an engine. Exactly one payload field is set, selected by Kind.
type Record struct {
	Kind Kind
	// Key is the partitioning key of the record on its channel.
	Key string

	CreationFeedback *AccountCreationFeedback
	TransferFeedback *MoneyTransferFeedback
	BalanceChanged   *BalanceChanged
}

// Payload returns the wire payload selected by the record's kind.
func (r Record) Payload() (any, error) {
	switch r.Kind {
	case KindAccountCreationConfirmed, KindAccountCreationFailed:
		if r.CreationFeedback != nil {
			return r.CreationFeedback, nil
		}
	case KindMoneyTransferConfirmed, KindMoneyTransferFailed:
		if r.TransferFeedback != nil {
			return r.TransferFeedback, nil
		}
	case KindBalanceChanged:
		if r.BalanceChanged != nil {
			return r.BalanceChanged, nil
		}
	default:
		return nil, fmt.Errorf("events: unknown record kind %q", r.Kind)
	}
	return nil, fmt.Errorf("events: record of kind %q has no payload", r.Kind)
}

// NewAccountCreationConfirmed builds the success feedback for an account creation.
func NewAccountCreationConfirmed(commandID uuid.UUID, accountID, token, accountType string) Record {
	return Record{
		Kind: KindAccountCreationConfirmed,
		Key:  commandID.String(),
		CreationFeedback: &AccountCreationFeedback{
			CommandID:   commandID,
			Status:      StatusConfirmed,
			AccountID:   accountID,
			Token:       token,
			AccountType: accountType,
		},
	}
}

// NewAccountCreationFailed builds the failure feedback for an account creation.
func NewAccountCreationFailed(commandID uuid.UUID, reason string) Record {
	return Record{
		Kind: KindAccountCreationFailed,
		Key:  commandID.String(),
		CreationFeedback: &AccountCreationFeedback{
			CommandID: commandID,
			Status:    StatusFailed,
			Reason:    reason,
		},
	}
}

// NewMoneyTransferConfirmed builds the success feedback for a transfer.
func NewMoneyTransferConfirmed(commandID uuid.UUID) Record {
	return Record{
		Kind: KindMoneyTransferConfirmed,
		Key:  commandID.String(),
		TransferFeedback: &MoneyTransferFeedback{
			CommandID: commandID,
			Status:    StatusConfirmed,
		},
	}
}

// NewMoneyTransferFailed builds the failure feedback for a transfer.
func NewMoneyTransferFailed(commandID uuid.UUID, reason string) Record {
	return Record{
		Kind: KindMoneyTransferFailed,
		Key:  commandID.String(),
		TransferFeedback: &MoneyTransferFeedback{
			CommandID: commandID,
			Status:    StatusFailed,
			Reason:    reason,
		},
	}
}

// NewBalanceChanged builds a balance notification keyed by the changed account.
func NewBalanceChanged(accountID string, newAmount, delta int64, counterparty, description string) Record {
	return Record{
		Kind: KindBalanceChanged,
		Key:  accountID,
		BalanceChanged: &BalanceChanged{
			AccountID:             accountID,
			NewAmount:             newAmount,
			Delta:                 delta,
			CounterpartyAccountID: counterparty,
			Description:           description,
		},
	}
}

// MarshalPayload encodes the record's payload for storage.
func (r Record) MarshalPayload() ([]byte, error) {
	p, err := r.Payload()
	if err != nil {
		return nil, err
	}
	return json.Marshal(p)
}

// UnmarshalRecord rebuilds a record from its kind, key and stored payload.
func UnmarshalRecord(kind Kind, key string, payload []byte) (Record, error) {
	r := Record{Kind: kind, Key: key}
	var target any
	switch kind.Channel() {
	case ChannelCreationFeedback:
		r.CreationFeedback = &AccountCreationFeedback{}
		target = r.CreationFeedback
	case ChannelTransferFeedback:
		r.TransferFeedback = &MoneyTransferFeedback{}
		target = r.TransferFeedback
	case ChannelBalanceChange:
		r.BalanceChanged = &BalanceChanged{}
		target = r.BalanceChanged
	default:
		return Record{}, fmt.Errorf("events: unknown record kind %q", kind)
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return Record{}, fmt.Errorf("events: decode %s payload: %w", kind, err)
	}
	return r, nil
}
