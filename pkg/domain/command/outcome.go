package command

import (
	"time"

	"github.com/google/uuid"
)

// CreationOutcome is the decision taken for a ConfirmAccountCreation command.
// It is written exactly once per command id and never updated.
type CreationOutcome struct {
	CommandID     uuid.UUID
	AccountID     string // empty when the command failed
	Token         string
	AccountType   string
	FailureReason string // empty on success
	DecidedAt     time.Time
}

// Succeeded reports whether the outcome allocated an account.
func (o *CreationOutcome) Succeeded() bool {
	return o.AccountID != ""
}

// TransferOutcome is the verdict for a ConfirmMoneyTransfer command.
// It is written exactly once per command id and never updated.
type TransferOutcome struct {
	CommandID     uuid.UUID
	FailureReason string // empty on success
	DecidedAt     time.Time
}

// Succeeded reports whether the transfer was confirmed.
func (o *TransferOutcome) Succeeded() bool {
	return o.FailureReason == ""
}
