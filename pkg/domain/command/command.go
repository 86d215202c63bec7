// Package command holds the inbound commands and the durable outcome records
// written once a command has been decided.
package command

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Type identifies an inbound command on the wire.
type Type string

const (
	TypeConfirmAccountCreation Type = "ConfirmAccountCreation"
	TypeConfirmMoneyTransfer   Type = "ConfirmMoneyTransfer"
)

// String returns the string representation of the command type.
func (t Type) String() string {
	return string(t)
}

// ConfirmAccountCreation asks for a new account of the given type.
type ConfirmAccountCreation struct {
	CommandID   uuid.UUID `json:"commandId" validate:"required"`
	AccountType string    `json:"accountType" validate:"required"`
}

// ConfirmMoneyTransfer asks to move Amount minor units from one account to another.
// From and To are deliberately not validated here: malformed accounts are a
// domain outcome, not a malformed command.
type ConfirmMoneyTransfer struct {
	CommandID   uuid.UUID `json:"commandId" validate:"required"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Amount      int64     `json:"amount"`
	Token       string    `json:"token"`
	Description string    `json:"description"`
}

var validate = validator.New()

// Validate checks the structural constraints of a decoded command.
func Validate(cmd any) error {
	return validate.Struct(cmd)
}
