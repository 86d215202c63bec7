package webapi

import (
	"time"

	"github.com/amirasaad/commandhandler/pkg/domain/account"
	"github.com/amirasaad/commandhandler/pkg/repository"
	"github.com/gofiber/fiber/v2"
)

// BalanceDTO is the read model of a balance. The token is never exposed.
type BalanceDTO struct {
	AccountID   string    `json:"accountId"`
	Amount      int64     `json:"amount"`
	AccountType string    `json:"accountType"`
	Limit       int64     `json:"limit"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toBalanceDTO(b *account.Balance) BalanceDTO {
	return BalanceDTO{
		AccountID:   b.AccountID,
		Amount:      b.Amount,
		AccountType: b.AccountType,
		Limit:       b.Limit,
		Version:     b.Version,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// BalanceRoutes registers the read-only balance endpoints.
func BalanceRoutes(app *fiber.App, uow repository.UnitOfWork) {
	app.Get("/balances/:accountId", GetBalance(uow))
}

// GetBalance returns the current balance of an account.
func GetBalance(uow repository.UnitOfWork) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID := c.Params("accountId")
		if !account.IsValidIBAN(accountID) {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account id", "account id must be a valid open IBAN")
		}
		repo, err := uow.BalanceRepository()
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", err.Error())
		}
		balance, err := repo.Get(c.UserContext(), accountID)
		if err != nil {
			status := ErrorToStatusCode(err)
			if status == fiber.StatusNotFound {
				return ErrorResponseJSON(c, status, "Balance not found", accountID)
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Balance fetched",
			Data:    toBalanceDTO(balance),
		})
	}
}
