package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/commandhandler/infra/repository/memory"
	"github.com/amirasaad/commandhandler/internal/fixtures/mocks"
	"github.com/amirasaad/commandhandler/pkg/app"
	"github.com/amirasaad/commandhandler/pkg/config"
	"github.com/amirasaad/commandhandler/pkg/domain"
	"github.com/amirasaad/commandhandler/pkg/domain/account"
	"github.com/amirasaad/commandhandler/pkg/lock"
	"github.com/amirasaad/commandhandler/pkg/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type WebAPITestSuite struct {
	suite.Suite
	uow *memory.UoW
	app *fiber.App
}

func TestWebAPITestSuite(t *testing.T) {
	suite.Run(t, new(WebAPITestSuite))
}

func newTestApp(uow repository.UnitOfWork) *fiber.App {
	cfg := &config.App{
		Env: "test",
		Topics: &config.Topics{
			AccountCreationFeedback: "account_creation_feedback",
			MoneyTransferFeedback:   "money_transfer_feedback",
			BalanceChanged:          "balance_changed",
		},
	}
	deps := &config.Deps{
		Uow:    uow,
		Locker: lock.Noop{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return SetupApp(app.New(deps, cfg))
}

func (s *WebAPITestSuite) SetupTest() {
	s.uow = memory.New()
	s.app = newTestApp(s.uow)
}

func (s *WebAPITestSuite) TestHealth() {
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var body map[string]string
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal("ok", body["status"])
}

func (s *WebAPITestSuite) TestGetBalance() {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.uow.Seed(&account.Balance{
		AccountID:   "NL66OPEN0000000000",
		Token:       "12345678901234567890",
		Amount:      1200,
		AccountType: "savings",
		Limit:       account.DefaultLimit,
		Version:     3,
		CreatedAt:   created,
		UpdatedAt:   created,
	})

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/balances/NL66OPEN0000000000", nil))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.NotContains(string(raw), "12345678901234567890")

	var body struct {
		Data BalanceDTO `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(raw, &body))
	s.Equal("NL66OPEN0000000000", body.Data.AccountID)
	s.Equal(int64(1200), body.Data.Amount)
	s.Equal(int64(3), body.Data.Version)
	s.Equal(account.DefaultLimit, body.Data.Limit)
}

func (s *WebAPITestSuite) TestGetBalance_NotFound() {
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/balances/NL80OPEN0123456789", nil))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("application/problem+json", resp.Header.Get(fiber.HeaderContentType))
}

func (s *WebAPITestSuite) TestGetBalance_InvalidIBAN() {
	for _, id := range []string{"cash", "NL67OPEN0000000000", "NL66OPEN00000"} {
		resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/balances/"+id, nil))
		s.Require().NoError(err)
		s.Equal(http.StatusBadRequest, resp.StatusCode, id)
		_ = resp.Body.Close()
	}
}

func TestGetBalance_StoreError(t *testing.T) {
	uow := mocks.NewMockUnitOfWork(t)
	repo := mocks.NewMockBalanceRepository(t)
	uow.On("BalanceRepository").Return(repo, nil)
	repo.On("Get", mock.Anything, "NL66OPEN0000000000").Return(nil, errors.New("connection reset"))

	resp, err := newTestApp(uow).Test(httptest.NewRequest(http.MethodGet, "/balances/NL66OPEN0000000000", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestErrorToStatusCode(t *testing.T) {
	assert.Equal(t, fiber.StatusNotFound, ErrorToStatusCode(fmt.Errorf("get: %w", domain.ErrNotFound)))
	assert.Equal(t, fiber.StatusMethodNotAllowed, ErrorToStatusCode(fiber.ErrMethodNotAllowed))
	assert.Equal(t, fiber.StatusInternalServerError, ErrorToStatusCode(errors.New("boom")))
}
