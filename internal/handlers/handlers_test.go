package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appErrors "jobpay/internal/errors"
	"jobpay/internal/models"
	"jobpay/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var client = &models.Profile{ID: 1, FirstName: "Harry", LastName: "Potter", Type: models.RoleClient, Balance: decimal.NewFromInt(1150)}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	if len(body) > 0 && body[0] == '{' {
		require.NoError(t, json.Unmarshal(body, &parsed))
	}
	return resp.StatusCode, parsed
}

func TestRespondError_StatusTable(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{appErrors.ErrNotFound, fiber.StatusNotFound},
		{appErrors.ErrUnauthorized, fiber.StatusForbidden},
		{appErrors.ErrInsufficientFunds, fiber.StatusBadRequest},
		{appErrors.ErrBusinessRuleViolation, fiber.StatusBadRequest},
		{appErrors.ErrInvalidAmount, fiber.StatusBadRequest},
		{appErrors.ErrInvalidTransfer, fiber.StatusBadRequest},
		{appErrors.ErrConflict, fiber.StatusConflict},
		{appErrors.ErrTransferFailed, fiber.StatusInternalServerError},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, nopLogger(nil), tt.err) })

			status, body := doRequest(t, app, httptest.NewRequest("GET", "/", nil))

			assert.Equal(t, tt.want, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestContractHandler_GetContract(t *testing.T) {
	svc := new(MockContractService)
	h := NewContractHandler(svc, nil)
	app := fiber.New()
	app.Get("/contracts/:id", withProfile(client), h.GetContract)

	svc.On("GetContract", mock.Anything, client, uint(2)).Return(&models.Contract{ID: 2, Status: models.ContractStatusInProgress}, nil)
	svc.On("GetContract", mock.Anything, client, uint(3)).Return(nil, appErrors.ErrNotFound)

	status, body := doRequest(t, app, httptest.NewRequest("GET", "/contracts/2", nil))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "in_progress", body["status"])

	status, _ = doRequest(t, app, httptest.NewRequest("GET", "/contracts/3", nil))
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = doRequest(t, app, httptest.NewRequest("GET", "/contracts/abc", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestContractHandler_RequiresProfile(t *testing.T) {
	h := NewContractHandler(new(MockContractService), nil)
	app := fiber.New()
	app.Get("/contracts", withProfile(nil), h.ListContracts)

	status, _ := doRequest(t, app, httptest.NewRequest("GET", "/contracts", nil))

	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestJobHandler_ListUnpaid(t *testing.T) {
	svc := new(MockContractService)
	h := NewJobHandler(svc, new(MockLedgerService), nil)
	app := fiber.New()
	app.Get("/jobs/unpaid", withProfile(client), h.ListUnpaid)

	svc.On("ListUnpaidJobs", mock.Anything, client).Return([]*models.Job{
		{ID: 2, Price: decimal.NewFromInt(201), ContractID: 2},
	}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/jobs/unpaid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var jobs []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, float64(201), jobs[0]["price"])
}

func TestJobHandler_Pay(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{name: "paid", path: "/jobs/2/pay", wantStatus: fiber.StatusNoContent},
		{name: "not visible", path: "/jobs/1/pay", err: appErrors.ErrNotFound, wantStatus: fiber.StatusNotFound},
		{name: "contractor", path: "/jobs/2/pay", err: appErrors.ErrUnauthorized, wantStatus: fiber.StatusForbidden},
		{name: "short of funds", path: "/jobs/5/pay", err: appErrors.ErrInsufficientFunds, wantStatus: fiber.StatusBadRequest},
		{name: "lost race", path: "/jobs/4/pay", err: appErrors.ErrConflict, wantStatus: fiber.StatusConflict},
		{name: "bad id", path: "/jobs/x/pay", wantStatus: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockLedgerService)
			h := NewJobHandler(new(MockContractService), svc, nil)
			app := fiber.New()
			app.Post("/jobs/:job_id/pay", withProfile(client), h.Pay)
			svc.On("PayJob", mock.Anything, mock.Anything, client).Return(tt.err)

			status, _ := doRequest(t, app, httptest.NewRequest("POST", tt.path, nil))

			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestBalanceHandler_Deposit(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantCall   bool
		wantStatus int
	}{
		{name: "deposit", body: `{"amount": 100}`, wantCall: true, wantStatus: fiber.StatusNoContent},
		{name: "over cap", body: `{"amount": 101}`, err: appErrors.ErrBusinessRuleViolation, wantCall: true, wantStatus: fiber.StatusBadRequest},
		{name: "zero", body: `{"amount": 0}`, wantStatus: fiber.StatusBadRequest},
		{name: "missing amount", body: `{}`, wantStatus: fiber.StatusBadRequest},
		{name: "malformed", body: `{"amount":`, wantStatus: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockLedgerService)
			h := NewBalanceHandler(svc, nil)
			app := fiber.New()
			app.Post("/balances/deposit/:userId", withProfile(client), h.Deposit)
			if tt.wantCall {
				svc.On("Deposit", mock.Anything, client, uint(2), mock.AnythingOfType("decimal.Decimal")).Return(tt.err)
			}

			req := httptest.NewRequest("POST", "/balances/deposit/2", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			status, _ := doRequest(t, app, req)

			assert.Equal(t, tt.wantStatus, status)
			svc.AssertExpectations(t)
		})
	}
}

func TestAdminHandler_BestProfession(t *testing.T) {
	svc := new(MockReportService)
	h := NewAdminHandler(svc, nil)
	app := fiber.New()
	app.Get("/admin/best-profession", h.BestProfession)

	start := time.Date(2020, 8, 10, 0, 0, 0, 0, time.UTC)
	svc.On("BestProfession", mock.Anything, repositories.DateRange{Start: &start}).
		Return(&repositories.ProfessionTotal{Profession: "Programmer", Total: decimal.NewFromInt(2683)}, nil)
	svc.On("BestProfession", mock.Anything, repositories.DateRange{}).Return(nil, nil)

	status, body := doRequest(t, app, httptest.NewRequest("GET", "/admin/best-profession?start=2020-08-10", nil))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Programmer", body["profession"])
	assert.Equal(t, float64(2683), body["total"])

	status, body = doRequest(t, app, httptest.NewRequest("GET", "/admin/best-profession", nil))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body)

	status, body = doRequest(t, app, httptest.NewRequest("GET", "/admin/best-profession?start=soon", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["fields"], "start")
}

func TestAdminHandler_BestClients(t *testing.T) {
	svc := new(MockReportService)
	h := NewAdminHandler(svc, nil)
	app := fiber.New()
	app.Get("/admin/best-clients", h.BestClients)

	svc.On("BestClients", mock.Anything, repositories.DateRange{}, 2).Return([]repositories.ClientTotal{
		{ID: 4, FullName: "Ash Kethcum", Paid: decimal.NewFromInt(2020)},
		{ID: 1, FullName: "Harry Potter", Paid: decimal.NewFromInt(442)},
	}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/best-clients", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var clients []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&clients))
	require.Len(t, clients, 2)
	assert.Equal(t, "Ash Kethcum", clients[0]["fullName"])

	svc.On("BestClients", mock.Anything, repositories.DateRange{}, 1).Return([]repositories.ClientTotal{
		{ID: 4, FullName: "Ash Kethcum", Paid: decimal.NewFromInt(2020)},
	}, nil)
	status, _ := doRequest(t, app, httptest.NewRequest("GET", "/admin/best-clients?limit=1", nil))
	assert.Equal(t, fiber.StatusOK, status)

	for _, query := range []string{"limit=0", "limit=-1", "limit=500", "limit=two"} {
		status, _ := doRequest(t, app, httptest.NewRequest("GET", "/admin/best-clients?"+query, nil))
		assert.Equal(t, fiber.StatusBadRequest, status, query)
	}
	svc.AssertNotCalled(t, "BestClients", mock.Anything, mock.Anything, 0)
}

func TestHealthHandler(t *testing.T) {
	app := fiber.New()
	healthy := NewHealthHandler("test", map[string]Checker{
		"database": CheckerFunc(func(context.Context) error { return nil }),
	})
	degraded := NewHealthHandler("test", map[string]Checker{
		"redis": CheckerFunc(func(context.Context) error { return errors.New("refused") }),
	})
	app.Get("/ok", healthy.HealthCheck)
	app.Get("/bad", degraded.HealthCheck)

	status, body := doRequest(t, app, httptest.NewRequest("GET", "/ok", nil))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = doRequest(t, app, httptest.NewRequest("GET", "/bad", nil))
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", body["status"])
}
