package handlers

import (
	"context"

	"jobpay/internal/domain/scope"
	"jobpay/internal/models"
	"jobpay/internal/repositories"
	"jobpay/internal/services/ledger"
	"jobpay/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) GetContract(ctx context.Context, caller *models.Profile, id uint) (*models.Contract, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *MockContractService) ListActiveContracts(ctx context.Context, caller *models.Profile) ([]*models.Contract, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).([]*models.Contract), args.Error(1)
}

func (m *MockContractService) ListUnpaidJobs(ctx context.Context, caller *models.Profile) ([]*models.Job, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).([]*models.Job), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ResolveScope(caller *models.Profile) scope.Filter {
	return scope.ByProfile(caller)
}

func (m *MockLedgerService) Transfer(ctx context.Context, req ledger.TransferRequest) (*models.Transfer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transfer), args.Error(1)
}

func (m *MockLedgerService) PayJob(ctx context.Context, jobID uint, caller *models.Profile) error {
	return m.Called(ctx, jobID, caller).Error(0)
}

func (m *MockLedgerService) Deposit(ctx context.Context, caller *models.Profile, destinationID uint, amount decimal.Decimal) error {
	return m.Called(ctx, caller, destinationID, amount).Error(0)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) BestProfession(ctx context.Context, r repositories.DateRange) (*repositories.ProfessionTotal, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.ProfessionTotal), args.Error(1)
}

func (m *MockReportService) BestClients(ctx context.Context, r repositories.DateRange, limit int) ([]repositories.ClientTotal, error) {
	args := m.Called(ctx, r, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.ClientTotal), args.Error(1)
}

func (m *MockReportService) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// withProfile stands in for the profile middleware.
func withProfile(p *models.Profile) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if p != nil {
			c.Locals(utils.ProfileLocalsKey, p)
		}
		return c.Next()
	}
}
