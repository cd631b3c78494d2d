package repositories

import (
	"context"
	"time"

	"jobpay/internal/domain/scope"
	"jobpay/internal/models"

	"github.com/shopspring/decimal"
)

// LedgerRepository defines the storage operations behind money movement.
//
// Methods that mutate state are only meaningful inside ExecuteInTransaction;
// outside it each call commits on its own.
type LedgerRepository interface {
	// Reads
	GetProfile(ctx context.Context, id uint) (*models.Profile, error)
	FindUnpaidJob(ctx context.Context, jobID uint, filter scope.Filter) (*models.Job, error)
	SumUnpaidJobs(ctx context.Context, filter scope.Filter) (decimal.Decimal, error)

	// Writes
	ClaimJobPayment(ctx context.Context, jobID uint, at time.Time) error
	Transfer(ctx context.Context, t *models.Transfer) error

	ExecuteInTransaction(ctx context.Context, fn func(LedgerRepository) error) error
}
