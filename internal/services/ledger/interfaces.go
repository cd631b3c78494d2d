package ledger

import (
	"context"

	"jobpay/internal/domain/scope"
	"jobpay/internal/models"

	"github.com/shopspring/decimal"
)

// Service defines the ledger operations
type Service interface {
	// ResolveScope returns the contract filter a caller is confined to.
	ResolveScope(caller *models.Profile) scope.Filter

	Transfer(ctx context.Context, req TransferRequest) (*models.Transfer, error)
	PayJob(ctx context.Context, jobID uint, caller *models.Profile) error
	Deposit(ctx context.Context, caller *models.Profile, destinationID uint, amount decimal.Decimal) error
}

// ReportInvalidator drops cached aggregates after paid jobs change.
type ReportInvalidator interface {
	Invalidate(ctx context.Context) error
}
