package repositories

import (
	"context"

	"jobpay/internal/domain/scope"
	"jobpay/internal/models"
)

// ContractRepository serves scoped contract and job listings.
type ContractRepository interface {
	FindContract(ctx context.Context, id uint, filter scope.Filter) (*models.Contract, error)
	ListContracts(ctx context.Context, filter scope.Filter) ([]*models.Contract, error)
	ListUnpaidJobs(ctx context.Context, filter scope.Filter) ([]*models.Job, error)

	BulkCreateContracts(ctx context.Context, contracts []*models.Contract) error
	BulkCreateJobs(ctx context.Context, jobs []*models.Job) error
}
