// Package contract serves the caller-scoped contract and job listings.
package contract

import (
	"context"
	"errors"

	"jobpay/internal/domain/scope"
	appErrors "jobpay/internal/errors"
	"jobpay/internal/models"
	"jobpay/internal/repositories"
)

type Service interface {
	GetContract(ctx context.Context, caller *models.Profile, id uint) (*models.Contract, error)
	ListActiveContracts(ctx context.Context, caller *models.Profile) ([]*models.Contract, error)
	ListUnpaidJobs(ctx context.Context, caller *models.Profile) ([]*models.Job, error)
}

type service struct {
	repo repositories.ContractRepository
}

func NewService(repo repositories.ContractRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

// GetContract hides contracts of other profiles behind ErrNotFound.
func (s *service) GetContract(ctx context.Context, caller *models.Profile, id uint) (*models.Contract, error) {
	contract, err := s.repo.FindContract(ctx, id, scope.ByProfile(caller))
	if err != nil {
		if errors.Is(err, repositories.ErrContractNotFound) {
			return nil, appErrors.ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (s *service) ListActiveContracts(ctx context.Context, caller *models.Profile) ([]*models.Contract, error) {
	return s.repo.ListContracts(ctx, scope.ByProfile(caller).And(scope.Active()))
}

// ListUnpaidJobs only considers contracts that are in progress.
func (s *service) ListUnpaidJobs(ctx context.Context, caller *models.Profile) ([]*models.Job, error) {
	filter := scope.ByProfile(caller).And(scope.ByStatuses(models.ContractStatusInProgress))
	return s.repo.ListUnpaidJobs(ctx, filter)
}
