package repositories

import (
	"context"
	"errors"
	"fmt"

	"jobpay/internal/domain/scope"
	"jobpay/internal/models"

	"gorm.io/gorm"
)

type contractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{
		db: db,
	}
}

func (r *contractRepository) FindContract(ctx context.Context, id uint, filter scope.Filter) (*models.Contract, error) {
	var contract models.Contract
	query := r.db.WithContext(ctx).Where("contracts.id = ?", id)
	if err := filter.Apply(query).First(&contract).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return &contract, nil
}

func (r *contractRepository) ListContracts(ctx context.Context, filter scope.Filter) ([]*models.Contract, error) {
	var contracts []*models.Contract
	query := r.db.WithContext(ctx).Order("contracts.id")
	if err := filter.Apply(query).Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

func (r *contractRepository) ListUnpaidJobs(ctx context.Context, filter scope.Filter) ([]*models.Job, error) {
	var jobs []*models.Job
	query := r.db.WithContext(ctx).
		Joins(joinContracts).
		Where(unpaidJobs).
		Order("jobs.id")
	if err := filter.Apply(query).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list unpaid jobs: %w", err)
	}
	return jobs, nil
}

func (r *contractRepository) BulkCreateContracts(ctx context.Context, contracts []*models.Contract) error {
	if err := r.db.WithContext(ctx).Omit("Client", "Contractor").Create(contracts).Error; err != nil {
		return fmt.Errorf("failed to bulk create contracts: %w", err)
	}
	return nil
}

func (r *contractRepository) BulkCreateJobs(ctx context.Context, jobs []*models.Job) error {
	if err := r.db.WithContext(ctx).Omit("Contract").Create(jobs).Error; err != nil {
		return fmt.Errorf("failed to bulk create jobs: %w", err)
	}
	return nil
}
