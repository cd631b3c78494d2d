package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobpay/internal/domain/scope"
	"jobpay/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const joinContracts = "JOIN contracts ON contracts.id = jobs.contract_id"

// unpaidJobs matches NULL and false alike.
const unpaidJobs = "jobs.paid IS NOT TRUE"

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

func (r *ledgerRepository) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *ledgerRepository) FindUnpaidJob(ctx context.Context, jobID uint, filter scope.Filter) (*models.Job, error) {
	var job models.Job
	query := r.db.WithContext(ctx).
		Preload("Contract").
		Joins(joinContracts).
		Where("jobs.id = ?", jobID).
		Where(unpaidJobs)

	if err := filter.Apply(query).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

func (r *ledgerRepository) SumUnpaidJobs(ctx context.Context, filter scope.Filter) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Joins(joinContracts).
		Where(unpaidJobs).
		Select("COALESCE(SUM(jobs.price), 0)")

	var total decimal.Decimal
	if err := filter.Apply(query).Row().Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum unpaid jobs: %w", err)
	}
	return total, nil
}

// ClaimJobPayment flips the job to paid only if it is still unpaid. A job
// that was settled concurrently yields ErrJobAlreadyPaid.
func (r *ledgerRepository) ClaimJobPayment(ctx context.Context, jobID uint, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ? AND paid IS NOT TRUE", jobID).
		Updates(map[string]interface{}{
			"paid":         true,
			"payment_date": at,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark job paid: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrJobAlreadyPaid
	}
	return nil
}

// Transfer moves t.Amount from t.SourceID to t.DestinationID and records t.
//
// Both profile rows are locked in ascending id order before either is
// written, so opposite transfers between the same pair cannot deadlock.
// The debit is conditioned on the balance covering the amount.
func (r *ledgerRepository) Transfer(ctx context.Context, t *models.Transfer) error {
	if t.SourceID == t.DestinationID {
		return ErrSameAccount
	}
	db := r.db.WithContext(ctx)

	ids := []uint{t.SourceID, t.DestinationID}
	if ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
	}

	var locked []models.Profile
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&locked).Error; err != nil {
		return fmt.Errorf("failed to lock profiles: %w", err)
	}
	if len(locked) != 2 {
		return ErrProfileNotFound
	}

	debit := db.Model(&models.Profile{}).
		Where("id = ? AND balance >= ?", t.SourceID, t.Amount).
		Update("balance", gorm.Expr("balance - ?", t.Amount))
	if debit.Error != nil {
		if isCheckViolation(debit.Error) {
			return ErrInsufficientFunds
		}
		return fmt.Errorf("failed to debit profile %d: %w", t.SourceID, debit.Error)
	}
	if debit.RowsAffected == 0 {
		return ErrInsufficientFunds
	}

	credit := db.Model(&models.Profile{}).
		Where("id = ?", t.DestinationID).
		Update("balance", gorm.Expr("balance + ?", t.Amount))
	if credit.Error != nil {
		return fmt.Errorf("failed to credit profile %d: %w", t.DestinationID, credit.Error)
	}
	if credit.RowsAffected == 0 {
		return ErrProfileNotFound
	}

	if t.Reference == "" {
		t.Reference = uuid.NewString()
	}
	if err := db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to record transfer: %w", err)
	}
	return nil
}

func (r *ledgerRepository) ExecuteInTransaction(ctx context.Context, fn func(LedgerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}
