package repositories

import (
	"context"
	"fmt"

	"jobpay/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{
		db: db,
	}
}

// paidJobs joins every paid job in r to its contract. The caller adds the
// profile join for the side it groups by.
func (r *reportRepository) paidJobs(ctx context.Context, dr DateRange) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Joins(joinContracts).
		Where("jobs.paid = ?", true)
	if dr.Start != nil {
		query = query.Where("jobs.payment_date >= ?", *dr.Start)
	}
	if dr.End != nil {
		query = query.Where("jobs.payment_date <= ?", *dr.End)
	}
	return query
}

func (r *reportRepository) BestProfession(ctx context.Context, dr DateRange) (*ProfessionTotal, error) {
	var rows []ProfessionTotal
	err := r.paidJobs(ctx, dr).
		Select("profiles.profession AS profession, SUM(jobs.price) AS total").
		Joins("JOIN profiles ON profiles.id = contracts.contractor_id").
		Group("profiles.profession").
		Order("total DESC, profession ASC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate professions: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

type clientTotalRow struct {
	ID        uint
	FirstName string
	LastName  string
	Paid      decimal.Decimal
}

func (r *reportRepository) BestClients(ctx context.Context, dr DateRange, limit int) ([]ClientTotal, error) {
	var rows []clientTotalRow
	err := r.paidJobs(ctx, dr).
		Select("profiles.id AS id, profiles.first_name AS first_name, profiles.last_name AS last_name, SUM(jobs.price) AS paid").
		Joins("JOIN profiles ON profiles.id = contracts.client_id").
		Group("profiles.id, profiles.first_name, profiles.last_name").
		Order("paid DESC, id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate clients: %w", err)
	}

	clients := make([]ClientTotal, 0, len(rows))
	for _, c := range rows {
		clients = append(clients, ClientTotal{
			ID:       c.ID,
			FullName: c.FirstName + " " + c.LastName,
			Paid:     c.Paid,
		})
	}
	return clients, nil
}
