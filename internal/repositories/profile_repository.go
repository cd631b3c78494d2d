package repositories

import (
	"context"

	"jobpay/internal/models"

	"github.com/shopspring/decimal"
)

// ProfileRepository resolves caller identities and manages profile rows.
type ProfileRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Profile, error)
	GetClient(ctx context.Context, id uint) (*models.Profile, error)
	BulkCreate(ctx context.Context, profiles []*models.Profile) error
	List(ctx context.Context) ([]*models.Profile, error)
	TotalBalance(ctx context.Context) (decimal.Decimal, error)
}
