package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DateRange bounds payment dates inclusively. Nil ends are open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

type ProfessionTotal struct {
	Profession string          `json:"profession"`
	Total      decimal.Decimal `json:"total"`
}

type ClientTotal struct {
	ID       uint            `json:"id"`
	FullName string          `json:"fullName"`
	Paid     decimal.Decimal `json:"paid"`
}

// ReportRepository aggregates paid jobs. All methods are plain reads.
type ReportRepository interface {
	// BestProfession returns nil when no paid job falls in the range.
	BestProfession(ctx context.Context, r DateRange) (*ProfessionTotal, error)
	BestClients(ctx context.Context, r DateRange, limit int) ([]ClientTotal, error)
}
