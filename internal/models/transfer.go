package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer kinds
const (
	TransferKindJobPayment = "job_payment"
	TransferKindDeposit    = "deposit"
)

// Transfer is the audit row written alongside every committed balance
// movement.
type Transfer struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	Reference     string          `gorm:"uniqueIndex;not null" json:"reference"`
	Kind          string          `gorm:"type:varchar(32);not null" json:"kind"`
	SourceID      uint            `gorm:"not null;index" json:"sourceId"`
	DestinationID uint            `gorm:"not null;index" json:"destinationId"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	JobID         *uint           `gorm:"index" json:"jobId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}
