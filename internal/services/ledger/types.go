package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerConfig holds configuration for ledger operations
type LedgerConfig struct {
	// DepositCapRatio is the share of the depositor's unpaid job total that
	// a single deposit may not exceed.
	DepositCapRatio   float64
	ProcessingTimeout time.Duration
	Clock             func() time.Time
}

// TransferRequest describes one balance movement.
type TransferRequest struct {
	Kind          string
	SourceID      uint
	DestinationID uint
	Amount        decimal.Decimal
	JobID         *uint
}

// MetricsCollector defines the interface for collecting ledger metrics
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)
	RecordTransfer(kind string, amount decimal.Decimal)
	RecordError(operation, errType string)
}
