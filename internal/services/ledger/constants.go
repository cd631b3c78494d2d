package ledger

import "time"

// Default configuration values
const (
	DefaultTimeout         = 30 * time.Second
	DefaultDepositCapRatio = 0.25
)

// Operation names used for metrics, logs and spans
const (
	OpTransfer = "transfer"
	OpPayJob   = "pay_job"
	OpDeposit  = "deposit"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

const tracerName = "jobpay/internal/services/ledger"
