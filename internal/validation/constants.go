package validation

import "github.com/shopspring/decimal"

const (
	// Amount precision
	AmountScale = 2

	// Report limits
	DefaultReportLimit = 2
	MinReportLimit     = 1
	MaxReportLimit     = 100
)

// MinAmount is the smallest movable amount.
var MinAmount = decimal.New(1, -AmountScale)
