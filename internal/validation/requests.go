package validation

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositRequest is the body of a balance deposit.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"money"`
}

// Deposit validates a deposit body
func (v *Validator) Deposit(req *DepositRequest) {
	v.Struct(req)
}

// ReportQuery is the query string of the admin reports. A nil Limit means
// the query did not set one.
type ReportQuery struct {
	Start string `query:"start" validate:"omitempty,timestamp"`
	End   string `query:"end" validate:"omitempty,timestamp"`
	Limit *int   `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Report validates a report query, including that the range is ordered.
func (v *Validator) Report(q *ReportQuery) {
	v.Struct(q)
	if !v.Valid() {
		return
	}
	start, end := q.Bounds()
	if start != nil && end != nil {
		v.Check(!end.Before(*start), "end", "must not be before start")
	}
}

// Bounds returns the parsed range ends, nil where absent. Call after Report
// has accepted q.
func (q *ReportQuery) Bounds() (start, end *time.Time) {
	if t, ok := ParseTimestamp(q.Start); ok {
		start = &t
	}
	if t, ok := ParseTimestamp(q.End); ok {
		end = &t
	}
	return start, end
}

// ClientLimit returns the requested limit, or DefaultReportLimit when the
// query left it out.
func (q *ReportQuery) ClientLimit() int {
	if q.Limit == nil {
		return DefaultReportLimit
	}
	return *q.Limit
}
