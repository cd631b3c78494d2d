package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job is a billable unit of work under a contract.
//
// Paid is stored as a nullable boolean: NULL and false both mean unpaid.
// Code should go through PaymentState rather than reading Paid directly.
type Job struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Paid        *bool           `json:"paid"`
	PaymentDate *time.Time      `gorm:"index" json:"paymentDate"`
	ContractID  uint            `gorm:"not null;index" json:"contractId"`
	Contract    *Contract       `json:"contract,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PaymentState is either Unpaid or Paid since a given instant.
type PaymentState struct {
	paid  bool
	since time.Time
}

// Unpaid is the single not-yet-paid state.
func Unpaid() PaymentState { return PaymentState{} }

// PaidAt returns the paid state settled at t.
func PaidAt(t time.Time) PaymentState { return PaymentState{paid: true, since: t} }

func (s PaymentState) IsPaid() bool { return s.paid }

// Since returns when the job was paid; zero for Unpaid.
func (s PaymentState) Since() time.Time { return s.since }

func (s PaymentState) String() string {
	if !s.paid {
		return "unpaid"
	}
	return "paid"
}

// PaymentState collapses the stored tri-state into the two-variant tag.
func (j *Job) PaymentState() PaymentState {
	if j.Paid == nil || !*j.Paid {
		return Unpaid()
	}
	var since time.Time
	if j.PaymentDate != nil {
		since = *j.PaymentDate
	}
	return PaidAt(since)
}

// MarkPaid applies the paid state to the in-memory row.
func (j *Job) MarkPaid(at time.Time) {
	paid := true
	j.Paid = &paid
	j.PaymentDate = &at
}
