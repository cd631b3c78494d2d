package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is the immutable kind of a profile.
type Role string

const (
	RoleClient     Role = "client"
	RoleContractor Role = "contractor"
)

// Profile is an account holding a balance. Balances only change through a
// ledger transfer.
type Profile struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	FirstName  string          `gorm:"not null" json:"firstName"`
	LastName   string          `gorm:"not null" json:"lastName"`
	Profession string          `gorm:"not null" json:"profession"`
	Balance    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0;check:balance_non_negative,balance >= 0" json:"balance"`
	Type       Role            `gorm:"type:varchar(16);not null;index" json:"type"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (p *Profile) IsClient() bool {
	return p != nil && p.Type == RoleClient
}

// FullName joins first and last name with a single space.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
