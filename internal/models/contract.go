package models

import "time"

// ContractStatus moves new -> in_progress -> terminated. Termination is
// driven outside the ledger.
type ContractStatus string

const (
	ContractStatusNew        ContractStatus = "new"
	ContractStatusInProgress ContractStatus = "in_progress"
	ContractStatusTerminated ContractStatus = "terminated"
)

// Contract binds one client profile to one contractor profile.
type Contract struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Terms        string         `gorm:"type:text;not null" json:"terms"`
	Status       ContractStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	ClientID     uint           `gorm:"not null;index" json:"clientId"`
	ContractorID uint           `gorm:"not null;index" json:"contractorId"`
	Client       *Profile       `gorm:"foreignKey:ClientID" json:"-"`
	Contractor   *Profile       `gorm:"foreignKey:ContractorID" json:"-"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}
