package models

import "time"

type CheckType string

const (
	CheckTypePayable    CheckType = "payable"    // verilen çek
	CheckTypeReceivable CheckType = "receivable" // alınan çek
)

type CheckStatus string

const (
	CheckStatusPending   CheckStatus = "pending"
	CheckStatusPaid      CheckStatus = "paid"
	CheckStatusCancelled CheckStatus = "cancelled"
)

// Check: alınan/verilen çek kaydı.
type Check struct {
	ID          uint `gorm:"primaryKey"`
	StationID   uint `gorm:"index;not null"`
	Station     Station
	Type        CheckType   `gorm:"size:20;not null;index"`
	Amount      float64     `gorm:"not null"`
	IssueDate   time.Time   `gorm:"not null"`       // keşide tarihi
	DueDate     time.Time   `gorm:"index;not null"` // vade tarihi
	Status      CheckStatus `gorm:"size:20;not null;default:pending"`
	BankName    string      `gorm:"size:100"`
	Description string      `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
