package models

import "time"

// Customer: veresiye müşterisi (cari hesap).
type Customer struct {
	ID        uint `gorm:"primaryKey"`
	StationID uint `gorm:"index;not null"`
	Station   Station
	Name      string `gorm:"size:150;not null"`
	Phone     string `gorm:"size:50"`
	TaxNumber string `gorm:"size:20"` // e-fatura kesilecekse gerekli
	Address   string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CustomerTransactionType string

const (
	CustomerTxDebt    CustomerTransactionType = "debt"    // borç (veresiye satış)
	CustomerTxPayment CustomerTransactionType = "payment" // tahsilat
)

// CustomerTransaction: müşteri cari hareketi. Bakiye saklanmaz,
// her okumada Σborç - Σödeme olarak yeniden hesaplanır.
type CustomerTransaction struct {
	ID          uint `gorm:"primaryKey"`
	StationID   uint `gorm:"index;not null"`
	Station     Station
	CustomerID  uint `gorm:"index;not null"`
	Customer    Customer
	Type        CustomerTransactionType `gorm:"size:20;not null;index"`
	Amount      float64                 `gorm:"not null"`
	Date        time.Time               `gorm:"index;not null"`
	PersonnelID *uint
	Personnel   *Personnel
	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
