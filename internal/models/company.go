package models

import "time"

// CompanyAccount: istasyona bağlı şirket kasası / cari hesap.
type CompanyAccount struct {
	ID          uint `gorm:"primaryKey"`
	StationID   uint `gorm:"index;not null"`
	Station     Station
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type InvoiceType string

const (
	InvoiceTypeIncome  InvoiceType = "income"  // gelir faturası
	InvoiceTypeExpense InvoiceType = "expense" // gider faturası
)

type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusUnpaid PaymentStatus = "unpaid"
)

// CompanyInvoice: şirket hesabına kesilen gelir/gider faturası.
// Hesap bakiyesi = Σgelir - Σgider, her okumada yeniden hesaplanır.
type CompanyInvoice struct {
	ID            uint `gorm:"primaryKey"`
	StationID     uint `gorm:"index;not null"`
	Station       Station
	AccountID     uint           `gorm:"index;not null"`
	Account       CompanyAccount `gorm:"foreignKey:AccountID"`
	Type          InvoiceType    `gorm:"size:20;not null;index"`
	Amount        float64        `gorm:"not null"`
	InvoiceDate   time.Time      `gorm:"index;not null"`
	PaymentStatus PaymentStatus  `gorm:"size:20;not null;default:unpaid"`
	InvoiceNo     string         `gorm:"size:50"`
	Description   string         `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
