package models

import "time"

// Station: kiracı (tenant). Her kayıt bir istasyona aittir.
type Station struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	Address   string `gorm:"size:255"`
	Phone     string `gorm:"size:50"`
	TaxNumber string `gorm:"size:20"`  // vergi numarası (e-fatura için gerekli)
	TaxOffice string `gorm:"size:100"` // vergi dairesi
	CreatedAt time.Time
	UpdatedAt time.Time

	Users []User
}
