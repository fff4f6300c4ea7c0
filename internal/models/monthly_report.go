package models

import "time"

// MonthlyReport: ay sonunda hesaplanan rapor özetinin saklanması.
// Detaylar JSONB olarak tutulur, toplamlar hızlı listeleme için kolon.
type MonthlyReport struct {
	ID         uint `gorm:"primaryKey"`
	StationID  uint `gorm:"index;not null"`
	Station    Station
	Year       int       `gorm:"index;not null"`
	Month      int       `gorm:"index;not null"` // 1-12
	ReportDate time.Time `gorm:"not null"`       // rapor oluşturulma tarihi

	TotalSales     float64 `gorm:"default:0"` // tüm ödeme kanalları toplamı
	TotalLiters    float64 `gorm:"default:0"`
	TotalOverShort float64 `gorm:"default:0"`

	// Detaylı rapor verileri (reconcile.Report JSON'u)
	ReportData string `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
