package models

import "time"

// Kullanıcı tercihleri: yetkili veri değil, hesaplamalarda kullanılan
// istasyon bazlı ayarlar. Eski sistemde tarayıcıda tutuluyordu,
// burada istasyon anahtarıyla tipli tablolarda saklanır.

// BankCommissionRate: banka bazlı kredi kartı komisyon oranı (yüzde).
type BankCommissionRate struct {
	ID        uint    `gorm:"primaryKey"`
	StationID uint    `gorm:"not null;uniqueIndex:idx_commission_station_bank"`
	BankName  string  `gorm:"size:100;not null;uniqueIndex:idx_commission_station_bank"`
	Rate      float64 `gorm:"not null"` // örn: 2.5 => %2.5
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FuelPurchasePrice: yakıt türü bazlı alış fiyatı (kâr hesabı için).
type FuelPurchasePrice struct {
	ID        uint     `gorm:"primaryKey"`
	StationID uint     `gorm:"not null;uniqueIndex:idx_purchase_station_fuel"`
	FuelType  FuelType `gorm:"size:30;not null;uniqueIndex:idx_purchase_station_fuel"`
	Price     float64  `gorm:"not null"` // TL/litre
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfitSnapshot: kaydedilmiş kâr hesabı sonucu.
type ProfitSnapshot struct {
	ID        uint   `gorm:"primaryKey"`
	StationID uint   `gorm:"index;not null"`
	Name      string `gorm:"size:100;not null"`
	Data      string `gorm:"type:jsonb"` // hesap detayı (JSON)
	CreatedAt time.Time
}
