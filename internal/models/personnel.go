package models

import "time"

// Personnel: istasyon personeli (pompacı). Vardiya ve satış kayıtları
// personele bağlanır; pompacı girişi PIN ile yapılır.
type Personnel struct {
	ID        uint `gorm:"primaryKey"`
	StationID uint `gorm:"index;not null"`
	Station   Station
	Name      string `gorm:"size:100;not null"`
	Phone     string `gorm:"size:50"`
	PINHash   string `gorm:"size:255;not null"` // pompacı giriş PIN'i (bcrypt)
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
