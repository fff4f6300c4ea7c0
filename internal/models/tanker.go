package models

import "time"

// Tanker: istasyondaki yakıt tankı. CurrentLevel [0, Capacity] aralığında
// tutulur; kontrol giriş anında yapılır, transaksiyonel değildir.
type Tanker struct {
	ID           uint `gorm:"primaryKey"`
	StationID    uint `gorm:"index;not null"`
	Station      Station
	Name         string   `gorm:"size:100;not null"`
	FuelType     FuelType `gorm:"size:30;not null"`
	Capacity     float64  `gorm:"not null"` // litre
	CurrentLevel float64  `gorm:"default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type TankerTransactionType string

const (
	TankerTxIncoming TankerTransactionType = "incoming" // dolum
	TankerTxOutgoing TankerTransactionType = "outgoing" // satış/çekiş
)

type TankerTransaction struct {
	ID          uint `gorm:"primaryKey"`
	StationID   uint `gorm:"index;not null"`
	Station     Station
	TankerID    uint `gorm:"index;not null"`
	Tanker      Tanker
	Type        TankerTransactionType `gorm:"size:20;not null"`
	Liters      float64               `gorm:"not null"`
	Date        time.Time             `gorm:"index;not null"`
	Description string                `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
