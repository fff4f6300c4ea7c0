package models

import "time"

type ShiftType string

const (
	ShiftTypeDay   ShiftType = "day"   // gündüz vardiyası
	ShiftTypeNight ShiftType = "night" // gece vardiyası
)

type ShiftStatus string

const (
	ShiftStatusOpen   ShiftStatus = "open"
	ShiftStatusClosed ShiftStatus = "closed"
)

// Shift: bir vardiyanın ödeme kanalı toplamları ve otomasyon mutabakatı.
// OverShort her zaman beş ödeme kanalının toplamından otomasyon satışının
// çıkarılmasıyla sunucu tarafında hesaplanır, istemciden gelen değer kullanılmaz.
type Shift struct {
	ID          uint `gorm:"primaryKey"`
	StationID   uint `gorm:"index;not null"`
	Station     Station
	PersonnelID uint `gorm:"index;not null"`
	Personnel   Personnel
	Type        ShiftType `gorm:"size:20;not null;index"`
	StartTime   time.Time `gorm:"index;not null"`
	EndTime     *time.Time

	CashSales      float64 `gorm:"default:0"` // nakit
	CardSales      float64 `gorm:"default:0"` // kredi kartı / POS
	BankTransfers  float64 `gorm:"default:0"` // havale
	LoyaltyCard    float64 `gorm:"default:0"` // sadakat kartı
	Veresiye       float64 `gorm:"default:0"` // veresiye (müşteri zorunlu)
	OtomasyonSatis float64 `gorm:"default:0"` // pompa otomasyonunun bildirdiği toplam

	OverShort float64 // türetilen: kanal toplamı - otomasyon

	// Veresiye tutarı varsa bağlanacak müşteri
	CustomerID *uint
	Customer   *Customer

	// POS cihazının bankası; banka bazlı komisyon raporunda kullanılır
	BankName string `gorm:"size:100"`

	Status    ShiftStatus `gorm:"size:20;not null;default:open"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
