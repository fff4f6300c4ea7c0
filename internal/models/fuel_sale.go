package models

import "time"

type FuelType string

const (
	FuelBenzin     FuelType = "BENZİN"
	FuelMotorin    FuelType = "MOTORİN"
	FuelMotorinEko FuelType = "MOTORİN_EKO"
	FuelLPG        FuelType = "LPG"
	FuelGazyagi    FuelType = "GAZYAĞI"
)

// FuelTypes: istasyonda satılan beş yakıt kategorisi.
var FuelTypes = []FuelType{FuelBenzin, FuelMotorin, FuelMotorinEko, FuelLPG, FuelGazyagi}

func ValidFuelType(t FuelType) bool {
	for _, ft := range FuelTypes {
		if ft == t {
			return true
		}
	}
	return false
}

// FuelSale: tek bir yakıt satış kaydı. PricePerLiter türetilir
// (TotalAmount / Liters), istemciden gelen değer kullanılmaz.
type FuelSale struct {
	ID            uint `gorm:"primaryKey"`
	StationID     uint `gorm:"index;not null"`
	Station       Station
	FuelType      FuelType  `gorm:"size:30;not null;index"`
	Liters        float64   `gorm:"not null"`
	PricePerLiter float64   // türetilen
	TotalAmount   float64   `gorm:"not null"`
	SaleTime      time.Time `gorm:"index;not null"`
	PersonnelID   uint      `gorm:"index;not null"`
	Personnel     Personnel
	ShiftType     ShiftType `gorm:"size:20;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
