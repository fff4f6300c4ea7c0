package models

import "time"

type UserRole string

const (
	RoleStationAdmin UserRole = "station_admin" // istasyon sahibi / yönetici
	RoleAttendant    UserRole = "attendant"     // pompacı
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	StationID    *uint
	Station      *Station
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
