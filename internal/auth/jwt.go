package auth

import (
	"time"

	"istasyon-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type JWTCustomClaims struct {
	UserID      uint            `json:"user_id"`
	Email       string          `json:"email"`
	Role        models.UserRole `json:"role"`
	StationID   *uint           `json:"station_id"`
	PersonnelID *uint           `json:"personnel_id"` // sadece pompacı token'larında dolu
	jwt.RegisteredClaims
}

func GenerateToken(secret string, user *models.User) (string, error) {
	claims := &JWTCustomClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		StationID: user.StationID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // 1 gün
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateAttendantToken: pompacı girişi için token. Vardiya süresini
// aşmaması için 12 saat geçerli.
func GenerateAttendantToken(secret string, p *models.Personnel) (string, error) {
	stationID := p.StationID
	personnelID := p.ID
	claims := &JWTCustomClaims{
		Role:        models.RoleAttendant,
		StationID:   &stationID,
		PersonnelID: &personnelID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
