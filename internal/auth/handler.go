package auth

import (
	"strings"

	"istasyon-backend/internal/config"
	"istasyon-backend/internal/database"
	"istasyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterStationRequest struct {
	StationName string `json:"station_name"`
	TaxNumber   string `json:"tax_number"`
	TaxOffice   string `json:"tax_office"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AttendantLoginRequest struct {
	StationID   uint   `json:"station_id"`
	PersonnelID uint   `json:"personnel_id"`
	PIN         string `json:"pin"`
}

// POST /api/auth/register-station
// İstasyon + yönetici hesabını birlikte oluşturur.
func RegisterStationHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterStationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.StationName == "" || body.Email == "" || body.Password == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İstasyon adı, isim, email ve şifre zorunlu")
		}

		var count int64
		database.DB.Model(&models.Station{}).
			Where("name = ?", body.StationName).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu isimde bir istasyon zaten var")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		station := models.Station{
			Name:      body.StationName,
			TaxNumber: body.TaxNumber,
			TaxOffice: body.TaxOffice,
		}
		if err := database.DB.Create(&station).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İstasyon oluşturulamadı")
		}

		user := models.User{
			StationID:    &station.ID,
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleStationAdmin,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"station_id": station.ID,
			"user_id":    user.ID,
			"email":      user.Email,
			"role":       user.Role,
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":         user.ID,
				"name":       user.Name,
				"email":      user.Email,
				"role":       user.Role,
				"station_id": user.StationID,
			},
		})
	}
}

// POST /api/auth/attendant-login
// Pompacı girişi: personel id + PIN (bcrypt karşılaştırması sunucuda).
func AttendantLoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AttendantLoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.StationID == 0 || body.PersonnelID == 0 || body.PIN == "" {
			return fiber.NewError(fiber.StatusBadRequest, "station_id, personnel_id ve pin zorunlu")
		}

		var p models.Personnel
		if err := database.DB.
			Where("id = ? AND station_id = ? AND is_active = ?", body.PersonnelID, body.StationID, true).
			First(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Personel bulunamadı veya PIN hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(p.PINHash), []byte(body.PIN)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Personel bulunamadı veya PIN hatalı")
		}

		token, err := GenerateAttendantToken(cfg.JWTSecret, &p)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"personnel": fiber.Map{
				"id":         p.ID,
				"name":       p.Name,
				"station_id": p.StationID,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(CtxUserRoleKey)
		stationIDVal := c.Locals(CtxStationIDKey)

		if pID := PersonnelIDFromCtx(c); pID != nil {
			var p models.Personnel
			if err := database.DB.First(&p, *pID).Error; err == nil {
				return c.JSON(fiber.Map{
					"personnel_id": p.ID,
					"name":         p.Name,
					"role":         models.RoleAttendant,
					"station_id":   p.StationID,
				})
			}
		}

		userIDVal := c.Locals(CtxUserIDKey)
		var user models.User
		if userID, ok := userIDVal.(uint); ok {
			if err := database.DB.First(&user, userID).Error; err == nil {
				response := fiber.Map{
					"user_id":    user.ID,
					"name":       user.Name,
					"email":      user.Email,
					"role":       user.Role,
					"station_id": user.StationID,
				}

				if user.StationID != nil {
					var station models.Station
					if err := database.DB.First(&station, *user.StationID).Error; err == nil {
						response["station"] = fiber.Map{
							"id":         station.ID,
							"name":       station.Name,
							"tax_number": station.TaxNumber,
							"tax_office": station.TaxOffice,
						}
					}
				}

				return c.JSON(response)
			}
		}

		// Fallback: veritabanından çekilemezse locals'dan döndür
		return c.JSON(fiber.Map{
			"user_id":    userIDVal,
			"role":       roleVal,
			"station_id": stationIDVal,
		})
	}
}
