package personnel

import (
	"fmt"
	"strings"

	"istasyon-backend/internal/audit"
	"istasyon-backend/internal/auth"
	"istasyon-backend/internal/database"
	"istasyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type CreatePersonnelRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	PIN   string `json:"pin"` // 4-6 haneli
}

type UpdatePersonnelRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	PIN      *string `json:"pin"`
	IsActive *bool   `json:"is_active"`
}

type PersonnelResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"is_active"`
}

func toPersonnelResponse(p models.Personnel) PersonnelResponse {
	return PersonnelResponse{ID: p.ID, Name: p.Name, Phone: p.Phone, IsActive: p.IsActive}
}

func validPIN(pin string) bool {
	if len(pin) < 4 || len(pin) > 6 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// POST /api/personnel
func CreatePersonnelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreatePersonnelRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Personel adı boş olamaz")
		}
		if !validPIN(body.PIN) {
			return fiber.NewError(fiber.StatusBadRequest, "PIN 4-6 haneli rakam olmalı")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.PIN), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "PIN işlenemedi")
		}

		p := models.Personnel{
			StationID: stationID,
			Name:      strings.TrimSpace(body.Name),
			Phone:     body.Phone,
			PINHash:   string(hash),
			IsActive:  true,
		}
		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel kaydedilemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &p.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "personnel",
			EntityID:    p.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Personel eklendi: %s", p.Name),
			After:       toPersonnelResponse(p),
		})

		return c.Status(fiber.StatusCreated).JSON(toPersonnelResponse(p))
	}
}

// GET /api/personnel?active=true
func ListPersonnelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Where("station_id = ?", stationID)
		if c.Query("active") == "true" {
			dbq = dbq.Where("is_active = ?", true)
		}

		var list []models.Personnel
		if err := dbq.Order("name asc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personeller listelenemedi")
		}

		resp := make([]PersonnelResponse, 0, len(list))
		for _, p := range list {
			resp = append(resp, toPersonnelResponse(p))
		}
		return c.JSON(resp)
	}
}

// PUT /api/personnel/:id
func UpdatePersonnelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var body UpdatePersonnelRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		var p models.Personnel
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}
		before := toPersonnelResponse(p)

		if body.Name != nil {
			if strings.TrimSpace(*body.Name) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Personel adı boş olamaz")
			}
			p.Name = strings.TrimSpace(*body.Name)
		}
		if body.Phone != nil {
			p.Phone = *body.Phone
		}
		if body.PIN != nil {
			if !validPIN(*body.PIN) {
				return fiber.NewError(fiber.StatusBadRequest, "PIN 4-6 haneli rakam olmalı")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.PIN), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "PIN işlenemedi")
			}
			p.PINHash = string(hash)
		}
		if body.IsActive != nil {
			p.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel güncellenemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &p.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "personnel",
			EntityID:    p.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Personel güncellendi: %s", p.Name),
			Before:      before,
			After:       toPersonnelResponse(p),
		})

		return c.JSON(toPersonnelResponse(p))
	}
}

// DELETE /api/personnel/:id
// Vardiya kaydı olan personel silinmez, pasife alınır.
func DeletePersonnelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var p models.Personnel
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		var shiftCount int64
		database.DB.Model(&models.Shift{}).Where("personnel_id = ?", p.ID).Count(&shiftCount)
		if shiftCount > 0 {
			p.IsActive = false
			if err := database.DB.Save(&p).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Personel pasife alınamadı")
			}
			return c.JSON(fiber.Map{"deactivated": p.ID})
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel silinemedi")
		}
		return c.JSON(fiber.Map{"deleted": p.ID})
	}
}
