package tanker

import (
	"fmt"
	"strings"
	"time"

	"istasyon-backend/internal/audit"
	"istasyon-backend/internal/auth"
	"istasyon-backend/internal/database"
	"istasyon-backend/internal/models"
	"istasyon-backend/internal/reconcile"

	"github.com/gofiber/fiber/v2"
)

type CreateTankerRequest struct {
	Name         string  `json:"name"`
	FuelType     string  `json:"fuel_type"`
	Capacity     float64 `json:"capacity"`
	CurrentLevel float64 `json:"current_level"`
}

type TankerResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	FuelType     string  `json:"fuel_type"`
	Capacity     float64 `json:"capacity"`
	CurrentLevel float64 `json:"current_level"`
	FillPercent  float64 `json:"fill_percent"`
}

type CreateTankerTxRequest struct {
	TankerID    uint    `json:"tanker_id"`
	Type        string  `json:"type"` // "incoming" | "outgoing"
	Liters      float64 `json:"liters"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type TankerTxResponse struct {
	ID          uint    `json:"id"`
	TankerID    uint    `json:"tanker_id"`
	Type        string  `json:"type"`
	Liters      float64 `json:"liters"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	NewLevel    float64 `json:"new_level"`
}

func toTankerResponse(t models.Tanker) TankerResponse {
	resp := TankerResponse{
		ID:           t.ID,
		Name:         t.Name,
		FuelType:     string(t.FuelType),
		Capacity:     t.Capacity,
		CurrentLevel: t.CurrentLevel,
	}
	if t.Capacity > 0 {
		resp.FillPercent = t.CurrentLevel / t.Capacity * 100
	}
	return resp
}

// POST /api/tankers
func CreateTankerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateTankerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Tank adı boş olamaz")
		}
		if !models.ValidFuelType(models.FuelType(body.FuelType)) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz yakıt türü")
		}
		if body.Capacity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Kapasite 0'dan büyük olmalı")
		}
		if body.CurrentLevel < 0 || body.CurrentLevel > body.Capacity {
			return fiber.NewError(fiber.StatusBadRequest, "Seviye 0 ile kapasite arasında olmalı")
		}

		t := models.Tanker{
			StationID:    stationID,
			Name:         strings.TrimSpace(body.Name),
			FuelType:     models.FuelType(body.FuelType),
			Capacity:     body.Capacity,
			CurrentLevel: body.CurrentLevel,
		}
		if err := database.DB.Create(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tank kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(toTankerResponse(t))
	}
}

// GET /api/tankers
func ListTankersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var tankers []models.Tanker
		if err := database.DB.Where("station_id = ?", stationID).Order("name asc").Find(&tankers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tanklar listelenemedi")
		}

		resp := make([]TankerResponse, 0, len(tankers))
		for _, t := range tankers {
			resp = append(resp, toTankerResponse(t))
		}
		return c.JSON(resp)
	}
}

// DELETE /api/tankers/:id
func DeleteTankerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var t models.Tanker
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tank bulunamadı")
		}

		var txCount int64
		database.DB.Model(&models.TankerTransaction{}).Where("tanker_id = ?", t.ID).Count(&txCount)
		if txCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Hareketi olan tank silinemez")
		}

		if err := database.DB.Delete(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tank silinemedi")
		}
		return c.JSON(fiber.Map{"deleted": t.ID})
	}
}

// POST /api/tanker-transactions
// Dolum tankı kapasitenin üstüne çıkaramaz, çekiş seviyeyi eksiye düşüremez.
func CreateTankerTxHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateTankerTxRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Type != string(models.TankerTxIncoming) && body.Type != string(models.TankerTxOutgoing) {
			return fiber.NewError(fiber.StatusBadRequest, "type 'incoming' veya 'outgoing' olmalı")
		}
		if body.Liters <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Litre 0'dan büyük olmalı")
		}

		var t models.Tanker
		if err := database.DB.Where("id = ? AND station_id = ?", body.TankerID, stationID).First(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tank bulunamadı")
		}

		var date time.Time
		if body.Date == "" {
			date = time.Now()
		} else {
			date, err = time.ParseInLocation("2006-01-02", body.Date, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
		}

		newLevel := t.CurrentLevel
		switch models.TankerTransactionType(body.Type) {
		case models.TankerTxIncoming:
			newLevel += body.Liters
			if newLevel > t.Capacity {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Dolum kapasiteyi aşıyor: mevcut %.0f, kapasite %.0f", t.CurrentLevel, t.Capacity))
			}
		case models.TankerTxOutgoing:
			newLevel -= body.Liters
			if newLevel < 0 {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Tankta yeterli yakıt yok: mevcut %.0f", t.CurrentLevel))
			}
		}

		tx := models.TankerTransaction{
			StationID:   stationID,
			TankerID:    t.ID,
			Type:        models.TankerTransactionType(body.Type),
			Liters:      body.Liters,
			Date:        date,
			Description: body.Description,
		}
		if err := database.DB.Create(&tx).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareket kaydedilemedi")
		}

		t.CurrentLevel = newLevel
		if err := database.DB.Save(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tank seviyesi güncellenemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		label := "Dolum"
		if tx.Type == models.TankerTxOutgoing {
			label = "Çekiş"
		}
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &tx.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "tanker_transaction",
			EntityID:    tx.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("%s: %s - %.0f litre", label, t.Name, tx.Liters),
			After: TankerTxResponse{
				ID: tx.ID, TankerID: tx.TankerID, Type: string(tx.Type),
				Liters: tx.Liters, Date: tx.Date.Format("2006-01-02"),
				Description: tx.Description, NewLevel: newLevel,
			},
		})

		return c.Status(fiber.StatusCreated).JSON(TankerTxResponse{
			ID:          tx.ID,
			TankerID:    tx.TankerID,
			Type:        string(tx.Type),
			Liters:      tx.Liters,
			Date:        tx.Date.Format("2006-01-02"),
			Description: tx.Description,
			NewLevel:    newLevel,
		})
	}
}

// GET /api/tanker-transactions?tanker_id=&from=&to=
func ListTankerTxHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.TankerTransaction{}).Where("station_id = ?", stationID)

		if tidStr := c.Query("tanker_id"); tidStr != "" {
			var tid uint
			if _, err := fmt.Sscan(tidStr, &tid); err != nil || tid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "tanker_id geçersiz")
			}
			dbq = dbq.Where("tanker_id = ?", tid)
		}
		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
			}
			dbq = dbq.Where("date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
			}
			dbq = dbq.Where("date < ?", reconcile.DayRangeEnd(to))
		}

		var txs []models.TankerTransaction
		if err := dbq.Order("date asc, id asc").Find(&txs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareketler listelenemedi")
		}

		resp := make([]TankerTxResponse, 0, len(txs))
		for _, tx := range txs {
			resp = append(resp, TankerTxResponse{
				ID:          tx.ID,
				TankerID:    tx.TankerID,
				Type:        string(tx.Type),
				Liters:      tx.Liters,
				Date:        tx.Date.Format("2006-01-02"),
				Description: tx.Description,
			})
		}
		return c.JSON(resp)
	}
}
