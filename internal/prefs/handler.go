package prefs

import (
	"encoding/json"
	"strings"

	"istasyon-backend/internal/auth"
	"istasyon-backend/internal/database"
	"istasyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Banka komisyon oranları
// -------------------------

type CommissionRateRequest struct {
	BankName string  `json:"bank_name"`
	Rate     float64 `json:"rate"` // yüzde
}

type CommissionRateResponse struct {
	ID       uint    `json:"id"`
	BankName string  `json:"bank_name"`
	Rate     float64 `json:"rate"`
}

// PUT /api/prefs/commission-rates
// Aynı banka için ikinci kayıt güncelleme sayılır (upsert).
func UpsertCommissionRateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CommissionRateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}
		if strings.TrimSpace(body.BankName) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Banka adı boş olamaz")
		}
		if body.Rate < 0 || body.Rate > 100 {
			return fiber.NewError(fiber.StatusBadRequest, "Oran 0-100 arası olmalı")
		}

		bank := strings.TrimSpace(body.BankName)
		var rate models.BankCommissionRate
		err = database.DB.Where("station_id = ? AND bank_name = ?", stationID, bank).First(&rate).Error
		if err == nil {
			rate.Rate = body.Rate
			if err := database.DB.Save(&rate).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Oran güncellenemedi")
			}
		} else {
			rate = models.BankCommissionRate{StationID: stationID, BankName: bank, Rate: body.Rate}
			if err := database.DB.Create(&rate).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Oran kaydedilemedi")
			}
		}

		return c.JSON(CommissionRateResponse{ID: rate.ID, BankName: rate.BankName, Rate: rate.Rate})
	}
}

// GET /api/prefs/commission-rates
func ListCommissionRatesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var rates []models.BankCommissionRate
		if err := database.DB.Where("station_id = ?", stationID).Order("bank_name asc").Find(&rates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Oranlar listelenemedi")
		}

		resp := make([]CommissionRateResponse, 0, len(rates))
		for _, r := range rates {
			resp = append(resp, CommissionRateResponse{ID: r.ID, BankName: r.BankName, Rate: r.Rate})
		}
		return c.JSON(resp)
	}
}

// DELETE /api/prefs/commission-rates/:id
func DeleteCommissionRateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var rate models.BankCommissionRate
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&rate).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Oran bulunamadı")
		}
		if err := database.DB.Delete(&rate).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Oran silinemedi")
		}
		return c.JSON(fiber.Map{"deleted": rate.ID})
	}
}

// -------------------------
// Yakıt alış fiyatları
// -------------------------

type PurchasePriceRequest struct {
	FuelType string  `json:"fuel_type"`
	Price    float64 `json:"price"` // TL/litre
}

type PurchasePriceResponse struct {
	ID       uint    `json:"id"`
	FuelType string  `json:"fuel_type"`
	Price    float64 `json:"price"`
}

// PUT /api/prefs/purchase-prices
func UpsertPurchasePriceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var body PurchasePriceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}
		if !models.ValidFuelType(models.FuelType(body.FuelType)) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz yakıt türü")
		}
		if body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fiyat negatif olamaz")
		}

		var price models.FuelPurchasePrice
		err = database.DB.Where("station_id = ? AND fuel_type = ?", stationID, body.FuelType).First(&price).Error
		if err == nil {
			price.Price = body.Price
			if err := database.DB.Save(&price).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Fiyat güncellenemedi")
			}
		} else {
			price = models.FuelPurchasePrice{StationID: stationID, FuelType: models.FuelType(body.FuelType), Price: body.Price}
			if err := database.DB.Create(&price).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Fiyat kaydedilemedi")
			}
		}

		return c.JSON(PurchasePriceResponse{ID: price.ID, FuelType: string(price.FuelType), Price: price.Price})
	}
}

// GET /api/prefs/purchase-prices
func ListPurchasePricesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var prices []models.FuelPurchasePrice
		if err := database.DB.Where("station_id = ?", stationID).Order("fuel_type asc").Find(&prices).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiyatlar listelenemedi")
		}

		resp := make([]PurchasePriceResponse, 0, len(prices))
		for _, p := range prices {
			resp = append(resp, PurchasePriceResponse{ID: p.ID, FuelType: string(p.FuelType), Price: p.Price})
		}
		return c.JSON(resp)
	}
}

// -------------------------
// Kâr hesap kayıtları
// -------------------------

type SaveSnapshotRequest struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

type SnapshotResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	CreatedAt string          `json:"created_at"`
}

// POST /api/prefs/profit-snapshots
func SaveSnapshotHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var body SaveSnapshotRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}
		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kayıt adı boş olamaz")
		}
		if len(body.Data) == 0 || !json.Valid(body.Data) {
			return fiber.NewError(fiber.StatusBadRequest, "data geçerli JSON olmalı")
		}

		snap := models.ProfitSnapshot{
			StationID: stationID,
			Name:      strings.TrimSpace(body.Name),
			Data:      string(body.Data),
		}
		if err := database.DB.Create(&snap).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(SnapshotResponse{
			ID:        snap.ID,
			Name:      snap.Name,
			Data:      json.RawMessage(snap.Data),
			CreatedAt: snap.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
}

// GET /api/prefs/profit-snapshots
func ListSnapshotsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var snaps []models.ProfitSnapshot
		if err := database.DB.Where("station_id = ?", stationID).Order("created_at desc").Find(&snaps).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar listelenemedi")
		}

		resp := make([]SnapshotResponse, 0, len(snaps))
		for _, s := range snaps {
			resp = append(resp, SnapshotResponse{
				ID:        s.ID,
				Name:      s.Name,
				Data:      json.RawMessage(s.Data),
				CreatedAt: s.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
		return c.JSON(resp)
	}
}

// DELETE /api/prefs/profit-snapshots/:id
func DeleteSnapshotHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var snap models.ProfitSnapshot
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&snap).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kayıt bulunamadı")
		}
		if err := database.DB.Delete(&snap).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt silinemedi")
		}
		return c.JSON(fiber.Map{"deleted": snap.ID})
	}
}
