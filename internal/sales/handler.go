package sales

import (
	"fmt"
	"time"

	"istasyon-backend/internal/audit"
	"istasyon-backend/internal/auth"
	"istasyon-backend/internal/database"
	"istasyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const timeLayout = "2006-01-02 15:04"

type CreateFuelSaleRequest struct {
	FuelType    string  `json:"fuel_type"` // BENZİN | MOTORİN | MOTORİN_EKO | LPG | GAZYAĞI
	Liters      float64 `json:"liters"`
	TotalAmount float64 `json:"total_amount"`
	SaleTime    string  `json:"sale_time"` // "2025-12-09 14:30", boşsa şimdi
	PersonnelID uint    `json:"personnel_id"`
	ShiftType   string  `json:"shift_type"` // day | night
}

type FuelSaleResponse struct {
	ID            uint    `json:"id"`
	StationID     uint    `json:"station_id"`
	FuelType      string  `json:"fuel_type"`
	Liters        float64 `json:"liters"`
	PricePerLiter float64 `json:"price_per_liter"`
	TotalAmount   float64 `json:"total_amount"`
	SaleTime      string  `json:"sale_time"`
	PersonnelID   uint    `json:"personnel_id"`
	ShiftType     string  `json:"shift_type"`
}

func toFuelSaleResponse(fs models.FuelSale) FuelSaleResponse {
	return FuelSaleResponse{
		ID:            fs.ID,
		StationID:     fs.StationID,
		FuelType:      string(fs.FuelType),
		Liters:        fs.Liters,
		PricePerLiter: fs.PricePerLiter,
		TotalAmount:   fs.TotalAmount,
		SaleTime:      fs.SaleTime.Format(timeLayout),
		PersonnelID:   fs.PersonnelID,
		ShiftType:     string(fs.ShiftType),
	}
}

// -------------------------------------------------
// POST /api/fuel-sales
// -------------------------------------------------
func CreateFuelSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateFuelSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		if !models.ValidFuelType(models.FuelType(body.FuelType)) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz yakıt türü")
		}
		if body.Liters <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Litre 0'dan büyük olmalı")
		}
		if body.TotalAmount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tutar 0'dan büyük olmalı")
		}
		if body.ShiftType != string(models.ShiftTypeDay) && body.ShiftType != string(models.ShiftTypeNight) {
			return fiber.NewError(fiber.StatusBadRequest, "shift_type 'day' veya 'night' olmalı")
		}

		if attendantID := auth.PersonnelIDFromCtx(c); attendantID != nil && body.PersonnelID != *attendantID {
			return fiber.NewError(fiber.StatusForbidden, "Pompacı sadece kendi satışını kaydedebilir")
		}

		var p models.Personnel
		if err := database.DB.Where("id = ? AND station_id = ?", body.PersonnelID, stationID).First(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Personel bulunamadı")
		}

		var saleTime time.Time
		if body.SaleTime == "" {
			saleTime = time.Now()
		} else {
			saleTime, err = time.ParseInLocation(timeLayout, body.SaleTime, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "sale_time formatı 'YYYY-MM-DD HH:MM' olmalı")
			}
		}

		fs := models.FuelSale{
			StationID:   stationID,
			FuelType:    models.FuelType(body.FuelType),
			Liters:      body.Liters,
			TotalAmount: body.TotalAmount,
			// litre fiyatı türetilir, istemciden alınmaz
			PricePerLiter: body.TotalAmount / body.Liters,
			SaleTime:      saleTime,
			PersonnelID:   body.PersonnelID,
			ShiftType:     models.ShiftType(body.ShiftType),
		}

		if err := database.DB.Create(&fs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydedilemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &fs.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "fuel_sale",
			EntityID:    fs.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Yakıt satışı eklendi: %s %.2f lt - %.2f TL", fs.FuelType, fs.Liters, fs.TotalAmount),
			After:       toFuelSaleResponse(fs),
		})

		return c.Status(fiber.StatusCreated).JSON(toFuelSaleResponse(fs))
	}
}

// -------------------------------------------------
// GET /api/fuel-sales?from=2025-12-01&to=2025-12-31&fuel_type=BENZİN&personnel_id=3
// -------------------------------------------------
func ListFuelSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.FuelSale{}).Where("station_id = ?", stationID)

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
			}
			dbq = dbq.Where("sale_time >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
			}
			dbq = dbq.Where("sale_time < ?", to.AddDate(0, 0, 1))
		}
		if ftStr := c.Query("fuel_type"); ftStr != "" {
			dbq = dbq.Where("fuel_type = ?", ftStr)
		}
		if pidStr := c.Query("personnel_id"); pidStr != "" {
			var pid uint
			if _, err := fmt.Sscan(pidStr, &pid); err != nil || pid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "personnel_id geçersiz")
			}
			dbq = dbq.Where("personnel_id = ?", pid)
		}

		var sales []models.FuelSale
		if err := dbq.Order("sale_time asc, id asc").Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar listelenemedi")
		}

		resp := make([]FuelSaleResponse, 0, len(sales))
		for _, fs := range sales {
			resp = append(resp, toFuelSaleResponse(fs))
		}

		return c.JSON(resp)
	}
}

// -------------------------------------------------
// DELETE /api/fuel-sales/:id
// -------------------------------------------------
func DeleteFuelSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var fs models.FuelSale
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&fs).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Satış bulunamadı")
		}

		if err := database.DB.Delete(&fs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış silinemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &fs.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "fuel_sale",
			EntityID:    fs.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Yakıt satışı silindi: %d", fs.ID),
			Before:      toFuelSaleResponse(fs),
		})

		return c.JSON(fiber.Map{"deleted": fs.ID})
	}
}
