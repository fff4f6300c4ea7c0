package report

import (
	"fmt"
	"time"

	"istasyon-backend/internal/auth"
	"istasyon-backend/internal/database"
	"istasyon-backend/internal/models"
	"istasyon-backend/internal/reconcile"

	"github.com/gofiber/fiber/v2"
)

type ShiftReportResponse struct {
	From       string           `json:"from"`
	To         string           `json:"to"`
	GrandTotal float64          `json:"grand_total"` // tüm ödeme kanalları toplamı
	Report     reconcile.Report `json:"report"`
}

// İstasyonun banka komisyon oranlarını haritaya çek
func loadCommissionRates(stationID uint) map[string]float64 {
	var rows []models.BankCommissionRate
	database.DB.Where("station_id = ?", stationID).Find(&rows)

	rates := make(map[string]float64, len(rows))
	for _, r := range rows {
		rates[r.BankName] = r.Rate
	}
	return rates
}

// Rapor aralığındaki vardiya ve satışları çek. Gece kuralı (22:55) nedeniyle
// sorgu penceresi bir gün geniş tutulur, asıl daraltma reconcile.Filter'da yapılır.
func loadRecords(stationID uint, from, to time.Time) ([]models.Shift, []models.FuelSale, error) {
	var shifts []models.Shift
	if err := database.DB.
		Where("station_id = ? AND start_time >= ? AND start_time < ?", stationID, from.AddDate(0, 0, -1), to.AddDate(0, 0, 1)).
		Find(&shifts).Error; err != nil {
		return nil, nil, err
	}

	var sales []models.FuelSale
	if err := database.DB.
		Where("station_id = ? AND sale_time >= ? AND sale_time < ?", stationID, from.AddDate(0, 0, -1), to.AddDate(0, 0, 1)).
		Find(&sales).Error; err != nil {
		return nil, nil, err
	}

	return shifts, sales, nil
}

func parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from ve to tarihleri zorunlu (YYYY-MM-DD)")
	}
	from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "to tarihi from'dan önce olamaz")
	}
	return from, to, nil
}

// -------------------------------------------------
// GET /api/reports/shifts?from=2025-12-01&to=2025-12-31&type=night&personnel_id=3
// -------------------------------------------------
func ShiftReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		from, to, err := parseRange(c)
		if err != nil {
			return err
		}

		f := reconcile.Filter{From: from, To: to}
		if typeStr := c.Query("type"); typeStr != "" {
			if typeStr != string(models.ShiftTypeDay) && typeStr != string(models.ShiftTypeNight) {
				return fiber.NewError(fiber.StatusBadRequest, "type 'day' veya 'night' olmalı")
			}
			f.ShiftType = models.ShiftType(typeStr)
		}
		if pidStr := c.Query("personnel_id"); pidStr != "" {
			var pid uint
			if _, err := fmt.Sscan(pidStr, &pid); err != nil || pid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "personnel_id geçersiz")
			}
			f.PersonnelID = &pid
		}

		shifts, sales, err := loadRecords(stationID, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor verisi okunamadı")
		}

		rep := reconcile.Aggregate(shifts, sales, f, loadCommissionRates(stationID))

		return c.JSON(ShiftReportResponse{
			From:       from.Format("2006-01-02"),
			To:         to.Format("2006-01-02"),
			GrandTotal: rep.Channels.Total(),
			Report:     rep,
		})
	}
}

type FuelProfitItem struct {
	FuelType         string  `json:"fuel_type"`
	Amount           float64 `json:"amount"`
	Liters           float64 `json:"liters"`
	PurchasePrice    float64 `json:"purchase_price"`
	AverageSalePrice float64 `json:"average_sale_price"`
	ProfitPerLiter   float64 `json:"profit_per_liter"`
	TotalProfit      float64 `json:"total_profit"`
}

type ProfitReportResponse struct {
	From        string           `json:"from"`
	To          string           `json:"to"`
	Items       []FuelProfitItem `json:"items"`
	TotalProfit float64          `json:"total_profit"`
}

// -------------------------------------------------
// GET /api/reports/profit?from=2025-12-01&to=2025-12-31
// Yakıt türü bazında kâr; alış fiyatları istasyon tercihi olarak saklanır.
// -------------------------------------------------
func ProfitReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		from, to, err := parseRange(c)
		if err != nil {
			return err
		}

		_, sales, err := loadRecords(stationID, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor verisi okunamadı")
		}

		rep := reconcile.Aggregate(nil, sales, reconcile.Filter{From: from, To: to}, nil)

		var prices []models.FuelPurchasePrice
		database.DB.Where("station_id = ?", stationID).Find(&prices)
		priceMap := make(map[models.FuelType]float64, len(prices))
		for _, p := range prices {
			priceMap[p.FuelType] = p.Price
		}

		resp := ProfitReportResponse{
			From:  from.Format("2006-01-02"),
			To:    to.Format("2006-01-02"),
			Items: make([]FuelProfitItem, 0, len(models.FuelTypes)),
		}

		for _, ft := range models.FuelTypes {
			totals := rep.FuelTotals[ft]
			profit := reconcile.Profit(totals.Amount, totals.Liters, priceMap[ft])
			resp.Items = append(resp.Items, FuelProfitItem{
				FuelType:         string(ft),
				Amount:           totals.Amount,
				Liters:           totals.Liters,
				PurchasePrice:    priceMap[ft],
				AverageSalePrice: profit.AverageSalePrice,
				ProfitPerLiter:   profit.ProfitPerLiter,
				TotalProfit:      profit.TotalProfit,
			})
			resp.TotalProfit += profit.TotalProfit
		}

		return c.JSON(resp)
	}
}
