package report

import (
	"encoding/json"
	"fmt"
	"time"

	"istasyon-backend/internal/auth"
	"istasyon-backend/internal/database"
	"istasyon-backend/internal/models"
	"istasyon-backend/internal/reconcile"

	"github.com/gofiber/fiber/v2"
)

type CreateMonthlyReportRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type MonthlyReportResponse struct {
	ID             uint    `json:"id"`
	StationID      uint    `json:"station_id"`
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	ReportDate     string  `json:"report_date"`
	TotalSales     float64 `json:"total_sales"`
	TotalLiters    float64 `json:"total_liters"`
	TotalOverShort float64 `json:"total_over_short"`
	ReportData     string  `json:"report_data,omitempty"`
}

func toMonthlyReportResponse(r models.MonthlyReport, withData bool) MonthlyReportResponse {
	resp := MonthlyReportResponse{
		ID:             r.ID,
		StationID:      r.StationID,
		Year:           r.Year,
		Month:          r.Month,
		ReportDate:     r.ReportDate.Format("2006-01-02"),
		TotalSales:     r.TotalSales,
		TotalLiters:    r.TotalLiters,
		TotalOverShort: r.TotalOverShort,
	}
	if withData {
		resp.ReportData = r.ReportData
	}
	return resp
}

// -------------------------------------------------
// POST /api/monthly-reports
// İlgili ayın raporunu hesaplayıp snapshot olarak saklar.
// -------------------------------------------------
func CreateMonthlyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateMonthlyReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Year < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
		}
		if body.Month < 1 || body.Month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "month geçersiz")
		}

		loc := time.Now().Location()
		from := time.Date(body.Year, time.Month(body.Month), 1, 0, 0, 0, 0, loc)
		to := from.AddDate(0, 1, -1) // ayın son günü

		shifts, sales, err := loadRecords(stationID, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor verisi okunamadı")
		}

		rep := reconcile.Aggregate(shifts, sales, reconcile.Filter{From: from, To: to}, loadCommissionRates(stationID))

		var totalLiters float64
		for _, ft := range rep.FuelTotals {
			totalLiters += ft.Liters
		}

		data, _ := json.Marshal(rep)

		r := models.MonthlyReport{
			StationID:      stationID,
			Year:           body.Year,
			Month:          body.Month,
			ReportDate:     time.Now(),
			TotalSales:     rep.Channels.Total(),
			TotalLiters:    totalLiters,
			TotalOverShort: rep.Channels.OverShort,
			ReportData:     string(data),
		}

		// aynı ay için eski snapshot varsa üzerine yaz
		var existing models.MonthlyReport
		if err := database.DB.
			Where("station_id = ? AND year = ? AND month = ?", stationID, body.Year, body.Month).
			First(&existing).Error; err == nil {
			r.ID = existing.ID
			r.CreatedAt = existing.CreatedAt
		}

		if err := database.DB.Save(&r).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(toMonthlyReportResponse(r, true))
	}
}

// GET /api/monthly-reports?year=2025
func ListMonthlyReportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.MonthlyReport{}).Where("station_id = ?", stationID)

		if yearStr := c.Query("year"); yearStr != "" {
			var year int
			if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
				return fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
			}
			dbq = dbq.Where("year = ?", year)
		}

		var reports []models.MonthlyReport
		if err := dbq.Order("year desc, month desc").Find(&reports).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Raporlar listelenemedi")
		}

		resp := make([]MonthlyReportResponse, 0, len(reports))
		for _, r := range reports {
			resp = append(resp, toMonthlyReportResponse(r, false))
		}

		return c.JSON(resp)
	}
}

// GET /api/monthly-reports/:id
func GetMonthlyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var r models.MonthlyReport
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&r).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rapor bulunamadı")
		}

		return c.JSON(toMonthlyReportResponse(r, true))
	}
}
