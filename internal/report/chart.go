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

type SalesChartPoint struct {
	Label    string  `json:"label"` // tarih / hafta başlangıcı / ay başlangıcı
	Cash     float64 `json:"cash"`
	Card     float64 `json:"card"`
	Veresiye float64 `json:"veresiye"`
	Total    float64 `json:"total"`
}

type SalesChartResponse struct {
	StationID   uint              `json:"station_id"`
	Period      string            `json:"period"` // daily | weekly | monthly
	From        string            `json:"from"`
	To          string            `json:"to"`
	Points      []SalesChartPoint `json:"points"`
	GrandTotals SalesChartPoint   `json:"grand_totals"`
}

// GET /api/dashboard/sales-chart?period=daily&count=7
func SalesChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		period := c.Query("period", "daily") // daily | weekly | monthly
		countStr := c.Query("count", "")

		var count int
		if countStr == "" {
			switch period {
			case "weekly":
				count = 8
			case "monthly":
				count = 12
			default:
				period = "daily"
				count = 7
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "count geçersiz")
			}
		}

		now := time.Now()
		loc := now.Location()
		// bugünün 00:00'ı
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		var start time.Time

		switch period {
		case "weekly":
			days := 7 * (count - 1)
			start = end.AddDate(0, 0, -days)
		case "monthly":
			end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
			start = end.AddDate(0, -(count - 1), 0)
		default:
			period = "daily"
			start = end.AddDate(0, 0, -(count - 1))
		}

		// gece kuralı yüzünden pencereyi bir gün geniş çekiyoruz
		var shifts []models.Shift
		if err := database.DB.
			Where("station_id = ? AND start_time >= ? AND start_time < ?", stationID, start.AddDate(0, 0, -1), end.AddDate(0, 0, 1)).
			Find(&shifts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Grafik verisi okunamadı")
		}

		// bucket anahtarı: günün/haftanın/ayın başlangıcı
		bucketOf := func(d time.Time) time.Time {
			switch period {
			case "weekly":
				// pazartesiye hizala
				offset := (int(d.Weekday()) + 6) % 7
				return d.AddDate(0, 0, -offset)
			case "monthly":
				return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, loc)
			default:
				return d
			}
		}

		points := make(map[string]*SalesChartPoint)
		order := make([]string, 0, count)
		cur := start
		for !cur.After(end) {
			label := bucketOf(cur).Format("2006-01-02")
			if _, ok := points[label]; !ok {
				points[label] = &SalesChartPoint{Label: label}
				order = append(order, label)
			}
			cur = cur.AddDate(0, 0, 1)
		}

		var grand SalesChartPoint
		for _, s := range shifts {
			d := reconcile.EffectiveDate(s.StartTime)
			label := bucketOf(d).Format("2006-01-02")
			p, ok := points[label]
			if !ok {
				continue
			}
			total := s.CashSales + s.CardSales + s.BankTransfers + s.LoyaltyCard + s.Veresiye
			p.Cash += s.CashSales
			p.Card += s.CardSales
			p.Veresiye += s.Veresiye
			p.Total += total

			grand.Cash += s.CashSales
			grand.Card += s.CardSales
			grand.Veresiye += s.Veresiye
			grand.Total += total
		}

		resp := SalesChartResponse{
			StationID: stationID,
			Period:    period,
			From:      start.Format("2006-01-02"),
			To:        end.Format("2006-01-02"),
			Points:    make([]SalesChartPoint, 0, len(order)),
		}
		for _, label := range order {
			resp.Points = append(resp.Points, *points[label])
		}
		resp.GrandTotals = grand
		resp.GrandTotals.Label = "total"

		return c.JSON(resp)
	}
}
