package shift

import (
	"fmt"
	"time"

	"istasyon-backend/internal/audit"
	"istasyon-backend/internal/auth"
	"istasyon-backend/internal/database"
	"istasyon-backend/internal/models"
	"istasyon-backend/internal/reconcile"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

const timeLayout = "2006-01-02 15:04"

type CreateShiftRequest struct {
	PersonnelID uint    `json:"personnel_id" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=day night"`
	StartTime   string  `json:"start_time" validate:"required"` // "2025-12-09 08:00"
	EndTime     *string `json:"end_time"`

	CashSales      float64 `json:"cash_sales" validate:"gte=0"`
	CardSales      float64 `json:"card_sales" validate:"gte=0"`
	BankTransfers  float64 `json:"bank_transfers" validate:"gte=0"`
	LoyaltyCard    float64 `json:"loyalty_card" validate:"gte=0"`
	Veresiye       float64 `json:"veresiye" validate:"gte=0"`
	OtomasyonSatis float64 `json:"otomasyon_satis" validate:"gte=0"`

	CustomerID *uint  `json:"customer_id"` // veresiye varsa zorunlu
	BankName   string `json:"bank_name"`   // POS bankası
}

type UpdateShiftRequest struct {
	Type      *string `json:"type"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`

	CashSales      *float64 `json:"cash_sales"`
	CardSales      *float64 `json:"card_sales"`
	BankTransfers  *float64 `json:"bank_transfers"`
	LoyaltyCard    *float64 `json:"loyalty_card"`
	Veresiye       *float64 `json:"veresiye"`
	OtomasyonSatis *float64 `json:"otomasyon_satis"`

	CustomerID *uint   `json:"customer_id"`
	BankName   *string `json:"bank_name"`
	Status     *string `json:"status"` // open | closed
}

type ShiftResponse struct {
	ID            uint    `json:"id"`
	StationID     uint    `json:"station_id"`
	PersonnelID   uint    `json:"personnel_id"`
	PersonnelName string  `json:"personnel_name,omitempty"`
	Type          string  `json:"type"`
	StartTime     string  `json:"start_time"`
	EndTime       *string `json:"end_time"`
	EffectiveDate string  `json:"effective_date"` // raporda sayıldığı gün

	CashSales      float64 `json:"cash_sales"`
	CardSales      float64 `json:"card_sales"`
	BankTransfers  float64 `json:"bank_transfers"`
	LoyaltyCard    float64 `json:"loyalty_card"`
	Veresiye       float64 `json:"veresiye"`
	OtomasyonSatis float64 `json:"otomasyon_satis"`
	OverShort      float64 `json:"over_short"`

	CustomerID *uint  `json:"customer_id"`
	BankName   string `json:"bank_name"`
	Status     string `json:"status"`
}

func toShiftResponse(s models.Shift) ShiftResponse {
	var endTime *string
	if s.EndTime != nil {
		e := s.EndTime.Format(timeLayout)
		endTime = &e
	}
	return ShiftResponse{
		ID:             s.ID,
		StationID:      s.StationID,
		PersonnelID:    s.PersonnelID,
		PersonnelName:  s.Personnel.Name,
		Type:           string(s.Type),
		StartTime:      s.StartTime.Format(timeLayout),
		EndTime:        endTime,
		EffectiveDate:  reconcile.EffectiveDate(s.StartTime).Format("2006-01-02"),
		CashSales:      s.CashSales,
		CardSales:      s.CardSales,
		BankTransfers:  s.BankTransfers,
		LoyaltyCard:    s.LoyaltyCard,
		Veresiye:       s.Veresiye,
		OtomasyonSatis: s.OtomasyonSatis,
		OverShort:      s.OverShort,
		CustomerID:     s.CustomerID,
		BankName:       s.BankName,
		Status:         string(s.Status),
	}
}

// veresiye/müşteri ve negatif tutar kuralları tek yerden geçer
func validateShiftDomain(s *models.Shift) error {
	err := reconcile.ValidateShiftInput(reconcile.ShiftInput{
		CashSales:      s.CashSales,
		CardSales:      s.CardSales,
		BankTransfers:  s.BankTransfers,
		LoyaltyCard:    s.LoyaltyCard,
		Veresiye:       s.Veresiye,
		OtomasyonSatis: s.OtomasyonSatis,
		CustomerID:     s.CustomerID,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if s.CustomerID != nil {
		var count int64
		database.DB.Model(&models.Customer{}).
			Where("id = ? AND station_id = ?", *s.CustomerID, s.StationID).
			Count(&count)
		if count == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Seçilen müşteri bulunamadı")
		}
	}
	return nil
}

// -------------------------------------------------
// POST /api/shifts
// -------------------------------------------------
func CreateShiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateShiftRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Eksik veya geçersiz alanlar: "+err.Error())
		}

		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		// Pompacı sadece kendi vardiyasını kaydedebilir
		if attendantID := auth.PersonnelIDFromCtx(c); attendantID != nil && body.PersonnelID != *attendantID {
			return fiber.NewError(fiber.StatusForbidden, "Pompacı sadece kendi vardiyasını kaydedebilir")
		}

		var p models.Personnel
		if err := database.DB.Where("id = ? AND station_id = ?", body.PersonnelID, stationID).First(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Personel bulunamadı")
		}

		startTime, err := time.ParseInLocation(timeLayout, body.StartTime, time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_time formatı 'YYYY-MM-DD HH:MM' olmalı")
		}

		var endTime *time.Time
		if body.EndTime != nil && *body.EndTime != "" {
			e, err := time.ParseInLocation(timeLayout, *body.EndTime, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end_time formatı 'YYYY-MM-DD HH:MM' olmalı")
			}
			endTime = &e
		}

		s := models.Shift{
			StationID:      stationID,
			PersonnelID:    body.PersonnelID,
			Type:           models.ShiftType(body.Type),
			StartTime:      startTime,
			EndTime:        endTime,
			CashSales:      body.CashSales,
			CardSales:      body.CardSales,
			BankTransfers:  body.BankTransfers,
			LoyaltyCard:    body.LoyaltyCard,
			Veresiye:       body.Veresiye,
			OtomasyonSatis: body.OtomasyonSatis,
			CustomerID:     body.CustomerID,
			BankName:       body.BankName,
			Status:         models.ShiftStatusOpen,
		}
		if endTime != nil {
			s.Status = models.ShiftStatusClosed
		}

		if err := validateShiftDomain(&s); err != nil {
			return err
		}

		// over_short her zaman formülden hesaplanır
		s.OverShort = reconcile.OverShort(s.CashSales, s.CardSales, s.BankTransfers, s.LoyaltyCard, s.Veresiye, s.OtomasyonSatis)

		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vardiya kaydedilemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &s.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "shift",
			EntityID:    s.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Vardiya eklendi: personel %d, açık/fazla %.2f TL", s.PersonnelID, s.OverShort),
			After:       toShiftResponse(s),
		})

		return c.Status(fiber.StatusCreated).JSON(toShiftResponse(s))
	}
}

// inEffectiveRange: vardiyanın etkin günü verili sınırlar içinde mi.
// Tek sınır da verilebilir, her sınır bağımsız uygulanır.
func inEffectiveRange(start time.Time, from, to time.Time, hasFrom, hasTo bool) bool {
	d := reconcile.EffectiveDate(start)
	if hasFrom && d.Before(from) {
		return false
	}
	if hasTo && d.After(to) {
		return false
	}
	return true
}

// -------------------------------------------------
// GET /api/shifts?from=2025-12-01&to=2025-12-31&type=night&personnel_id=3
// -------------------------------------------------
func ListShiftsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Shift{}).
			Preload("Personnel").
			Where("station_id = ?", stationID)

		var from, to time.Time
		hasFrom, hasTo := false, false
		if fromStr := c.Query("from"); fromStr != "" {
			from, err = time.ParseInLocation("2006-01-02", fromStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
			}
			hasFrom = true
			// gece kuralı nedeniyle bir gün öncesinin 22:55 sonrası vardiyaları da
			// aralığa girebilir, sorguyu geniş tutup bellek tarafında daraltıyoruz
			dbq = dbq.Where("start_time >= ?", from.AddDate(0, 0, -1))
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err = time.ParseInLocation("2006-01-02", toStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
			}
			hasTo = true
			dbq = dbq.Where("start_time < ?", to.AddDate(0, 0, 1))
		}
		if typeStr := c.Query("type"); typeStr != "" {
			dbq = dbq.Where("type = ?", typeStr)
		}
		if pidStr := c.Query("personnel_id"); pidStr != "" {
			var pid uint
			if _, err := fmt.Sscan(pidStr, &pid); err != nil || pid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "personnel_id geçersiz")
			}
			dbq = dbq.Where("personnel_id = ?", pid)
		}

		var shifts []models.Shift
		if err := dbq.Order("start_time asc, id asc").Find(&shifts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vardiyalar listelenemedi")
		}

		// etkin gün filtresi (22:55 kuralı) bellek tarafında, sınır başına uygulanır
		resp := make([]ShiftResponse, 0, len(shifts))
		for _, s := range shifts {
			if !inEffectiveRange(s.StartTime, from, to, hasFrom, hasTo) {
				continue
			}
			resp = append(resp, toShiftResponse(s))
		}

		return c.JSON(resp)
	}
}

// -------------------------------------------------
// GET /api/shifts/active
// Pompacının açık vardiyası ("shift lookup by attendant")
// -------------------------------------------------
func ActiveShiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		pID := auth.PersonnelIDFromCtx(c)
		if pID == nil {
			// yönetici personel seçerek sorgulayabilir
			pidStr := c.Query("personnel_id")
			if pidStr == "" {
				return fiber.NewError(fiber.StatusBadRequest, "personnel_id zorunlu")
			}
			var pid uint
			if _, err := fmt.Sscan(pidStr, &pid); err != nil || pid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "personnel_id geçersiz")
			}
			pID = &pid
		}

		var s models.Shift
		if err := database.DB.
			Preload("Personnel").
			Where("station_id = ? AND personnel_id = ? AND status = ?", stationID, *pID, models.ShiftStatusOpen).
			Order("start_time desc").
			First(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Açık vardiya bulunamadı")
		}

		return c.JSON(toShiftResponse(s))
	}
}

// -------------------------------------------------
// PUT /api/shifts/:id
// -------------------------------------------------
func UpdateShiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var body UpdateShiftRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var s models.Shift
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vardiya bulunamadı")
		}

		before := toShiftResponse(s)

		if body.Type != nil {
			if *body.Type != string(models.ShiftTypeDay) && *body.Type != string(models.ShiftTypeNight) {
				return fiber.NewError(fiber.StatusBadRequest, "type 'day' veya 'night' olmalı")
			}
			s.Type = models.ShiftType(*body.Type)
		}
		if body.StartTime != nil {
			st, err := time.ParseInLocation(timeLayout, *body.StartTime, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start_time formatı 'YYYY-MM-DD HH:MM' olmalı")
			}
			s.StartTime = st
		}
		if body.EndTime != nil {
			if *body.EndTime == "" {
				s.EndTime = nil
			} else {
				e, err := time.ParseInLocation(timeLayout, *body.EndTime, time.Local)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "end_time formatı 'YYYY-MM-DD HH:MM' olmalı")
				}
				s.EndTime = &e
			}
		}
		if body.CashSales != nil {
			s.CashSales = *body.CashSales
		}
		if body.CardSales != nil {
			s.CardSales = *body.CardSales
		}
		if body.BankTransfers != nil {
			s.BankTransfers = *body.BankTransfers
		}
		if body.LoyaltyCard != nil {
			s.LoyaltyCard = *body.LoyaltyCard
		}
		if body.Veresiye != nil {
			s.Veresiye = *body.Veresiye
		}
		if body.OtomasyonSatis != nil {
			s.OtomasyonSatis = *body.OtomasyonSatis
		}
		if body.CustomerID != nil {
			s.CustomerID = body.CustomerID
		}
		if body.BankName != nil {
			s.BankName = *body.BankName
		}
		if body.Status != nil {
			if *body.Status != string(models.ShiftStatusOpen) && *body.Status != string(models.ShiftStatusClosed) {
				return fiber.NewError(fiber.StatusBadRequest, "status 'open' veya 'closed' olmalı")
			}
			s.Status = models.ShiftStatus(*body.Status)
		}

		if err := validateShiftDomain(&s); err != nil {
			return err
		}

		// güncellemede de over_short formülden yeniden hesaplanır
		s.OverShort = reconcile.OverShort(s.CashSales, s.CardSales, s.BankTransfers, s.LoyaltyCard, s.Veresiye, s.OtomasyonSatis)

		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vardiya güncellenemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &s.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "shift",
			EntityID:    s.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Vardiya güncellendi: %d", s.ID),
			Before:      before,
			After:       toShiftResponse(s),
		})

		return c.JSON(toShiftResponse(s))
	}
}

// -------------------------------------------------
// DELETE /api/shifts/:id
// -------------------------------------------------
func DeleteShiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var s models.Shift
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vardiya bulunamadı")
		}

		if err := database.DB.Delete(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Vardiya silinemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &s.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "shift",
			EntityID:    s.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Vardiya silindi: %d", s.ID),
			Before:      toShiftResponse(s),
		})

		return c.JSON(fiber.Map{"deleted": s.ID})
	}
}
