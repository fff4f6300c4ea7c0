package accounting

import (
	"fmt"
	"time"

	"istasyon-backend/internal/audit"
	"istasyon-backend/internal/auth"
	"istasyon-backend/internal/database"
	"istasyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateCheckRequest struct {
	Type        string  `json:"type"` // "payable" | "receivable"
	Amount      float64 `json:"amount"`
	IssueDate   string  `json:"issue_date"`
	DueDate     string  `json:"due_date"`
	BankName    string  `json:"bank_name"`
	Description string  `json:"description"`
}

type UpdateCheckStatusRequest struct {
	Status string `json:"status"` // "pending" | "paid" | "cancelled"
}

type CheckResponse struct {
	ID          uint    `json:"id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	IssueDate   string  `json:"issue_date"`
	DueDate     string  `json:"due_date"`
	Status      string  `json:"status"`
	BankName    string  `json:"bank_name"`
	Description string  `json:"description"`
}

func toCheckResponse(ch models.Check) CheckResponse {
	return CheckResponse{
		ID:          ch.ID,
		Type:        string(ch.Type),
		Amount:      ch.Amount,
		IssueDate:   ch.IssueDate.Format("2006-01-02"),
		DueDate:     ch.DueDate.Format("2006-01-02"),
		Status:      string(ch.Status),
		BankName:    ch.BankName,
		Description: ch.Description,
	}
}

// POST /api/checks
func CreateCheckHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateCheckRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Type != string(models.CheckTypePayable) && body.Type != string(models.CheckTypeReceivable) {
			return fiber.NewError(fiber.StatusBadRequest, "type 'payable' veya 'receivable' olmalı")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tutar 0'dan büyük olmalı")
		}

		issue, err := time.ParseInLocation("2006-01-02", body.IssueDate, time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Keşide tarihi 'YYYY-MM-DD' olmalı")
		}
		due, err := time.ParseInLocation("2006-01-02", body.DueDate, time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Vade tarihi 'YYYY-MM-DD' olmalı")
		}
		if due.Before(issue) {
			return fiber.NewError(fiber.StatusBadRequest, "Vade tarihi keşide tarihinden önce olamaz")
		}

		ch := models.Check{
			StationID:   stationID,
			Type:        models.CheckType(body.Type),
			Amount:      body.Amount,
			IssueDate:   issue,
			DueDate:     due,
			Status:      models.CheckStatusPending,
			BankName:    body.BankName,
			Description: body.Description,
		}
		if err := database.DB.Create(&ch).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çek kaydedilemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &ch.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "check",
			EntityID:    ch.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Çek eklendi: %.2f TL, vade %s", ch.Amount, ch.DueDate.Format("2006-01-02")),
			After:       toCheckResponse(ch),
		})

		return c.Status(fiber.StatusCreated).JSON(toCheckResponse(ch))
	}
}

// GET /api/checks?type=&status=&due_before=
func ListChecksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Check{}).Where("station_id = ?", stationID)

		if t := c.Query("type"); t != "" {
			dbq = dbq.Where("type = ?", t)
		}
		if s := c.Query("status"); s != "" {
			dbq = dbq.Where("status = ?", s)
		}
		if dbStr := c.Query("due_before"); dbStr != "" {
			due, err := time.ParseInLocation("2006-01-02", dbStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "due_before tarihi geçersiz")
			}
			dbq = dbq.Where("due_date <= ?", due)
		}

		var checks []models.Check
		if err := dbq.Order("due_date asc, id asc").Find(&checks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çekler listelenemedi")
		}

		resp := make([]CheckResponse, 0, len(checks))
		for _, ch := range checks {
			resp = append(resp, toCheckResponse(ch))
		}
		return c.JSON(resp)
	}
}

// PUT /api/checks/:id/status
// İptal edilen çek tekrar beklemeye alınamaz.
func UpdateCheckStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var body UpdateCheckStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		next := models.CheckStatus(body.Status)
		if next != models.CheckStatusPending && next != models.CheckStatusPaid && next != models.CheckStatusCancelled {
			return fiber.NewError(fiber.StatusBadRequest, "status 'pending', 'paid' veya 'cancelled' olmalı")
		}

		var ch models.Check
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&ch).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çek bulunamadı")
		}

		if ch.Status == models.CheckStatusCancelled && next != models.CheckStatusCancelled {
			return fiber.NewError(fiber.StatusConflict, "İptal edilmiş çekin durumu değiştirilemez")
		}

		before := toCheckResponse(ch)
		ch.Status = next
		if err := database.DB.Save(&ch).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çek güncellenemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &ch.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "check",
			EntityID:    ch.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Çek durumu değişti: %s -> %s", before.Status, ch.Status),
			Before:      before,
			After:       toCheckResponse(ch),
		})

		return c.JSON(toCheckResponse(ch))
	}
}

// DELETE /api/checks/:id
func DeleteCheckHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var ch models.Check
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&ch).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çek bulunamadı")
		}

		if err := database.DB.Delete(&ch).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çek silinemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &ch.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "check",
			EntityID:    ch.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Çek silindi: %d", ch.ID),
			Before:      toCheckResponse(ch),
		})

		return c.JSON(fiber.Map{"deleted": ch.ID})
	}
}
