package accounting

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

// -------------------------
// Request/Response Types
// -------------------------

type CreateAccountRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AccountResponse struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Balance       float64 `json:"balance"`
	IncomeUnpaid  float64 `json:"income_unpaid"`
	ExpenseUnpaid float64 `json:"expense_unpaid"`
}

type CreateInvoiceRequest struct {
	AccountID     uint    `json:"account_id"`
	Type          string  `json:"type"` // "income" | "expense"
	Amount        float64 `json:"amount"`
	InvoiceDate   string  `json:"invoice_date"` // "2025-12-09"
	PaymentStatus string  `json:"payment_status"`
	InvoiceNo     string  `json:"invoice_no"`
	Description   string  `json:"description"`
}

type UpdateInvoiceRequest struct {
	Amount        *float64 `json:"amount"`
	InvoiceDate   *string  `json:"invoice_date"`
	PaymentStatus *string  `json:"payment_status"`
	InvoiceNo     *string  `json:"invoice_no"`
	Description   *string  `json:"description"`
}

type InvoiceResponse struct {
	ID            uint    `json:"id"`
	AccountID     uint    `json:"account_id"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	InvoiceDate   string  `json:"invoice_date"`
	PaymentStatus string  `json:"payment_status"`
	InvoiceNo     string  `json:"invoice_no"`
	Description   string  `json:"description"`
}

func toInvoiceResponse(inv models.CompanyInvoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		AccountID:     inv.AccountID,
		Type:          string(inv.Type),
		Amount:        inv.Amount,
		InvoiceDate:   inv.InvoiceDate.Format("2006-01-02"),
		PaymentStatus: string(inv.PaymentStatus),
		InvoiceNo:     inv.InvoiceNo,
		Description:   inv.Description,
	}
}

func accountSummary(acc models.CompanyAccount) AccountResponse {
	var invs []models.CompanyInvoice
	database.DB.Where("account_id = ?", acc.ID).Find(&invs)
	incomeUnpaid, expenseUnpaid := reconcile.UnpaidTotals(invs)
	return AccountResponse{
		ID:            acc.ID,
		Name:          acc.Name,
		Description:   acc.Description,
		Balance:       reconcile.AccountBalance(invs),
		IncomeUnpaid:  incomeUnpaid,
		ExpenseUnpaid: expenseUnpaid,
	}
}

// -------------------------
// Company Accounts
// -------------------------

// POST /api/accounts
func CreateAccountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateAccountRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}
		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Hesap adı boş olamaz")
		}

		acc := models.CompanyAccount{
			StationID:   stationID,
			Name:        strings.TrimSpace(body.Name),
			Description: body.Description,
		}
		if err := database.DB.Create(&acc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hesap kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(accountSummary(acc))
	}
}

// GET /api/accounts
func ListAccountsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var accounts []models.CompanyAccount
		if err := database.DB.Where("station_id = ?", stationID).Order("name asc").Find(&accounts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hesaplar listelenemedi")
		}

		resp := make([]AccountResponse, 0, len(accounts))
		for _, acc := range accounts {
			resp = append(resp, accountSummary(acc))
		}
		return c.JSON(resp)
	}
}

// DELETE /api/accounts/:id
func DeleteAccountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var acc models.CompanyAccount
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&acc).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hesap bulunamadı")
		}

		var invCount int64
		database.DB.Model(&models.CompanyInvoice{}).Where("account_id = ?", acc.ID).Count(&invCount)
		if invCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Faturası olan hesap silinemez")
		}

		if err := database.DB.Delete(&acc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hesap silinemedi")
		}
		return c.JSON(fiber.Map{"deleted": acc.ID})
	}
}

// -------------------------
// Company Invoices
// -------------------------

// POST /api/invoices
func CreateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Type != string(models.InvoiceTypeIncome) && body.Type != string(models.InvoiceTypeExpense) {
			return fiber.NewError(fiber.StatusBadRequest, "type 'income' veya 'expense' olmalı")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tutar 0'dan büyük olmalı")
		}

		status := models.PaymentStatus(body.PaymentStatus)
		if status == "" {
			status = models.PaymentStatusUnpaid
		}
		if status != models.PaymentStatusPaid && status != models.PaymentStatusUnpaid {
			return fiber.NewError(fiber.StatusBadRequest, "payment_status 'paid' veya 'unpaid' olmalı")
		}

		var acc models.CompanyAccount
		if err := database.DB.Where("id = ? AND station_id = ?", body.AccountID, stationID).First(&acc).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Hesap bulunamadı")
		}

		invDate, err := time.ParseInLocation("2006-01-02", body.InvoiceDate, time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		inv := models.CompanyInvoice{
			StationID:     stationID,
			AccountID:     body.AccountID,
			Type:          models.InvoiceType(body.Type),
			Amount:        body.Amount,
			InvoiceDate:   invDate,
			PaymentStatus: status,
			InvoiceNo:     body.InvoiceNo,
			Description:   body.Description,
		}
		if err := database.DB.Create(&inv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura kaydedilemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &inv.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "company_invoice",
			EntityID:    inv.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Fatura eklendi: %s - %.2f TL (%s)", acc.Name, inv.Amount, inv.Type),
			After:       toInvoiceResponse(inv),
		})

		return c.Status(fiber.StatusCreated).JSON(toInvoiceResponse(inv))
	}
}

// GET /api/invoices?account_id=&type=&payment_status=&from=&to=
func ListInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.CompanyInvoice{}).Where("station_id = ?", stationID)

		if aidStr := c.Query("account_id"); aidStr != "" {
			var aid uint
			if _, err := fmt.Sscan(aidStr, &aid); err != nil || aid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "account_id geçersiz")
			}
			dbq = dbq.Where("account_id = ?", aid)
		}
		if t := c.Query("type"); t != "" {
			dbq = dbq.Where("type = ?", t)
		}
		if ps := c.Query("payment_status"); ps != "" {
			dbq = dbq.Where("payment_status = ?", ps)
		}
		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
			}
			dbq = dbq.Where("invoice_date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
			}
			dbq = dbq.Where("invoice_date <= ?", to)
		}

		var invs []models.CompanyInvoice
		if err := dbq.Order("invoice_date asc, id asc").Find(&invs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Faturalar listelenemedi")
		}

		resp := make([]InvoiceResponse, 0, len(invs))
		for _, inv := range invs {
			resp = append(resp, toInvoiceResponse(inv))
		}
		return c.JSON(resp)
	}
}

// PUT /api/invoices/:id
func UpdateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var body UpdateInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		var inv models.CompanyInvoice
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&inv).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fatura bulunamadı")
		}
		before := toInvoiceResponse(inv)

		if body.Amount != nil {
			if *body.Amount <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Tutar 0'dan büyük olmalı")
			}
			inv.Amount = *body.Amount
		}
		if body.InvoiceDate != nil {
			d, err := time.ParseInLocation("2006-01-02", *body.InvoiceDate, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			inv.InvoiceDate = d
		}
		if body.PaymentStatus != nil {
			ps := models.PaymentStatus(*body.PaymentStatus)
			if ps != models.PaymentStatusPaid && ps != models.PaymentStatusUnpaid {
				return fiber.NewError(fiber.StatusBadRequest, "payment_status 'paid' veya 'unpaid' olmalı")
			}
			inv.PaymentStatus = ps
		}
		if body.InvoiceNo != nil {
			inv.InvoiceNo = *body.InvoiceNo
		}
		if body.Description != nil {
			inv.Description = *body.Description
		}

		if err := database.DB.Save(&inv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura güncellenemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &inv.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "company_invoice",
			EntityID:    inv.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Fatura güncellendi: %d", inv.ID),
			Before:      before,
			After:       toInvoiceResponse(inv),
		})

		return c.JSON(toInvoiceResponse(inv))
	}
}

// DELETE /api/invoices/:id
func DeleteInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var inv models.CompanyInvoice
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&inv).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fatura bulunamadı")
		}

		if err := database.DB.Delete(&inv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura silinemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &inv.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "company_invoice",
			EntityID:    inv.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Fatura silindi: %d", inv.ID),
			Before:      toInvoiceResponse(inv),
		})

		return c.JSON(fiber.Map{"deleted": inv.ID})
	}
}
