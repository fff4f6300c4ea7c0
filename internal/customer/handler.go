package customer

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

type CreateCustomerRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	TaxNumber string `json:"tax_number"`
	Address   string `json:"address"`
}

type UpdateCustomerRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	TaxNumber *string `json:"tax_number"`
	Address   *string `json:"address"`
}

type CustomerResponse struct {
	ID        uint    `json:"id"`
	StationID uint    `json:"station_id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	TaxNumber string  `json:"tax_number"`
	Address   string  `json:"address"`
	Balance   float64 `json:"balance"` // pozitif = müşteri borçlu
}

type CreateTransactionRequest struct {
	CustomerID  uint    `json:"customer_id"`
	Type        string  `json:"type"` // "debt" | "payment"
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"` // "2025-12-09", boşsa bugün
	PersonnelID *uint   `json:"personnel_id"`
	Description string  `json:"description"`
}

type TransactionResponse struct {
	ID          uint    `json:"id"`
	CustomerID  uint    `json:"customer_id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	PersonnelID *uint   `json:"personnel_id"`
	Description string  `json:"description"`
}

func toTransactionResponse(tx models.CustomerTransaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		CustomerID:  tx.CustomerID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Date:        tx.Date.Format("2006-01-02"),
		PersonnelID: tx.PersonnelID,
		Description: tx.Description,
	}
}

func customerBalance(customerID uint) float64 {
	var txs []models.CustomerTransaction
	database.DB.Where("customer_id = ?", customerID).Find(&txs)
	return reconcile.CustomerBalance(txs)
}

// -------------------------
// Customer CRUD
// -------------------------

// POST /api/customers
func CreateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}
		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri adı boş olamaz")
		}

		cust := models.Customer{
			StationID: stationID,
			Name:      strings.TrimSpace(body.Name),
			Phone:     body.Phone,
			TaxNumber: body.TaxNumber,
			Address:   body.Address,
		}

		if err := database.DB.Create(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(CustomerResponse{
			ID:        cust.ID,
			StationID: cust.StationID,
			Name:      cust.Name,
			Phone:     cust.Phone,
			TaxNumber: cust.TaxNumber,
			Address:   cust.Address,
		})
	}
}

// GET /api/customers
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var customers []models.Customer
		if err := database.DB.Where("station_id = ?", stationID).Order("name asc").Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteriler listelenemedi")
		}

		resp := make([]CustomerResponse, 0, len(customers))
		for _, cust := range customers {
			resp = append(resp, CustomerResponse{
				ID:        cust.ID,
				StationID: cust.StationID,
				Name:      cust.Name,
				Phone:     cust.Phone,
				TaxNumber: cust.TaxNumber,
				Address:   cust.Address,
				Balance:   customerBalance(cust.ID),
			})
		}

		return c.JSON(resp)
	}
}

// GET /api/customers/:id?from=2025-12-01&to=2025-12-31
// Müşteri detayı: hareketler + bakiye. Tarih verilirse bakiye de o aralıktan hesaplanır.
func GetCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var cust models.Customer
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		dbq := database.DB.Where("customer_id = ?", cust.ID)

		fromStr, toStr := c.Query("from"), c.Query("to")
		if fromStr != "" {
			from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
			}
			dbq = dbq.Where("date >= ?", from)
		}
		if toStr != "" {
			to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
			}
			dbq = dbq.Where("date <= ?", to)
		}

		var txs []models.CustomerTransaction
		if err := dbq.Order("date asc, id asc").Find(&txs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareketler listelenemedi")
		}

		txResp := make([]TransactionResponse, 0, len(txs))
		for _, tx := range txs {
			txResp = append(txResp, toTransactionResponse(tx))
		}

		return c.JSON(fiber.Map{
			"customer": CustomerResponse{
				ID:        cust.ID,
				StationID: cust.StationID,
				Name:      cust.Name,
				Phone:     cust.Phone,
				TaxNumber: cust.TaxNumber,
				Address:   cust.Address,
				Balance:   reconcile.CustomerBalance(txs),
			},
			"transactions": txResp,
		})
	}
}

// PUT /api/customers/:id
func UpdateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var body UpdateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		var cust models.Customer
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		if body.Name != nil {
			if strings.TrimSpace(*body.Name) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Müşteri adı boş olamaz")
			}
			cust.Name = strings.TrimSpace(*body.Name)
		}
		if body.Phone != nil {
			cust.Phone = *body.Phone
		}
		if body.TaxNumber != nil {
			cust.TaxNumber = *body.TaxNumber
		}
		if body.Address != nil {
			cust.Address = *body.Address
		}

		if err := database.DB.Save(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri güncellenemedi")
		}

		return c.JSON(CustomerResponse{
			ID:        cust.ID,
			StationID: cust.StationID,
			Name:      cust.Name,
			Phone:     cust.Phone,
			TaxNumber: cust.TaxNumber,
			Address:   cust.Address,
			Balance:   customerBalance(cust.ID),
		})
	}
}

// DELETE /api/customers/:id
func DeleteCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var cust models.Customer
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		// hareketi olan müşteri silinemez
		var txCount int64
		database.DB.Model(&models.CustomerTransaction{}).Where("customer_id = ?", cust.ID).Count(&txCount)
		if txCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Hareketi olan müşteri silinemez, önce hareketleri silin")
		}

		if err := database.DB.Delete(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri silinemedi")
		}

		return c.JSON(fiber.Map{"deleted": cust.ID})
	}
}

// -------------------------
// Customer Transactions
// -------------------------

// POST /api/customer-transactions
func CreateTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Type != string(models.CustomerTxDebt) && body.Type != string(models.CustomerTxPayment) {
			return fiber.NewError(fiber.StatusBadRequest, "type 'debt' veya 'payment' olmalı")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tutar 0'dan büyük olmalı")
		}

		var cust models.Customer
		if err := database.DB.Where("id = ? AND station_id = ?", body.CustomerID, stationID).First(&cust).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri bulunamadı")
		}

		var date time.Time
		if body.Date == "" {
			now := time.Now()
			date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		} else {
			date, err = time.ParseInLocation("2006-01-02", body.Date, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
		}

		tx := models.CustomerTransaction{
			StationID:   stationID,
			CustomerID:  body.CustomerID,
			Type:        models.CustomerTransactionType(body.Type),
			Amount:      body.Amount,
			Date:        date,
			PersonnelID: body.PersonnelID,
			Description: body.Description,
		}

		if err := database.DB.Create(&tx).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareket kaydedilemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		typeLabel := "Borç"
		if tx.Type == models.CustomerTxPayment {
			typeLabel = "Tahsilat"
		}
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &tx.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "customer_transaction",
			EntityID:    tx.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("%s eklendi: %s - %.2f TL", typeLabel, cust.Name, tx.Amount),
			After:       toTransactionResponse(tx),
		})

		return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(tx))
	}
}

// GET /api/customer-transactions?customer_id=5&from=&to=
func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.CustomerTransaction{}).Where("station_id = ?", stationID)

		if cidStr := c.Query("customer_id"); cidStr != "" {
			var cid uint
			if _, err := fmt.Sscan(cidStr, &cid); err != nil || cid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "customer_id geçersiz")
			}
			dbq = dbq.Where("customer_id = ?", cid)
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
			dbq = dbq.Where("date <= ?", to)
		}

		var txs []models.CustomerTransaction
		if err := dbq.Order("date asc, id asc").Find(&txs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareketler listelenemedi")
		}

		resp := make([]TransactionResponse, 0, len(txs))
		for _, tx := range txs {
			resp = append(resp, toTransactionResponse(tx))
		}

		return c.JSON(resp)
	}
}

// DELETE /api/customer-transactions/:id
// Silme sonrası bakiye, kayıt eklenmeden önceki değerine döner.
func DeleteTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var tx models.CustomerTransaction
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&tx).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hareket bulunamadı")
		}

		if err := database.DB.Delete(&tx).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareket silinemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &tx.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "customer_transaction",
			EntityID:    tx.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Müşteri hareketi silindi: %d", tx.ID),
			Before:      toTransactionResponse(tx),
		})

		return c.JSON(fiber.Map{
			"deleted":     tx.ID,
			"new_balance": customerBalance(tx.CustomerID),
		})
	}
}
