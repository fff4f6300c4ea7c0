package einvoice

import (
	"encoding/json"
	"fmt"
	"time"

	"istasyon-backend/internal/audit"
	"istasyon-backend/internal/auth"
	"istasyon-backend/internal/database"
	"istasyon-backend/internal/models"
	"istasyon-backend/internal/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceLineRequest struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	VATRate     float64 `json:"vat_rate"`
}

type SubmitInvoiceRequest struct {
	Kind       string               `json:"kind"` // "efatura" | "earsiv"
	InvoiceNo  string               `json:"invoice_no"`
	CustomerID *uint                `json:"customer_id"`
	IssueDate  string               `json:"issue_date"` // "2025-12-09", boşsa bugün
	Currency   string               `json:"currency"`
	Lines      []InvoiceLineRequest `json:"lines"`
}

type InvoiceResponse struct {
	ID              uint    `json:"id"`
	Kind            string  `json:"kind"`
	ETTN            string  `json:"ettn"`
	InvoiceNo       string  `json:"invoice_no"`
	CustomerID      *uint   `json:"customer_id"`
	IssueDate       string  `json:"issue_date"`
	Currency        string  `json:"currency"`
	NetAmount       float64 `json:"net_amount"`
	VATAmount       float64 `json:"vat_amount"`
	TotalAmount     float64 `json:"total_amount"`
	Success         bool    `json:"success"`
	Status          string  `json:"status"`
	ResponseMessage string  `json:"response_message"`
}

func toInvoiceResponse(inv models.EInvoice) InvoiceResponse {
	return InvoiceResponse{
		ID:              inv.ID,
		Kind:            string(inv.Kind),
		ETTN:            inv.ETTN,
		InvoiceNo:       inv.InvoiceNo,
		CustomerID:      inv.CustomerID,
		IssueDate:       inv.IssueDate.Format("2006-01-02"),
		Currency:        inv.Currency,
		NetAmount:       inv.NetAmount,
		VATAmount:       inv.VATAmount,
		TotalAmount:     inv.TotalAmount,
		Success:         inv.Success,
		Status:          inv.Status,
		ResponseMessage: inv.ResponseMessage,
	}
}

// e-arşiv JSON gövdesi. Entegratörün arşiv ucu XML değil JSON bekler.
type archivePayload struct {
	ETTN         string        `json:"ettn"`
	InvoiceNo    string        `json:"invoice_no"`
	IssueDate    string        `json:"issue_date"`
	Currency     string        `json:"currency"`
	SupplierName string        `json:"supplier_name"`
	TaxNumber    string        `json:"tax_number"`
	TaxOffice    string        `json:"tax_office"`
	CustomerName string        `json:"customer_name"`
	Lines        []archiveLine `json:"lines"`
	NetAmount    string        `json:"net_amount"`
	VATAmount    string        `json:"vat_amount"`
	TotalAmount  string        `json:"total_amount"`
}

type archiveLine struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	VATRate     string `json:"vat_rate"`
	NetAmount   string `json:"net_amount"`
	VATAmount   string `json:"vat_amount"`
}

// POST /api/einvoices
// Faturayı kurar, entegratöre gönderir, cevabı kayda işler. Gönderim
// başarısız olsa da kayıt tutulur; tekrar deneme yapılmaz.
func SubmitInvoiceHandler(client *Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		var body SubmitInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Kind != string(models.EInvoiceKindFatura) && body.Kind != string(models.EInvoiceKindArsiv) {
			return fiber.NewError(fiber.StatusBadRequest, "kind 'efatura' veya 'earsiv' olmalı")
		}
		if len(body.Lines) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fatura en az bir satır içermeli")
		}

		var station models.Station
		if err := database.DB.First(&station, stationID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İstasyon bilgisi okunamadı")
		}

		var customerName, customerTax string
		if body.CustomerID != nil {
			var cust models.Customer
			if err := database.DB.Where("id = ? AND station_id = ?", *body.CustomerID, stationID).First(&cust).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Müşteri bulunamadı")
			}
			customerName = cust.Name
			customerTax = cust.TaxNumber
		}

		issueDate := time.Now()
		if body.IssueDate != "" {
			issueDate, err = time.ParseInLocation("2006-01-02", body.IssueDate, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
		}

		currency := body.Currency
		if currency == "" {
			currency = "TRY"
		}

		lines := make([]InvoiceLine, 0, len(body.Lines))
		for _, l := range body.Lines {
			if l.Quantity <= 0 || l.UnitPrice <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Satır miktarı ve birim fiyatı 0'dan büyük olmalı")
			}
			if l.VATRate < 0 || l.VATRate > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "KDV oranı 0-100 arası olmalı")
			}
			lines = append(lines, InvoiceLine{
				Description: l.Description,
				Quantity:    decimal.NewFromFloat(l.Quantity),
				UnitPrice:   decimal.NewFromFloat(l.UnitPrice),
				VATRate:     decimal.NewFromFloat(l.VATRate),
			})
		}

		ettn := uuid.NewString()
		net, vat, total := Totals(lines)

		var payload string
		switch models.EInvoiceKind(body.Kind) {
		case models.EInvoiceKindFatura:
			doc := BuildDocument(DocumentParams{
				ETTN:         ettn,
				InvoiceNo:    body.InvoiceNo,
				IssueDate:    issueDate.Format("2006-01-02"),
				Currency:     currency,
				SupplierName: station.Name,
				TaxNumber:    station.TaxNumber,
				TaxOffice:    station.TaxOffice,
				CustomerName: customerName,
				CustomerTax:  customerTax,
				Lines:        lines,
			})
			payload, err = EncodeDocument(doc)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Fatura dokümanı oluşturulamadı")
			}
		case models.EInvoiceKindArsiv:
			ap := archivePayload{
				ETTN:         ettn,
				InvoiceNo:    body.InvoiceNo,
				IssueDate:    issueDate.Format("2006-01-02"),
				Currency:     currency,
				SupplierName: station.Name,
				TaxNumber:    station.TaxNumber,
				TaxOffice:    station.TaxOffice,
				CustomerName: customerName,
				NetAmount:    net.StringFixed(2),
				VATAmount:    vat.StringFixed(2),
				TotalAmount:  total.StringFixed(2),
			}
			for _, l := range lines {
				ap.Lines = append(ap.Lines, archiveLine{
					Description: l.Description,
					Quantity:    l.Quantity.String(),
					UnitPrice:   l.UnitPrice.StringFixed(2),
					VATRate:     l.VATRate.String(),
					NetAmount:   l.Net().StringFixed(2),
					VATAmount:   l.VAT().StringFixed(2),
				})
			}
			raw, err := json.Marshal(ap)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Fatura dokümanı oluşturulamadı")
			}
			payload = string(raw)
		}

		inv := models.EInvoice{
			StationID:   stationID,
			Kind:        models.EInvoiceKind(body.Kind),
			ETTN:        ettn,
			InvoiceNo:   body.InvoiceNo,
			CustomerID:  body.CustomerID,
			IssueDate:   issueDate,
			Currency:    currency,
			NetAmount:   net.InexactFloat64(),
			VATAmount:   vat.InexactFloat64(),
			TotalAmount: total.InexactFloat64(),
			Payload:     payload,
		}

		// Gönderim: cevap ne olursa olsun olduğu gibi işlenir.
		var result SubmitResult
		var submitErr error
		if inv.Kind == models.EInvoiceKindFatura {
			result, submitErr = client.SubmitXML(c.Context(), payload)
		} else {
			result, submitErr = client.SubmitJSON(c.Context(), []byte(payload))
		}
		if submitErr != nil {
			inv.Success = false
			inv.Status = "error"
			inv.ResponseMessage = submitErr.Error()
		} else {
			inv.Success = result.Success
			inv.Status = result.Status
			inv.ResponseMessage = result.Message
		}

		if err := database.DB.Create(&inv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura kaydedilemedi")
		}

		userID, userName := auth.UserInfoFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			StationID:   &inv.StationID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "einvoice",
			EntityID:    inv.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("E-fatura gönderildi: %s - %.2f TL (%s)", inv.ETTN, inv.TotalAmount, inv.Status),
			After:       toInvoiceResponse(inv),
		})

		status := fiber.StatusCreated
		if !inv.Success {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(toInvoiceResponse(inv))
	}
}

// GET /api/einvoices?kind=&from=&to=
func ListInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.EInvoice{}).Where("station_id = ?", stationID)
		if kind := c.Query("kind"); kind != "" {
			dbq = dbq.Where("kind = ?", kind)
		}
		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
			}
			dbq = dbq.Where("issue_date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
			}
			dbq = dbq.Where("issue_date < ?", reconcile.DayRangeEnd(to))
		}

		var invs []models.EInvoice
		if err := dbq.Order("issue_date desc, id desc").Find(&invs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Faturalar listelenemedi")
		}

		resp := make([]InvoiceResponse, 0, len(invs))
		for _, inv := range invs {
			resp = append(resp, toInvoiceResponse(inv))
		}
		return c.JSON(resp)
	}
}

// GET /api/einvoices/:id
// Detay gönderilen ham dokümanı da döner.
func GetInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stationID, err := auth.StationIDFromCtx(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var inv models.EInvoice
		if err := database.DB.Where("id = ? AND station_id = ?", id, stationID).First(&inv).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fatura bulunamadı")
		}

		return c.JSON(fiber.Map{
			"invoice": toInvoiceResponse(inv),
			"payload": inv.Payload,
		})
	}
}
