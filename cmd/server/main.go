package main

import (
	"strings"

	"istasyon-backend/internal/accounting"
	"istasyon-backend/internal/audit"
	"istasyon-backend/internal/auth"
	"istasyon-backend/internal/config"
	"istasyon-backend/internal/customer"
	"istasyon-backend/internal/database"
	"istasyon-backend/internal/einvoice"
	"istasyon-backend/internal/models"
	"istasyon-backend/internal/personnel"
	"istasyon-backend/internal/prefs"
	"istasyon-backend/internal/report"
	"istasyon-backend/internal/sales"
	"istasyon-backend/internal/shift"
	"istasyon-backend/internal/tanker"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// .env varsa yükle, yoksa ortam değişkenleri yeterli
	_ = godotenv.Load()

	cfg := config.Load()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	database.Init(cfg)

	uyumsoft := einvoice.NewClient(cfg.UyumsoftURL, cfg.UyumsoftUsername, cfg.UyumsoftPassword)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.WithError(err).Error("Beklenmeyen hata")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-station", auth.RegisterStationHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/attendant-login", auth.AttendantLoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Pompacının da erişebildiği route'lar
	protected.Post("/shifts", shift.CreateShiftHandler())
	protected.Get("/shifts/active", shift.ActiveShiftHandler())
	protected.Post("/fuel-sales", sales.CreateFuelSaleHandler())

	// İstasyon yöneticisi route'ları
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleStationAdmin))

	// Vardiyalar
	adminRoutes.Get("/shifts", shift.ListShiftsHandler())
	adminRoutes.Put("/shifts/:id", shift.UpdateShiftHandler())
	adminRoutes.Delete("/shifts/:id", shift.DeleteShiftHandler())

	// Yakıt satışları
	adminRoutes.Get("/fuel-sales", sales.ListFuelSalesHandler())
	adminRoutes.Delete("/fuel-sales/:id", sales.DeleteFuelSaleHandler())

	// Raporlar
	adminRoutes.Get("/reports/shifts", report.ShiftReportHandler())
	adminRoutes.Get("/reports/profit", report.ProfitReportHandler())
	adminRoutes.Get("/dashboard/sales-chart", report.SalesChartHandler())
	adminRoutes.Post("/monthly-reports", report.CreateMonthlyReportHandler())
	adminRoutes.Get("/monthly-reports", report.ListMonthlyReportsHandler())
	adminRoutes.Get("/monthly-reports/:id", report.GetMonthlyReportHandler())

	// Müşteriler (veresiye defteri)
	adminRoutes.Post("/customers", customer.CreateCustomerHandler())
	adminRoutes.Get("/customers", customer.ListCustomersHandler())
	adminRoutes.Get("/customers/:id", customer.GetCustomerHandler())
	adminRoutes.Put("/customers/:id", customer.UpdateCustomerHandler())
	adminRoutes.Delete("/customers/:id", customer.DeleteCustomerHandler())
	adminRoutes.Post("/customer-transactions", customer.CreateTransactionHandler())
	adminRoutes.Get("/customer-transactions", customer.ListTransactionsHandler())
	adminRoutes.Delete("/customer-transactions/:id", customer.DeleteTransactionHandler())

	// Şirket muhasebesi
	adminRoutes.Post("/accounts", accounting.CreateAccountHandler())
	adminRoutes.Get("/accounts", accounting.ListAccountsHandler())
	adminRoutes.Delete("/accounts/:id", accounting.DeleteAccountHandler())
	adminRoutes.Post("/invoices", accounting.CreateInvoiceHandler())
	adminRoutes.Get("/invoices", accounting.ListInvoicesHandler())
	adminRoutes.Put("/invoices/:id", accounting.UpdateInvoiceHandler())
	adminRoutes.Delete("/invoices/:id", accounting.DeleteInvoiceHandler())

	// Çekler
	adminRoutes.Post("/checks", accounting.CreateCheckHandler())
	adminRoutes.Get("/checks", accounting.ListChecksHandler())
	adminRoutes.Put("/checks/:id/status", accounting.UpdateCheckStatusHandler())
	adminRoutes.Delete("/checks/:id", accounting.DeleteCheckHandler())

	// Tanklar
	adminRoutes.Post("/tankers", tanker.CreateTankerHandler())
	adminRoutes.Get("/tankers", tanker.ListTankersHandler())
	adminRoutes.Delete("/tankers/:id", tanker.DeleteTankerHandler())
	adminRoutes.Post("/tanker-transactions", tanker.CreateTankerTxHandler())
	adminRoutes.Get("/tanker-transactions", tanker.ListTankerTxHandler())

	// Personel
	adminRoutes.Post("/personnel", personnel.CreatePersonnelHandler())
	adminRoutes.Get("/personnel", personnel.ListPersonnelHandler())
	adminRoutes.Put("/personnel/:id", personnel.UpdatePersonnelHandler())
	adminRoutes.Delete("/personnel/:id", personnel.DeletePersonnelHandler())

	// E-fatura / e-arşiv
	adminRoutes.Post("/einvoices", einvoice.SubmitInvoiceHandler(uyumsoft))
	adminRoutes.Get("/einvoices", einvoice.ListInvoicesHandler())
	adminRoutes.Get("/einvoices/:id", einvoice.GetInvoiceHandler())

	// İstasyon ayarları
	adminRoutes.Put("/prefs/commission-rates", prefs.UpsertCommissionRateHandler())
	adminRoutes.Get("/prefs/commission-rates", prefs.ListCommissionRatesHandler())
	adminRoutes.Delete("/prefs/commission-rates/:id", prefs.DeleteCommissionRateHandler())
	adminRoutes.Put("/prefs/purchase-prices", prefs.UpsertPurchasePriceHandler())
	adminRoutes.Get("/prefs/purchase-prices", prefs.ListPurchasePricesHandler())
	adminRoutes.Post("/prefs/profit-snapshots", prefs.SaveSnapshotHandler())
	adminRoutes.Get("/prefs/profit-snapshots", prefs.ListSnapshotsHandler())
	adminRoutes.Delete("/prefs/profit-snapshots/:id", prefs.DeleteSnapshotHandler())

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Info("Server çalışıyor port: ", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
