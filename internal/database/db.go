package database

import (
	"istasyon-backend/internal/config"
	"istasyon-backend/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	// Shift migration: eski kayıtlarda over_short kolonu yoksa AutoMigrate ekler,
	// ama mevcut satırların değeri NULL kalır. Formülle doldur (AutoMigrate'ten SONRA).
	needsOverShortBackfill := false
	if DB.Migrator().HasTable(&models.Shift{}) && !DB.Migrator().HasColumn(&models.Shift{}, "over_short") {
		needsOverShortBackfill = true
	}

	err = DB.AutoMigrate(
		&models.Station{},
		&models.User{},
		&models.Personnel{},
		&models.Customer{},
		&models.CustomerTransaction{},
		&models.Shift{},
		&models.FuelSale{},
		&models.CompanyAccount{},
		&models.CompanyInvoice{},
		&models.Check{},
		&models.Tanker{},
		&models.TankerTransaction{},
		&models.EInvoice{},
		&models.BankCommissionRate{},
		&models.FuelPurchasePrice{},
		&models.ProfitSnapshot{},
		&models.MonthlyReport{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	if needsOverShortBackfill {
		log.Info("Shift.over_short kolonu yeni eklendi, mevcut kayıtlar formülle dolduruluyor...")
		if err := DB.Exec(`
			UPDATE shifts
			SET over_short = (cash_sales + card_sales + bank_transfers + loyalty_card + veresiye) - otomasyon_satis
			WHERE over_short IS NULL
		`).Error; err != nil {
			log.Warnf("over_short backfill hatası: %v", err)
		}
	}

	log.Info("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
