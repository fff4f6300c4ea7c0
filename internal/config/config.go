package config

import (
	"os"

	log "github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	LogLevel    string

	// Uyumsoft e-fatura entegratör bilgileri
	UyumsoftURL      string
	UyumsoftUsername string
	UyumsoftPassword string
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=istasyon port=5432 sslmode=disable"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		CORSOrigins:      getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		UyumsoftURL:      getEnv("UYUMSOFT_URL", ""),
		UyumsoftUsername: getEnv("UYUMSOFT_USERNAME", ""),
		UyumsoftPassword: getEnv("UYUMSOFT_PASSWORD", ""),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.UyumsoftURL == "" {
		log.Warn("UYUMSOFT_URL tanımlanmamış, e-fatura gönderimi devre dışı kalacak.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Warn("CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için mutlaka kendi domain'ini tanımla.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
