package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// CompanyInfo is the seller identity printed on invoices.
type CompanyInfo struct {
	Name    string
	Address string
	State   string
	GSTIN   string
	Phone   string
	Email   string
}

// BankDetails appear in the invoice payment footer.
type BankDetails struct {
	BankName      string
	AccountName   string
	AccountNumber string
	IFSC          string
	Branch        string
}

type Config struct {
	Port        string
	DBDriver    string // postgres or sqlite
	DatabaseURL string
	SQLitePath  string
	CORSOrigins []string
	LogLevel    string
	Company     CompanyInfo
	Bank        BankDetails
}

// Load reads .env when present, then the environment. Missing values fall
// back to development defaults so a bare `go run` works against sqlite.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=tiletrack port=5432 sslmode=disable"),
		SQLitePath:  getEnv("SQLITE_PATH", "tiletrack.db"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Company: CompanyInfo{
			Name:    getEnv("COMPANY_NAME", "Shree Tiles & Ceramics"),
			Address: getEnv("COMPANY_ADDRESS", ""),
			State:   getEnv("COMPANY_STATE", "Maharashtra"),
			GSTIN:   getEnv("COMPANY_GSTIN", ""),
			Phone:   getEnv("COMPANY_PHONE", ""),
			Email:   getEnv("COMPANY_EMAIL", ""),
		},
		Bank: BankDetails{
			BankName:      getEnv("BANK_NAME", ""),
			AccountName:   getEnv("BANK_ACCOUNT_NAME", ""),
			AccountNumber: getEnv("BANK_ACCOUNT_NUMBER", ""),
			IFSC:          getEnv("BANK_IFSC", ""),
			Branch:        getEnv("BANK_BRANCH", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
