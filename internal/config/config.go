package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	// Model
	GoogleAPIKey    string
	ModelName       string
	MaxOutputTokens int32
	HistoryWindow   int
	ModelTimeout    time.Duration
	UseMockModel    bool

	// Leads
	LeadsBackend      string // "memory" or "sheets"
	SheetID           string
	CredentialsPath   string
	CredentialsBase64 string

	CORSOrigins []string
}

// Load reads configuration from environment variables.
// In development, it loads from a .env file if present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		GoogleAPIKey:    os.Getenv("GOOGLE_API_KEY"),
		ModelName:       getEnv("MODEL_NAME", "gemini-2.0-flash"),
		MaxOutputTokens: int32(getIntEnv("MAX_OUTPUT_TOKENS", 1024)),
		HistoryWindow:   getIntEnv("HISTORY_WINDOW", 20),
		ModelTimeout:    time.Duration(getIntEnv("MODEL_TIMEOUT_SECONDS", 30)) * time.Second,
		UseMockModel:    getBoolEnv("USE_MOCK_MODEL", false),

		LeadsBackend:      getEnv("LEADS_BACKEND", "memory"),
		SheetID:           os.Getenv("GOOGLE_SHEET_ID"),
		CredentialsPath:   getEnv("GOOGLE_CREDENTIALS_PATH", "credentials.json"),
		CredentialsBase64: os.Getenv("GOOGLE_CREDENTIALS_BASE64"),
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	} else {
		cfg.CORSOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}

	return cfg
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	if !c.UseMockModel && c.GoogleAPIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY is required unless USE_MOCK_MODEL=1")
	}
	if c.LeadsBackend == "sheets" && c.SheetID == "" {
		return fmt.Errorf("GOOGLE_SHEET_ID is required for the sheets leads backend")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func getBoolEnv(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	return v == "1" || strings.EqualFold(v, "true")
}
