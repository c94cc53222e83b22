package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Remote   RemoteConfig
	Payment  PaymentConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	// Path of the embedded sqlite file backing the local fallback store.
	LocalStorePath string
}

type RemoteConfig struct {
	StoreBaseURL string
	TierBaseURL  string
	Timeout      time.Duration
}

type PaymentConfig struct {
	MidtransServerKey  string
	MidtransProduction bool
	PollInterval       time.Duration
	PollTimeout        time.Duration
}

type AIConfig struct {
	GeminiAPIKey string
	GeminiModel  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			LocalStorePath: getEnv("LOCAL_STORE_PATH", "studybuddy.db"),
		},
		Remote: RemoteConfig{
			StoreBaseURL: getEnv("REMOTE_STORE_BASE_URL", "http://localhost:8090"),
			TierBaseURL:  getEnv("TIER_SERVICE_BASE_URL", "http://localhost:8091"),
			Timeout:      getEnvAsDuration("REMOTE_TIMEOUT", 10*time.Second),
		},
		Payment: PaymentConfig{
			MidtransServerKey:  getEnv("MIDTRANS_SERVER_KEY", ""),
			MidtransProduction: getEnv("MIDTRANS_IS_PRODUCTION", "false") == "true",
			PollInterval:       getEnvAsDuration("PAYMENT_POLL_INTERVAL", 5*time.Second),
			PollTimeout:        getEnvAsDuration("PAYMENT_POLL_TIMEOUT", 15*time.Minute),
		},
		Ai: AIConfig{
			GeminiAPIKey: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
