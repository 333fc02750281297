package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Storage StorageConfig
	Payment PaymentConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

// BackendConfig points the client at the authoritative backend API.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StorageConfig locates the client-local storage directory
// (credential, advisory seat locks, pending login intent).
type StorageConfig struct {
	Path string
}

type PaymentConfig struct {
	// ProcessingDelay simulates the latency of a card charge.
	// No real payment is authorized anywhere in this client.
	ProcessingDelay time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "eventora-client")
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("API_BASE_URL", "http://localhost:5000/api")
	viper.SetDefault("API_TIMEOUT_SECONDS", 10)
	viper.SetDefault("STORAGE_PATH", ".eventora/")
	viper.SetDefault("PAYMENT_DELAY_MS", 1200)

	// A missing .env is fine for the client; defaults cover everything.
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Backend: BackendConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
		},
		Storage: StorageConfig{
			Path: viper.GetString("STORAGE_PATH"),
		},
		Payment: PaymentConfig{
			ProcessingDelay: time.Duration(viper.GetInt("PAYMENT_DELAY_MS")) * time.Millisecond,
		},
	}

	return config, nil
}
