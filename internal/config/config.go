package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Remote      RemoteConfig
	Checkout    CheckoutConfig
	LogLevel    string
}

// RemoteConfig describes the catalog/order service the engine talks to.
type RemoteConfig struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
}

// CheckoutConfig holds the fixed charges applied at checkout.
type CheckoutConfig struct {
	ShippingFee int64
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REMOTE_TIMEOUT_SECONDS", "30")
	viper.SetDefault("SHIPPING_FEE", "20000")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeoutSeconds := getIntOrViper("REMOTE_TIMEOUT_SECONDS", 30)
	shippingFee := getIntOrViper("SHIPPING_FEE", 20000)

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Remote: RemoteConfig{
			BaseURL:     getEnvOrViper("REMOTE_BASE_URL", ""),
			AccessToken: getEnvOrViper("REMOTE_ACCESS_TOKEN", ""),
			Timeout:     time.Duration(timeoutSeconds) * time.Second,
		},
		Checkout: CheckoutConfig{
			ShippingFee: shippingFee,
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Remote.BaseURL == "" {
		return nil, fmt.Errorf("REMOTE_BASE_URL is required")
	}
	if cfg.Checkout.ShippingFee < 0 {
		return nil, fmt.Errorf("SHIPPING_FEE must not be negative")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getIntOrViper(key string, defaultValue int64) int64 {
	if os.Getenv(key) != "" || viper.IsSet(key) {
		return viper.GetInt64(key)
	}
	return defaultValue
}
