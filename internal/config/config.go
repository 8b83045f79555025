package config

import (
	"os"
	"time"
)

// Config is loaded once at startup and treated as immutable afterwards.
// Handlers and services receive it (or fields of it) explicitly; nothing
// reads the environment after Load returns.
type Config struct {
	HTTPPort    string
	DatabaseURL string

	StripeSecretKey     string
	StripeWebhookSecret string
	StripePriceID       string
	SuccessURL          string
	CancelURL           string

	StaticDir string

	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
	MaxWebhookBodySize int64
}

func Load() *Config {
	return &Config{
		HTTPPort:    getEnv("PORT", "5000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripePriceID:       os.Getenv("STRIPE_PRICE_ID"),
		SuccessURL:          getEnv("CHECKOUT_SUCCESS_URL", "https://edu.example.com/obrigado"),
		CancelURL:           getEnv("CHECKOUT_CANCEL_URL", "https://edu.example.com/"),

		StaticDir: getEnv("STATIC_DIR", "./web"),

		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1MB
		MaxWebhookBodySize: 1 << 20,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
