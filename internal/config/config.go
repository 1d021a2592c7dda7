package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Port          string
	DataDir       string
	TokenTTL      time.Duration
	StripeKey     string
	MailgunKey    string
	MailgunDomain string
	MailgunSender string
	Console       bool
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		DataDir:       getEnvOrDefault("DATA_DIR", ".data"),
		TokenTTL:      getDurationEnv("TOKEN_TTL", 60, time.Minute),
		StripeKey:     getEnvOrDefault("STRIPE_KEY", ""),
		MailgunKey:    getEnvOrDefault("MAILGUN_KEY", ""),
		MailgunDomain: getEnvOrDefault("MAILGUN_DOMAIN", ""),
		MailgunSender: getEnvOrDefault("MAILGUN_SENDER", "receipts@localhost"),
		Console:       getBoolEnv("CONSOLE", false),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
