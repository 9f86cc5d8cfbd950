package config

import (
	"os"
	"strings"
)

// Env carries all environment-derived settings. Secrets stay here and are
// passed down explicitly; handlers never read os.Getenv themselves.
type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	SiteBaseURL    string
	AllowedOrigins []string

	StripeSecretKey     string
	StripeWebhookSecret string

	MailRelayURL    string
	MailRelaySecret string

	MXLookupAPIKey string

	JWTSecret string

	KafkaBrokers []string
	KafkaTopic   string
}

// PrimaryOrigin is the production site origin used as CORS fallback.
const PrimaryOrigin = "https://www.transferride.com"

func LoadEnv() Env {
	env := Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: getenv("GIN_MODE", ""),

		DBUser: getenv("DB_USER", "root"),
		DBPass: getenv("DB_PASS", ""),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "transfer_app"),

		SiteBaseURL: getenv("SITE_BASE_URL", PrimaryOrigin),

		StripeSecretKey:     getenv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getenv("STRIPE_WEBHOOK_SECRET", ""),

		MailRelayURL:    getenv("MAIL_RELAY_URL", ""),
		MailRelaySecret: getenv("MAIL_RELAY_SECRET", ""),

		MXLookupAPIKey: getenv("MX_LOOKUP_API_KEY", ""),

		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),

		KafkaTopic: getenv("KAFKA_TOPIC", "booking-events"),
	}

	if raw := getenv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.AllowedOrigins = append(env.AllowedOrigins, o)
			}
		}
	}
	if len(env.AllowedOrigins) == 0 {
		env.AllowedOrigins = []string{PrimaryOrigin}
	}

	if raw := getenv("KAFKA_BROKERS", ""); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				env.KafkaBrokers = append(env.KafkaBrokers, b)
			}
		}
	}

	return env
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
