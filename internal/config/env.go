package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the development placeholder used when JWT_SECRET is unset.
const DefaultJWTSecret = "change-me-in-production"

var ErrInsecureJWTSecret = errors.New("JWT_SECRET must be set to a non-default value in release mode")

type Env struct {
	AppAddr  string
	GinMode  string
	LogLevel string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	JWTSecret string

	UploadDir     string
	PublicBaseURL string

	SMSGatewayURL string
	SMSAPIKey     string
	SMSSender     string

	AdminUsername string
	AdminPassword string

	CORSAllowedOrigins []string
}

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() Env {
	_ = godotenv.Load(".env")

	return Env{
		AppAddr:  getenv("APP_ADDR", ":8080"),
		GinMode:  getenv("GIN_MODE", ""),
		LogLevel: getenv("LOG_LEVEL", "info"),

		DBHost: getenv("DB_HOST", "127.0.0.1"),
		DBPort: getenv("DB_PORT", "3306"),
		DBUser: getenv("DB_USER", "root"),
		DBPass: getenv("DB_PASS", ""),
		DBName: getenv("DB_NAME", "tourdesk"),

		JWTSecret: getenv("JWT_SECRET", DefaultJWTSecret),

		UploadDir:     getenv("UPLOAD_DIR", "uploads"),
		PublicBaseURL: strings.TrimRight(getenv("PUBLIC_BASE_URL", ""), "/"),

		SMSGatewayURL: getenv("SMS_GATEWAY_URL", ""),
		SMSAPIKey:     getenv("SMS_API_KEY", ""),
		SMSSender:     getenv("SMS_SENDER", "TOURDESK"),

		AdminUsername: getenv("ADMIN_USERNAME", ""),
		AdminPassword: getenv("ADMIN_PASSWORD", ""),

		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// InsecureJWTSecret reports whether tokens would be signed with the public placeholder.
func (e Env) InsecureJWTSecret() bool {
	return e.JWTSecret == "" || e.JWTSecret == DefaultJWTSecret
}

// CheckSecrets refuses the placeholder JWT secret when GIN_MODE is release.
func (e Env) CheckSecrets() error {
	if strings.EqualFold(e.GinMode, "release") && e.InsecureJWTSecret() {
		return ErrInsecureJWTSecret
	}
	return nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
