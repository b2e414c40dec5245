// Package Config loads service settings from the environment, optionally
// seeded from a .env file.
package Config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"CareBridge/Models"
)

type Config struct {
	Port           string
	DBPath         string
	Location       *time.Location
	LogLevel       string
	LogFile        string
	GeminiAPIKey   string
	GeminiModel    string
	SummaryTimeout time.Duration
	DigestSchedule string
	DigestTo       []string
	SMTP           Models.EmailConfig
	SeedMockData   bool
}

// Load reads .env from the working directory when present; variables already
// set in the environment win.
func Load() (Config, error) {
	return LoadFiles(".env")
}

func LoadFiles(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var errs []error
	cfg := Config{
		Port:           get("PORT", "3001"),
		DBPath:         get("DB_PATH", "database.db"),
		LogLevel:       get("LOG_LEVEL", "info"),
		LogFile:        get("LOG_FILE", "logs/requests.log"),
		GeminiAPIKey:   get("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiModel:    get("GEMINI_MODEL", "gemini-3-flash-preview"),
		DigestSchedule: get("DIGEST_SCHEDULE", "0 0 18 * * *"),
		DigestTo:       list("DIGEST_RECIPIENTS"),
		SMTP: Models.EmailConfig{
			SMTPServer: os.Getenv("SMTP_HOST"),
			Username:   os.Getenv("SMTP_USERNAME"),
			Password:   os.Getenv("SMTP_PASSWORD"),
			FromEmail:  os.Getenv("SMTP_FROM"),
			FromName:   get("SMTP_FROM_NAME", "CareBridge Hub"),
		},
	}

	loc, err := time.LoadLocation(get("TIMEZONE", "Local"))
	if err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	cfg.Location = loc

	if cfg.SummaryTimeout, err = time.ParseDuration(get("SUMMARY_TIMEOUT", "20s")); err != nil {
		errs = append(errs, fmt.Errorf("SUMMARY_TIMEOUT: %w", err))
	}
	if cfg.SMTP.SMTPPort, err = strconv.Atoi(get("SMTP_PORT", "587")); err != nil {
		errs = append(errs, fmt.Errorf("SMTP_PORT: %w", err))
	}
	if cfg.SMTP.TLSEnabled, err = strconv.ParseBool(get("SMTP_TLS", "false")); err != nil {
		errs = append(errs, fmt.Errorf("SMTP_TLS: %w", err))
	}
	if cfg.SeedMockData, err = strconv.ParseBool(get("SEED_MOCK_DATA", "true")); err != nil {
		errs = append(errs, fmt.Errorf("SEED_MOCK_DATA: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func get(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func list(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
