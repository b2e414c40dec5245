package Config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "DB_PATH", "TIMEZONE", "LOG_LEVEL", "LOG_FILE", "GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL",
	"SUMMARY_TIMEOUT", "DIGEST_SCHEDULE", "DIGEST_RECIPIENTS", "SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME",
	"SMTP_PASSWORD", "SMTP_FROM", "SMTP_FROM_NAME", "SMTP_TLS", "SEED_MOCK_DATA",
}

// clearEnv blanks every key for the test; get treats blank as unset.
func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFiles(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "database.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "logs/requests.log", cfg.LogFile)
	assert.Equal(t, "gemini-3-flash-preview", cfg.GeminiModel)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, 20*time.Second, cfg.SummaryTimeout)
	assert.Equal(t, "0 0 18 * * *", cfg.DigestSchedule)
	assert.Empty(t, cfg.DigestTo)
	assert.Equal(t, 587, cfg.SMTP.SMTPPort)
	assert.False(t, cfg.SMTP.Configured())
	assert.True(t, cfg.SeedMockData)
	assert.Equal(t, time.Local, cfg.Location)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("TIMEZONE", "Africa/Lagos")
	t.Setenv("API_KEY", "legacy-key")
	t.Setenv("SUMMARY_TIMEOUT", "5s")
	t.Setenv("DIGEST_RECIPIENTS", "ops@carebridge.ng, , lead@carebridge.ng")
	t.Setenv("SMTP_HOST", "smtp.carebridge.ng")
	t.Setenv("SMTP_FROM", "noreply@carebridge.ng")
	t.Setenv("SMTP_TLS", "true")
	t.Setenv("SEED_MOCK_DATA", "false")

	cfg, err := LoadFiles()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Africa/Lagos", cfg.Location.String())
	assert.Equal(t, "legacy-key", cfg.GeminiAPIKey)
	assert.Equal(t, 5*time.Second, cfg.SummaryTimeout)
	assert.Equal(t, []string{"ops@carebridge.ng", "lead@carebridge.ng"}, cfg.DigestTo)
	assert.True(t, cfg.SMTP.Configured())
	assert.True(t, cfg.SMTP.TLSEnabled)
	assert.False(t, cfg.SeedMockData)

	t.Setenv("GEMINI_API_KEY", "primary-key")
	cfg, err = LoadFiles()
	require.NoError(t, err)
	assert.Equal(t, "primary-key", cfg.GeminiAPIKey)
}

func TestLoadDotEnvDoesNotOverrideEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("DB_PATH")
	os.Unsetenv("LOG_LEVEL")
	t.Setenv("PORT", "9000")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=1234\nDB_PATH=/data/carebridge.db\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DB_PATH")
		os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := LoadFiles(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/data/carebridge.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUMMARY_TIMEOUT", "forever")
	t.Setenv("SMTP_PORT", "smtp")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	_, err := LoadFiles()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUMMARY_TIMEOUT")
	assert.Contains(t, err.Error(), "SMTP_PORT")
	assert.Contains(t, err.Error(), "TIMEZONE")
}
