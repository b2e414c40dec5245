package middleware

import (
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newApp(t *testing.T, cfg LogConfig) (*fiber.App, *observer.ObservedLogs, *RequestLogger) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	rl, err := NewRequestLogger(zap.New(core), cfg)
	require.NoError(t, err)
	t.Cleanup(rl.Close)

	app := fiber.New()
	app.Use(rl.Handler())
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/api/tasks", func(c *fiber.Ctx) error { return c.JSON([]string{}) })
	app.Post("/api/tasks", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad"})
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })
	return app, logs, rl
}

func TestRequestLoggerLevels(t *testing.T) {
	app, logs, _ := newApp(t, LogConfig{Console: true, IncludeBody: true, SkipPaths: []string{"/health"}})

	for _, req := range []struct{ method, path, body string }{
		{fiber.MethodGet, "/health", ""},
		{fiber.MethodGet, "/api/tasks?date=2024-03-12", ""},
		{fiber.MethodPost, "/api/tasks", `{"title":"x"}`},
		{fiber.MethodGet, "/boom", ""},
	} {
		r := httptest.NewRequest(req.method, req.path, strings.NewReader(req.body))
		r.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		_, err := app.Test(r)
		require.NoError(t, err)
	}

	entries := logs.All()
	require.Len(t, entries, 3)

	ok := entries[0]
	assert.Equal(t, zapcore.InfoLevel, ok.Level)
	assert.Equal(t, "http", ok.LoggerName)
	assert.Equal(t, "/api/tasks", ok.ContextMap()["path"])
	assert.Equal(t, "/api/tasks?date=2024-03-12", ok.ContextMap()["url"])
	assert.EqualValues(t, 200, ok.ContextMap()["status"])

	bad := entries[1]
	assert.Equal(t, zapcore.WarnLevel, bad.Level)
	assert.Equal(t, map[string]interface{}{"title": "x"}, bad.ContextMap()["request_body"])

	boom := entries[2]
	assert.Equal(t, zapcore.ErrorLevel, boom.Level)
	assert.EqualValues(t, 500, boom.ContextMap()["status"])
	assert.Equal(t, "boom", boom.ContextMap()["error"])
}

func TestRequestLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "requests.log")
	app, logs, rl := newApp(t, LogConfig{File: true, LogFilePath: path, Format: "json"})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/tasks", nil))
	require.NoError(t, err)
	rl.Close()

	assert.Zero(t, logs.Len())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"path":"/api/tasks"`)
	assert.Contains(t, string(data), `"logger":"http"`)
}

func TestRequestLoggerKeepsFieldsAcrossRequests(t *testing.T) {
	app, logs, _ := newApp(t, LogConfig{Console: true})

	first := httptest.NewRequest(fiber.MethodGet, "/api/tasks?staff_id=s1", nil)
	first.Header.Set(fiber.HeaderUserAgent, "staff-portal")
	_, err := app.Test(first)
	require.NoError(t, err)

	second := httptest.NewRequest(fiber.MethodGet, "/zzzzzzzzzzzzzzzzzzzz", nil)
	second.Header.Set(fiber.HeaderUserAgent, "client-portal-client")
	_, err = app.Test(second)
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/tasks", fields["path"])
	assert.Equal(t, "/api/tasks?staff_id=s1", fields["url"])
	assert.Equal(t, "staff-portal", fields["user_agent"])
}
