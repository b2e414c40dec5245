package Controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"CareBridge/middleware"
)

// writeRequestLog drives a small app through the request logger so the viewer
// reads exactly what the middleware writes.
func writeRequestLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requests.log")
	rl, err := middleware.NewRequestLogger(zaptest.NewLogger(t), middleware.LogConfig{File: true, LogFilePath: path, Format: "json"})
	require.NoError(t, err)

	app := fiber.New()
	app.Use(rl.Handler())
	app.Get("/api/tasks", func(c *fiber.Ctx) error { return c.JSON([]string{}) })
	app.Post("/api/tasks", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusBadRequest) })

	for _, m := range []string{http.MethodGet, http.MethodGet, http.MethodPost} {
		_, err := app.Test(httptest.NewRequest(m, "/api/tasks", nil))
		require.NoError(t, err)
	}
	rl.Close()
	return path
}

func viewer(t *testing.T, path string) *fiber.App {
	h := NewLogController(path, time.UTC, zaptest.NewLogger(t))
	app := fiber.New()
	app.Get("/api/logs", h.GetLogs)
	app.Get("/api/logs/stats", h.GetLogStats)
	return app
}

func getJSON(t *testing.T, app *fiber.App, url string, out any) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestGetLogsGroupsRequests(t *testing.T) {
	app := viewer(t, writeRequestLog(t))

	var out LogsResponse
	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/logs", &out))
	assert.Equal(t, 3, out.TotalLogs)
	require.Len(t, out.Groups, 2)
	assert.Equal(t, "GET", out.Groups[0].Method)
	assert.Equal(t, 2, out.Groups[0].Count)
	assert.Equal(t, 1.0, out.Groups[0].SuccessRate)
	assert.Equal(t, 0.0, out.Groups[1].SuccessRate)

	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/logs?method=post", &out))
	require.Len(t, out.Groups, 1)
	assert.Equal(t, http.StatusBadRequest, out.Groups[0].Logs[0].Status)
}

func TestGetLogStats(t *testing.T) {
	app := viewer(t, writeRequestLog(t))

	var out struct {
		Total       int            `json:"total_requests"`
		Errors      int            `json:"error_requests"`
		MethodStats map[string]int `json:"method_stats"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/logs/stats", &out))
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, 1, out.Errors)
	assert.Equal(t, map[string]int{"GET": 2, "POST": 1}, out.MethodStats)
}

func TestLogsWindow(t *testing.T) {
	app := viewer(t, writeRequestLog(t))

	var out LogsResponse
	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/logs?date_to=2001-01-01", &out))
	assert.Zero(t, out.TotalLogs)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, app, "/api/logs?date_from=yesterday", nil))
}

func TestLogsMissingFile(t *testing.T) {
	app := viewer(t, filepath.Join(t.TempDir(), "none.log"))

	var out LogsResponse
	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/logs", &out))
	assert.Zero(t, out.TotalLogs)
	assert.Empty(t, out.Groups)
}
