package middleware

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig holds configuration for the logging middleware
type LogConfig struct {
	// Write through the application logger
	Console bool
	// Also append entries to LogFilePath
	File        bool
	LogFilePath string
	// File encoding: "json" or "text"
	Format string
	// Include request body for non-GET requests
	IncludeBody bool
	// Skip logging for specific paths
	SkipPaths []string
}

// LogData contains all the information that will be logged
type LogData struct {
	Timestamp     time.Time
	Method        string
	Path          string
	URL           string
	Status        int
	Latency       time.Duration
	IP            string
	UserAgent     string
	RequestID     string
	RequestBody   interface{}
	Error         string
	ContentLength int64
}

func (d LogData) fields() []zap.Field {
	fields := []zap.Field{
		zap.Time("timestamp", d.Timestamp),
		zap.String("method", d.Method),
		zap.String("path", d.Path),
		zap.String("url", d.URL),
		zap.Int("status", d.Status),
		zap.Duration("latency", d.Latency),
		zap.String("ip", d.IP),
		zap.String("user_agent", d.UserAgent),
		zap.Int64("content_length", d.ContentLength),
	}
	if d.RequestID != "" {
		fields = append(fields, zap.String("request_id", d.RequestID))
	}
	if d.RequestBody != nil {
		fields = append(fields, zap.Any("request_body", d.RequestBody))
	}
	if d.Error != "" {
		fields = append(fields, zap.String("error", d.Error))
	}
	return fields
}

// DefaultLogConfig returns a default configuration for the logging middleware
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Console:     true,
		File:        true,
		LogFilePath: "logs/requests.log",
		Format:      "json",
		SkipPaths:   []string{"/health"},
	}
}

// RequestLogger records one entry per request on the application logger
// and, optionally, a dedicated request log file.
type RequestLogger struct {
	cfg    LogConfig
	logger *zap.Logger
	close  func()
}

func NewRequestLogger(base *zap.Logger, cfg LogConfig) (*RequestLogger, error) {
	var cores []zapcore.Core
	if cfg.Console {
		cores = append(cores, base.Core())
	}
	closeFile := func() {}
	if cfg.File {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFilePath), 0755); err != nil {
			return nil, fmt.Errorf("create logs directory: %w", err)
		}
		sink, closer, err := zap.Open(cfg.LogFilePath)
		if err != nil {
			return nil, fmt.Errorf("open request log: %w", err)
		}
		closeFile = closer
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
		encCfg.EncodeDuration = zapcore.MillisDurationEncoder
		var enc zapcore.Encoder
		if cfg.Format == "text" {
			enc = zapcore.NewConsoleEncoder(encCfg)
		} else {
			enc = zapcore.NewJSONEncoder(encCfg)
		}
		cores = append(cores, zapcore.NewCore(enc, sink, zapcore.InfoLevel))
	}

	return &RequestLogger{
		cfg:    cfg,
		logger: zap.New(zapcore.NewTee(cores...)).Named("http"),
		close:  closeFile,
	}, nil
}

// Handler returns the fiber middleware.
func (l *RequestLogger) Handler() fiber.Handler {
	skip := make(map[string]bool, len(l.cfg.SkipPaths))
	for _, p := range l.cfg.SkipPaths {
		skip[p] = true
	}

	return func(c *fiber.Ctx) error {
		if skip[c.Path()] {
			return c.Next()
		}
		start := time.Now()

		var requestBody interface{}
		if l.cfg.IncludeBody && c.Method() != fiber.MethodGet {
			if body := c.Body(); len(body) > 0 {
				var jsonData interface{}
				if err := json.Unmarshal(body, &jsonData); err == nil {
					requestBody = jsonData
				} else {
					requestBody = string(body)
				}
			}
		}

		err := c.Next()
		if err != nil {
			// let the app's error handler settle the status before it is logged
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		// ctx strings alias fasthttp buffers that are reused by the next request
		data := LogData{
			Timestamp:     start,
			Method:        utils.CopyString(c.Method()),
			Path:          utils.CopyString(c.Path()),
			URL:           utils.CopyString(c.OriginalURL()),
			Status:        c.Response().StatusCode(),
			Latency:       time.Since(start),
			IP:            utils.CopyString(c.IP()),
			UserAgent:     utils.CopyString(c.Get(fiber.HeaderUserAgent)),
			RequestID:     utils.CopyString(c.GetRespHeader(fiber.HeaderXRequestID)),
			RequestBody:   requestBody,
			ContentLength: int64(len(c.Response().Body())),
		}
		if err != nil {
			data.Error = err.Error()
		}
		l.log(data)
		return nil
	}
}

func (l *RequestLogger) log(d LogData) {
	switch {
	case d.Status >= fiber.StatusInternalServerError:
		l.logger.Error("request", d.fields()...)
	case d.Status >= fiber.StatusBadRequest:
		l.logger.Warn("request", d.fields()...)
	default:
		l.logger.Info("request", d.fields()...)
	}
}

// Close flushes and closes the request log file.
func (l *RequestLogger) Close() {
	_ = l.logger.Sync()
	l.close()
}
