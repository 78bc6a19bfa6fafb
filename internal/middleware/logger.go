package middleware

import (
	"time"

	"github.com/bilgisen/feedharvest/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// LoggerConfig defines the config for the logger middleware
type LoggerConfig struct {
	// Next skips the middleware when it returns true.
	Next func(c *fiber.Ctx) bool

	// Logger defaults to the global logger.
	Logger *zerolog.Logger
}

// NewLogger logs one line per request; 5xx responses are logged at error
// level, 4xx at warn.
func NewLogger(config ...LoggerConfig) fiber.Handler {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Get()
	}

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()

		var event *zerolog.Event
		switch {
		case status >= 500 || err != nil:
			event = cfg.Logger.Error()
		case status >= 400:
			event = cfg.Logger.Warn()
		default:
			event = cfg.Logger.Info()
		}

		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Str("ip", c.IP()).
			Dur("latency", time.Since(start)).
			Err(err).
			Msg("request")

		return err
	}
}

// RequestLogger skips health checks to keep probe noise out of the logs.
func RequestLogger() fiber.Handler {
	return NewLogger(LoggerConfig{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	})
}
