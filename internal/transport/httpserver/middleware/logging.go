package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes one access log entry per request. Missing content (404)
// is routine on a catalog site and is logged at debug level.
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()

		fields := make([]zap.Field, 0, 8)
		fields = append(fields,
			zap.String("route", c.Method()+" "+c.OriginalURL()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.IP()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}
		if auth := AuthFrom(c); auth.User != nil {
			fields = append(fields, zap.String("user_id", auth.User.ID))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		logger.Log(accessLevel(status), "http request", fields...)

		return err
	}
}

func accessLevel(status int) zapcore.Level {
	switch {
	case status >= fiber.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status == fiber.StatusNotFound:
		return zapcore.DebugLevel
	case status >= fiber.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.DebugLevel
	}
}
