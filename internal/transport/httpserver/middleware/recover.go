package middleware

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"learning-platform-service/internal/transport/httpserver/dto"
)

// Recover turns a handler panic into a 500 carrying the request id.
func Recover(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			rid, _ := c.Locals("requestid").(string)
			logger.Error("handler panicked",
				zap.Any("panic", r),
				zap.String("request_id", rid),
				zap.String("route", c.Method()+" "+c.Path()),
				zap.ByteString("stack", debug.Stack()),
			)

			err = c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error:   "internal server error",
				Code:    "PANIC",
				Details: fiber.Map{"request_id": rid},
			})
		}()

		return c.Next()
	}
}
