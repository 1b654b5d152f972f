package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"learning-platform-service/internal/domain"
	"learning-platform-service/internal/transport/httpserver/dto"
)

const authLocalsKey = "auth"

// Auth resolves an optional Bearer token into a domain.AuthState.
// Missing or invalid tokens leave the request anonymous; handlers decide what needs a user.
func Auth(provider domain.AuthProvider, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := domain.Anonymous()

		if token := bearerToken(c.Get(fiber.HeaderAuthorization)); token != "" {
			resolved, err := provider.Authenticate(c.UserContext(), token)
			if err != nil {
				logger.Debug("ignoring invalid bearer token",
					zap.String("path", c.Path()),
					zap.Error(err),
				)
			} else {
				state = resolved
			}
		}

		c.Locals(authLocalsKey, state)

		return c.Next()
	}
}

// AuthFrom returns the auth state stored by Auth, or the anonymous state.
func AuthFrom(c *fiber.Ctx) domain.AuthState {
	if state, ok := c.Locals(authLocalsKey).(domain.AuthState); ok {
		return state
	}
	return domain.Anonymous()
}

// RequireRole rejects requests whose user does not have role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := AuthFrom(c)
		if !auth.IsAuthenticated || auth.User == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "authentication required",
				Code:  "UNAUTHENTICATED",
			})
		}
		if auth.User.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: "insufficient role",
				Code:  "FORBIDDEN",
			})
		}

		return c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
