package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/access"
	"github.com/jhoicas/rhu-inventory-api/pkg/jwt"
)

// LocalSession es la key de c.Locals donde AuthMiddleware deja la sesión.
const LocalSession = "session"

// Session son los claims del token de la petición en curso.
type Session struct {
	UserID string
	Role   string
	UnitID string
}

// Can reports whether the session's role grants capability.
func (s Session) Can(capability access.Capability) bool {
	return access.Has(s.Role, capability)
}

// AuthMiddleware valida el Bearer Token JWT y guarda la Session en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header is required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		if claims.UserID == "" || claims.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token carries no user or role"})
		}
		c.Locals(LocalSession, Session{UserID: claims.UserID, Role: claims.Role, UnitID: claims.UnitID})
		return c.Next()
	}
}

// RequireCapability corta con 403 si el rol de la sesión no concede capability.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireCapability(capability access.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := GetSession(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no session"})
		}
		if !s.Can(capability) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "role " + s.Role + " lacks " + string(capability),
			})
		}
		return c.Next()
	}
}

// GetSession devuelve la sesión cargada por AuthMiddleware.
func GetSession(c *fiber.Ctx) (Session, bool) {
	s, ok := c.Locals(LocalSession).(Session)
	return s, ok
}

// GetUserID devuelve el UserID de la sesión o "".
func GetUserID(c *fiber.Ctx) string {
	s, _ := GetSession(c)
	return s.UserID
}

// GetRole devuelve el rol de la sesión o "".
func GetRole(c *fiber.Ctx) string {
	s, _ := GetSession(c)
	return s.Role
}
