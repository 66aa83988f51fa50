package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Prestamos-api/internal/application/dto"
	"github.com/jhoicas/Prestamos-api/pkg/jwt"
)

// Locals keys para UserID y AccessLevel en Fiber.
const (
	LocalUserID      = "user_id"
	LocalAccessLevel = "access_level"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y AccessLevel a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, accessLevel, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalAccessLevel, accessLevel)
		return c.Next()
	}
}

// RequireAccessLevel exige que el nivel de acceso del token sea uno de los
// indicados. Se encadena después de AuthMiddleware.
func RequireAccessLevel(levels ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current := GetAccessLevel(c)
		if current == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
		}
		for _, level := range levels {
			if current == level {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "nivel de acceso insuficiente"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetAccessLevel devuelve el AccessLevel del contexto (después del middleware de auth).
func GetAccessLevel(c *fiber.Ctx) string {
	v := c.Locals(LocalAccessLevel)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
