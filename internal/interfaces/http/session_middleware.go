package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/billed-app/billed-api/internal/application/dto"
	"github.com/billed-app/billed-api/internal/domain/session"
	"github.com/billed-app/billed-api/pkg/jwt"
)

// LocalIdentity key de la identidad de sesión en c.Locals.
const LocalIdentity = "session_identity"

// SessionMiddleware valida el Bearer Token y deja la identidad de sesión
// (tipo de usuario + email) en c.Locals. La emisión del token es asunto del
// servicio de login, fuera de este módulo: aquí solo se consume.
func SessionMiddleware(jwtSecret string) fiber.Handler {
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
		userType, email, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalIdentity, session.Identity{
			Type:  session.UserType(userType),
			Email: email,
		})
		return c.Next()
	}
}

// GetIdentity devuelve la identidad de sesión del contexto (después del middleware).
func GetIdentity(c *fiber.Ctx) session.Identity {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return session.Identity{}
	}
	id, _ := v.(session.Identity)
	return id
}
