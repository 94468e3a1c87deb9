package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/tu-usuario/inventario-hosteria/internal/application/dto"
	"github.com/tu-usuario/inventario-hosteria/pkg/config"
)

// sessionUserKey clave del uid dentro de la sesión de servidor.
const sessionUserKey = "user_id"

// NewSessionStore construye el store de sesiones con cookie HTTP-only.
// Secure solo en producción para no romper el desarrollo local sin TLS.
func NewSessionStore(cfg config.SessionConfig) *session.Store {
	return session.New(session.Config{
		Expiration:     time.Duration(cfg.ExpirationHours) * time.Hour,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.CookieSecure,
		CookieSameSite: "Lax",
	})
}

// RequireSession middleware que exige sesión abierta. Deja el uid en Locals
// para los handlers; sin sesión responde 401 sin tocar el almacén.
func RequireSession(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
		}
		uid, _ := sess.Get(sessionUserKey).(string)
		if uid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
		}
		c.Locals(sessionUserKey, uid)
		return c.Next()
	}
}

// GetUserID devuelve el uid de la sesión validada por RequireSession.
func GetUserID(c *fiber.Ctx) string {
	uid, _ := c.Locals(sessionUserKey).(string)
	return uid
}
