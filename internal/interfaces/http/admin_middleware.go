package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/geststock/internal/application/auth"
	"github.com/jhoicas/geststock/internal/application/dto"
	"github.com/jhoicas/geststock/internal/domain"
)

// RequireAdmin devuelve un middleware Fiber que corta con 403 si la sesión
// vigente del Store no es de un admin activo. Debe usarse DESPUÉS de
// AuthMiddleware: el token solo autentica la petición, la autorización la
// decide el gate contra el Store.
func RequireAdmin(gate *auth.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := gate.RequireAdmin(); err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Accès refusé - Droits administrateur requis"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.Next()
	}
}
