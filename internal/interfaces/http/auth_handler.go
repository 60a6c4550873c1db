package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/geststock/internal/application/auth"
	"github.com/jhoicas/geststock/internal/application/dto"
	"github.com/jhoicas/geststock/internal/application/state"
	"github.com/jhoicas/geststock/internal/domain"
)

// AuthHandler maneja login, logout y consulta de sesión.
type AuthHandler struct {
	uc    *auth.UseCase
	store *state.Store
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase, store *state.Store) *AuthHandler {
	return &AuthHandler{uc: uc, store: store}
}

// Login autentica y devuelve token + sesión. 401 con credenciales malas o
// cuenta inactiva; la sesión previa no cambia en ese caso.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "Identifiants incorrects ou utilisateur inactif"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Logout limpia la sesión incondicionalmente.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Session devuelve la sesión vigente, o 204 si nadie inició sesión.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sess, err := h.store.ValidSession()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if sess == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(dto.SessionResponse{Username: sess.Username, Role: sess.Role})
}
