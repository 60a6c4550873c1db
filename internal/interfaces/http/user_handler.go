package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/geststock/internal/application/dto"
	"github.com/jhoicas/geststock/internal/application/state"
	"github.com/jhoicas/geststock/internal/domain"
)

// UserHandler maneja la administración del directorio de usuarios. Sus rutas
// se registran detrás del middleware RequireAdmin; aquí no se decide
// autorización.
type UserHandler struct {
	store *state.Store
}

// NewUserHandler construye el handler.
func NewUserHandler(store *state.Store) *UserHandler {
	return &UserHandler{store: store}
}

// List lista el directorio.
func (h *UserHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.ToUserResponses(h.store.ListUsers()))
}

// Create da de alta una cuenta nueva.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.store.SaveUser(in.Username, in.Password, in.Role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Tous les champs sont obligatoires"})
		case errors.Is(err, domain.ErrDuplicateUsername):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "Ce nom d'utilisateur existe déjà"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToUserResponse(*out))
}

// ToggleStatus alterna Active/Inactive (nunca sobre uno mismo).
func (h *UserHandler) ToggleStatus(c *fiber.Ctx) error {
	out, err := h.store.ToggleUserStatus(c.Params("id"))
	if err != nil {
		return h.mutationError(c, err, "Vous ne pouvez pas modifier votre propre statut")
	}
	return c.JSON(dto.ToUserResponse(*out))
}

// Delete elimina la cuenta (nunca la propia).
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	out, err := h.store.DeleteUser(c.Params("id"))
	if err != nil {
		return h.mutationError(c, err, "Vous ne pouvez pas supprimer votre propre compte")
	}
	return c.JSON(dto.ToUserResponse(*out))
}

func (h *UserHandler) mutationError(c *fiber.Ctx, err error, selfMsg string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	case errors.Is(err, domain.ErrSelfModification):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SELF_MODIFICATION", Message: selfMsg})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
