package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/geststock/internal/application/dto"
	"github.com/jhoicas/geststock/internal/application/state"
	"github.com/jhoicas/geststock/internal/domain"
)

// ProductHandler maneja el CRUD de productos (protegido).
type ProductHandler struct {
	store *state.Store
}

// NewProductHandler construye el handler.
func NewProductHandler(store *state.Store) *ProductHandler {
	return &ProductHandler{store: store}
}

// List lista productos, con filtro opcional ?q= sobre nombre o cantidad.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products := h.store.SearchProducts(c.Query("q"))
	return c.JSON(dto.ToProductResponses(products))
}

// Create da de alta un producto; el Store asigna el id.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	return h.save(c, 0)
}

// Update modifica in situ el producto de la ruta.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	return h.save(c, id)
}

func (h *ProductHandler) save(c *fiber.Ctx, id int64) error {
	var in dto.SaveProductRequest
	if err := c.BodyParser(&in); err != nil {
		// Tipo incorrecto (cantidad no numérica, etc.) es error de
		// validación, no un fallo interno.
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Champs invalides"})
	}
	if in.Quantity == nil || in.Price == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Champs invalides"})
	}
	if id == 0 {
		id = in.ID
	}
	out, err := h.store.SaveProduct(state.ProductInput{
		ID:       id,
		Name:     in.Name,
		Quantity: *in.Quantity,
		Price:    *in.Price,
		Category: in.Category,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Champs invalides"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	status := fiber.StatusOK
	if c.Method() == fiber.MethodPost {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.ToProductResponse(*out))
}

// Delete elimina el producto y devuelve el registro eliminado para el
// mensaje de confirmación. La confirmación previa es asunto del front-end.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	removed, err := h.store.DeleteProduct(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToProductResponse(*removed))
}
