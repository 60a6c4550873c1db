package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/geststock/internal/application/dto"
	"github.com/jhoicas/geststock/internal/application/state"
)

// DashboardHandler entrega las métricas del tablero.
type DashboardHandler struct {
	store *state.Store
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(store *state.Store) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// Summary devuelve totales y productos en stock bajo, con el aviso agrupado.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	m := h.store.Metrics()
	low := dto.ToProductResponses(m.LowStockProducts)
	return c.JSON(dto.DashboardResponse{
		TotalProducts:    m.TotalProducts,
		TotalQuantity:    m.TotalQuantity,
		LowStock:         len(low),
		LowStockProducts: low,
		Alert:            dto.LowStockAlert(low),
	})
}
