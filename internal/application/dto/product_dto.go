package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/geststock/internal/domain/entity"
)

// SaveProductRequest entrada para crear o modificar un producto. Quantity y
// Price van como punteros para distinguir campo ausente de cero; un tipo
// incorrecto en el JSON es error de validación, nunca un pánico.
type SaveProductRequest struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Quantity *int             `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
	Category string           `json:"category"`
}

// ProductResponse salida de un producto con sus campos derivados de lectura.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	Statut        string          `json:"statut"`
	LowStock      bool            `json:"lowStock"`
	CategoryBadge string          `json:"categoryBadge"`
}

// Clases de badge por categoría reconocida (la paleta del dashboard);
// una categoría desconocida cae al tratamiento por defecto.
var categoryBadges = map[string]string{
	entity.CategoryElectronique: "bg-primary",
	entity.CategoryAlimentaire:  "bg-success",
	entity.CategoryVetements:    "bg-warning text-dark",
	entity.CategoryMeubles:      "bg-info text-dark",
	entity.CategoryAutre:        "bg-secondary",
}

const defaultCategoryBadge = "bg-light text-dark"

// CategoryBadge devuelve la clase visual de la categoría.
func CategoryBadge(category string) string {
	if badge, ok := categoryBadges[category]; ok {
		return badge
	}
	return defaultCategoryBadge
}

// ToProductResponse proyecta la entidad a su DTO de salida.
func ToProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Quantity:      p.Quantity,
		Price:         p.Price,
		Category:      p.Category,
		Statut:        p.Statut(),
		LowStock:      p.LowStock(),
		CategoryBadge: CategoryBadge(p.Category),
	}
}

// ToProductResponses proyecta una lista completa.
func ToProductResponses(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}
