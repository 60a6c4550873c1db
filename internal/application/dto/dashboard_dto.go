package dto

import (
	"fmt"
	"strings"
)

// DashboardResponse métricas del tablero. Alert trae el aviso agrupado de
// stock bajo (cadena vacía si no hay productos bajos).
type DashboardResponse struct {
	TotalProducts    int               `json:"totalProducts"`
	TotalQuantity    int               `json:"totalQuantity"`
	LowStock         int               `json:"lowStock"`
	LowStockProducts []ProductResponse `json:"lowStockProducts"`
	Alert            string            `json:"alert,omitempty"`
}

// LowStockAlert arma el mensaje agrupado del aviso de stock bajo:
// `⚠️ Stock bas détecté pour N produit(s): "X" (2), "Y" (1)`.
func LowStockAlert(products []ProductResponse) string {
	if len(products) == 0 {
		return ""
	}
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, fmt.Sprintf("%q (%d)", p.Name, p.Quantity))
	}
	return fmt.Sprintf("⚠️ Stock bas détecté pour %d produit(s): %s", len(products), strings.Join(names, ", "))
}
