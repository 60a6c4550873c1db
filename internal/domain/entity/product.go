package entity

import "github.com/shopspring/decimal"

func init() {
	// Los exports y el registro persistido esperan precios como números JSON
	// (sin comillas), igual que el resto de campos numéricos.
	decimal.MarshalJSONWithoutQuotes = true
}

// Categorías reconocidas. Category es texto libre: un valor fuera de este
// conjunto no es error de validación, solo pierde el tratamiento visual.
const (
	CategoryElectronique = "Électronique"
	CategoryAlimentaire  = "Alimentaire"
	CategoryVetements    = "Vêtements"
	CategoryMeubles      = "Meubles"
	CategoryAutre        = "Autre"
)

// Umbral de stock bajo del dashboard y del export JSON (cantidad <= 5).
// El export CSV usa su propio umbral estricto (< 5); ver transcode.
const LowStockThreshold = 5

// Etiquetas de estado de stock (en francés: forman parte del formato exportado).
const (
	StatutStockBas = "Stock Bas"
	StatutEnStock  = "En Stock"
)

// Niveles de stock del export JSON (campo etatStock, solo de lectura).
const (
	StockRupture   = "Rupture"   // cantidad = 0
	StockCritique  = "Critique"  // 1–5
	StockFaible    = "Faible"    // 6–15
	StockNormal    = "Normal"    // 16–50
	StockExcellent = "Excellent" // > 50
)

// Product representa un producto del inventario. ID lo asigna el State Store
// (máximo existente + 1) y es inmutable una vez asignado.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// LowStock indica si el producto cuenta como stock bajo para el dashboard
// (cantidad <= 5). Derivado, nunca persistido.
func (p Product) LowStock() bool {
	return p.Quantity <= LowStockThreshold
}

// Statut devuelve la etiqueta "Stock Bas" / "En Stock" con el umbral <= 5
// (dashboard y export JSON).
func (p Product) Statut() string {
	if p.LowStock() {
		return StatutStockBas
	}
	return StatutEnStock
}

// StockLevel clasifica la cantidad en los cinco niveles del export JSON.
func (p Product) StockLevel() string {
	switch {
	case p.Quantity == 0:
		return StockRupture
	case p.Quantity <= 5:
		return StockCritique
	case p.Quantity <= 15:
		return StockFaible
	case p.Quantity <= 50:
		return StockNormal
	default:
		return StockExcellent
	}
}
