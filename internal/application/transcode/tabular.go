// Package transcode convierte el estado hacia/desde sus representaciones
// externas: la tabla CSV para hojas de cálculo (con pérdida, solo productos)
// y el respaldo JSON estructurado con vuelta completa (export + import).
package transcode

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/geststock/internal/domain/entity"
)

// Cabecera fija del CSV, separada por punto y coma.
const tabularHeader = "ID;Nom;Quantité;Prix;Catégorie;Statut"

// Umbral de la columna Statut del CSV: estrictamente < 5, a diferencia del
// <= 5 del dashboard y del export JSON. La discrepancia forma parte del
// formato exportado y se conserva tal cual (un producto con cantidad
// exactamente 5 sale "En Stock" aquí y "Stock Bas" en el JSON).
const tabularLowStockLimit = 5

// ExportTabular produce la tabla separada por ";": una fila por producto,
// precio con dos decimales, campos de texto entre comillas y el flujo
// precedido por el BOM UTF-8 para que las hojas de cálculo interpreten bien
// los acentos.
func ExportTabular(products []entity.Product) ([]byte, error) {
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, unicode.UTF8BOM.NewEncoder())

	if _, err := fmt.Fprint(w, tabularHeader); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	for _, p := range products {
		statut := entity.StatutEnStock
		if p.Quantity < tabularLowStockLimit {
			statut = entity.StatutStockBas
		}
		// Cada fila va precedida por el salto de línea: sin filas el
		// archivo es solo la cabecera, y nunca hay salto final.
		line := fmt.Sprintf("\n"+`%d;"%s";%d;%s;"%s";"%s"`, p.ID, p.Name, p.Quantity, p.Price.StringFixed(2), p.Category, statut)
		if _, err := fmt.Fprint(w, line); err != nil {
			return nil, fmt.Errorf("export csv: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	return buf.Bytes(), nil
}
