package transcode

import (
	"fmt"
	"time"
)

// Marca de tiempo local al estilo francés: DD-MM-YYYY_HH-MM-SS.
const timestampLayout = "02-01-2006_15-04-05"

// TabularFilename nombre del archivo CSV descargado.
func TabularFilename(t time.Time) string {
	return fmt.Sprintf("stock_export_%s.csv", t.Format(timestampLayout))
}

// StructuredFilename nombre del archivo de respaldo JSON.
func StructuredFilename(t time.Time) string {
	return fmt.Sprintf("sauvegarde_stock_%s.json", t.Format(timestampLayout))
}
