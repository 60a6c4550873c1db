package transcode

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/geststock/internal/domain"
	"github.com/jhoicas/geststock/internal/domain/entity"
)

// enrichedProduct es la vista de export de un producto: los campos propios
// más la clasificación derivada. Solo existe en el archivo, nunca se guarda.
type enrichedProduct struct {
	entity.Product
	EtatStock string `json:"etatStock"`
	Statut    string `json:"statut"`
}

type structuredDoc struct {
	Products    []enrichedProduct `json:"products"`
	Users       []entity.User     `json:"users"`
	CurrentUser *entity.Session   `json:"currentUser"`
}

// ExportStructured produce el respaldo JSON indentado (2 espacios) del estado
// completo, con cada producto enriquecido con etatStock (cinco niveles) y
// statut (umbral <= 5). No muta el estado recibido.
func ExportStructured(st *entity.AppState) ([]byte, error) {
	doc := structuredDoc{
		Products:    make([]enrichedProduct, 0, len(st.Products)),
		Users:       st.Users,
		CurrentUser: st.CurrentUser,
	}
	for _, p := range st.Products {
		doc.Products = append(doc.Products, enrichedProduct{
			Product:   p,
			EtatStock: p.StockLevel(),
			Statut:    p.Statut(),
		})
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export json: %w", err)
	}
	return out, nil
}

// ImportStructured decodifica un respaldo. Acepta el archivo solo si el JSON
// es válido y trae las dos secuencias de nivel superior, products y users
// (chequeo de existencia, sin revalidar campo a campo).
// Los campos derivados etatStock/statut se descartan al
// decodificar. No toca ningún estado: devolver el AppState es responsabilidad
// del llamador vía ReplaceState.
func ImportStructured(data []byte) (*entity.AppState, error) {
	var probe struct {
		Products json.RawMessage `json:"products"`
		Users    json.RawMessage `json:"users"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	if isAbsent(probe.Products) || isAbsent(probe.Users) {
		return nil, fmt.Errorf("%w: faltan products o users", domain.ErrInvalidImport)
	}

	var st entity.AppState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	if st.Products == nil {
		st.Products = []entity.Product{}
	}
	if st.Users == nil {
		st.Users = []entity.User{}
	}
	return &st, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
