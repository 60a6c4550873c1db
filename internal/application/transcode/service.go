package transcode

import (
	"github.com/jhoicas/geststock/internal/application/state"
)

// Service liga el transcodificador al State Store: lee instantáneas para los
// exports y entrega el import vía ReplaceState, sin saltarse nunca las
// invariantes del Store.
type Service struct {
	store *state.Store
}

// NewService construye el servicio.
func NewService(store *state.Store) *Service {
	return &Service{store: store}
}

// ExportTabular exporta los productos actuales como CSV.
func (s *Service) ExportTabular() ([]byte, error) {
	return ExportTabular(s.store.ListProducts())
}

// ExportStructured exporta el estado completo como respaldo JSON enriquecido.
func (s *Service) ExportStructured() ([]byte, error) {
	return ExportStructured(s.store.Snapshot())
}

// ImportStructured decodifica un respaldo y, si es aceptable, reemplaza el
// estado entero y lo persiste. Con archivo inválido el estado vigente queda
// intacto.
func (s *Service) ImportStructured(data []byte) error {
	st, err := ImportStructured(data)
	if err != nil {
		return err
	}
	return s.store.ReplaceState(st)
}
