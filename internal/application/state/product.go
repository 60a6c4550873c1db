package state

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/geststock/internal/domain"
	"github.com/jhoicas/geststock/internal/domain/entity"
)

// ProductInput datos de guardado de producto. ID nil (o 0) significa alta;
// un ID existente significa modificación in situ conservando el id.
type ProductInput struct {
	ID       int64
	Name     string
	Quantity int
	Price    decimal.Decimal
	Category string
}

// SaveProduct valida y aplica un alta o modificación de producto.
//
// Reglas: nombre no vacío, cantidad entera >= 0, precio >= 0. Si el ID viene
// informado y coincide con un producto existente se reemplazan sus campos;
// si no, se asigna id nuevo (máximo + 1, o 1 sin productos) y se agrega al
// final. Persiste al éxito y devuelve el producto resultante.
func (s *Store) SaveProduct(in ProductInput) (*entity.Product, error) {
	if strings.TrimSpace(in.Name) == "" || in.Quantity < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := entity.Product{
		ID:       in.ID,
		Name:     in.Name,
		Quantity: in.Quantity,
		Price:    in.Price,
		Category: in.Category,
	}

	idx := -1
	if in.ID != 0 {
		for i := range s.st.Products {
			if s.st.Products[i].ID == in.ID {
				idx = i
				break
			}
		}
	}
	if idx >= 0 {
		s.st.Products[idx] = p
	} else {
		p.ID = s.st.NextProductID()
		s.st.Products = append(s.st.Products, p)
	}

	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	out := p
	s.log.Info().Int64("id", out.ID).Str("name", out.Name).Msg("producto guardado")
	return &out, nil
}

// DeleteProduct elimina el producto con ese id y lo devuelve para el mensaje
// de confirmación. Sin coincidencia no muta nada y devuelve ErrNotFound.
func (s *Store) DeleteProduct(id int64) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.st.Products {
		if s.st.Products[i].ID != id {
			continue
		}
		removed := s.st.Products[i]
		s.st.Products = append(s.st.Products[:i], s.st.Products[i+1:]...)
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
		s.log.Info().Int64("id", removed.ID).Str("name", removed.Name).Msg("producto eliminado")
		return &removed, nil
	}
	return nil, domain.ErrNotFound
}
