// Package auth contiene el gate de sesión/autorización y el caso de uso de
// login de la capa HTTP.
package auth

import (
	"github.com/jhoicas/geststock/internal/application/state"
	"github.com/jhoicas/geststock/internal/domain"
	"github.com/jhoicas/geststock/internal/domain/entity"
)

// Gate decide, a partir de la sesión vigente del Store, si una operación con
// privilegio elevado está permitida.
type Gate struct {
	store *state.Store
}

// NewGate construye el gate.
func NewGate(store *state.Store) *Gate {
	return &Gate{store: store}
}

// RequireAdmin exige una sesión vigente con rol admin. La validación pasa por
// ValidSession, de modo que una sesión cuyo usuario ya no resuelve a una
// cuenta activa se invalida aquí mismo antes de decidir.
func (g *Gate) RequireAdmin() (*entity.Session, error) {
	sess, err := g.store.ValidSession()
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return sess, nil
}
