package state

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/geststock/internal/domain"
	"github.com/jhoicas/geststock/internal/domain/entity"
)

// SaveUser crea una cuenta nueva: username (sin espacios alrededor) y password
// obligatorios, username único con comparación sensible a mayúsculas. La
// cuenta nace activa y con un id estable asignado aquí.
func (s *Store) SaveUser(username, password, role string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	if role != entity.RoleAdmin {
		role = entity.RoleUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st.FindUserByUsername(username) != nil {
		return nil, domain.ErrDuplicateUsername
	}

	u := entity.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: password,
		Role:     role,
		Status:   entity.StatusActive,
	}
	s.st.Users = append(s.st.Users, u)
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	out := u
	s.log.Info().Str("username", out.Username).Str("role", out.Role).Msg("usuario creado")
	return &out, nil
}

// ToggleUserStatus alterna Active<->Inactive para la cuenta con ese id.
// Autoprotección: la cuenta cuyo username coincide con la sesión vigente no
// se puede tocar, se reintente las veces que se reintente.
func (s *Store) ToggleUserStatus(id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUserLocked(id)
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if s.isCurrentLocked(u) {
		return nil, domain.ErrSelfModification
	}

	u.Status = u.ToggledStatus()
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	out := *u
	s.log.Info().Str("username", out.Username).Str("status", out.Status).Msg("estado de usuario actualizado")
	return &out, nil
}

// DeleteUser elimina la cuenta con ese id, con la misma autoprotección que
// ToggleUserStatus.
func (s *Store) DeleteUser(id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.st.Users {
		if s.st.Users[i].ID != id {
			continue
		}
		if s.isCurrentLocked(&s.st.Users[i]) {
			return nil, domain.ErrSelfModification
		}
		removed := s.st.Users[i]
		s.st.Users = append(s.st.Users[:i], s.st.Users[i+1:]...)
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
		s.log.Info().Str("username", removed.Username).Msg("usuario eliminado")
		return &removed, nil
	}
	return nil, domain.ErrNotFound
}

func (s *Store) findUserLocked(id string) *entity.User {
	for i := range s.st.Users {
		if s.st.Users[i].ID == id {
			return &s.st.Users[i]
		}
	}
	return nil
}

func (s *Store) isCurrentLocked(u *entity.User) bool {
	return s.st.CurrentUser != nil && s.st.CurrentUser.Username == u.Username
}
