package state

import (
	"github.com/jhoicas/geststock/internal/domain"
	"github.com/jhoicas/geststock/internal/domain/entity"
)

// Login autentica con comparación verbatim de username y password contra una
// cuenta activa (el almacenamiento en claro es el contrato documentado de la
// aplicación). Si hubiese usernames duplicados gana la primera coincidencia
// por orden de iteración. En fallo, la sesión previa queda intacta.
func (s *Store) Login(username, password string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var match *entity.User
	for i := range s.st.Users {
		u := &s.st.Users[i]
		if u.Username == username && u.Password == password && u.IsActive() {
			match = u
			break
		}
	}
	if match == nil {
		s.log.Debug().Str("username", username).Msg("intento de login fallido")
		return nil, domain.ErrInvalidCredentials
	}

	s.st.CurrentUser = &entity.Session{Username: match.Username, Role: match.Role}
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	sess := *s.st.CurrentUser
	s.log.Info().Str("username", sess.Username).Str("role", sess.Role).Msg("sesión iniciada")
	return &sess, nil
}

// Logout limpia la sesión incondicionalmente y persiste.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.CurrentUser = nil
	return s.persistLocked()
}

// ValidSession devuelve la sesión solo si su username sigue resolviendo a una
// cuenta activa. Una sesión obsoleta (la cuenta fue borrada o desactivada por
// debajo, por ejemplo por un import que reemplazó el estado) se limpia aquí
// mismo y se persiste la limpieza.
func (s *Store) ValidSession() (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.CurrentUser == nil {
		return nil, nil
	}
	u := s.st.FindUserByUsername(s.st.CurrentUser.Username)
	if u == nil || !u.IsActive() {
		s.log.Warn().Str("username", s.st.CurrentUser.Username).Msg("sesión obsoleta, cerrando")
		s.st.CurrentUser = nil
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	sess := *s.st.CurrentUser
	return &sess, nil
}
