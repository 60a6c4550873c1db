package auth

import (
	"github.com/jhoicas/geststock/internal/application/dto"
	"github.com/jhoicas/geststock/internal/application/state"
	"github.com/jhoicas/geststock/pkg/token"
)

// JWTConfig configuración para la emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación de la capa HTTP: login contra el
// State Store y emisión del bearer token que autentica el resto de llamadas.
type UseCase struct {
	store  *state.Store
	jwtCfg JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(store *state.Store, jwtCfg JWTConfig) *UseCase {
	return &UseCase{store: store, jwtCfg: jwtCfg}
}

// Login delega la autenticación en el Store (que fija y persiste la sesión) y
// al éxito emite el token para las llamadas siguientes.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	sess, err := uc.store.Login(in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	tok, err := token.Generate(uc.jwtCfg.Secret, sess.Username, sess.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: tok,
		User:  dto.SessionResponse{Username: sess.Username, Role: sess.Role},
	}, nil
}

// Logout limpia la sesión del Store.
func (uc *UseCase) Logout() error {
	return uc.store.Logout()
}
