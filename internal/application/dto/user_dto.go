package dto

import "github.com/jhoicas/geststock/internal/domain/entity"

// CreateUserRequest entrada para crear una cuenta.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserResponse salida de una cuenta. La contraseña nunca viaja en respuestas.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// ToUserResponse proyecta la entidad a su DTO de salida.
func ToUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Status:   u.Status,
	}
}

// ToUserResponses proyecta el directorio completo.
func ToUserResponses(users []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
