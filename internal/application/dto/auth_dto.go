package dto

// LoginRequest credenciales de entrada.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse proyección de la sesión vigente.
type SessionResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse token de la capa HTTP más la sesión fijada en el Store.
type LoginResponse struct {
	Token string          `json:"token"`
	User  SessionResponse `json:"user"`
}
