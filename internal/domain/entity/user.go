package entity

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Estados de cuenta.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// User representa una cuenta del directorio local.
//
// Password se guarda y se compara en texto plano: es el contrato documentado
// de la aplicación (demostración local, sin servidor). Username es
// inmutable tras la creación y único (comparación sensible a mayúsculas).
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// IsActive indica si la cuenta puede iniciar sesión.
func (u User) IsActive() bool {
	return u.Status == StatusActive
}

// ToggledStatus devuelve el estado inverso Active<->Inactive.
func (u User) ToggledStatus() string {
	if u.Status == StatusActive {
		return StatusInactive
	}
	return StatusActive
}
