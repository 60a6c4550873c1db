package entity

// Session es la proyección del usuario autenticado, o nil si nadie inició
// sesión. No es una referencia viva al User: puede quedar obsoleta si la
// cuenta desaparece (el gate de autorización la invalida al detectarlo).
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// AppState es la raíz del agregado completo que se persiste bajo una sola
// clave. El State Store es su único dueño; el resto de componentes reciben
// copias.
type AppState struct {
	Products    []Product `json:"products"`
	Users       []User    `json:"users"`
	CurrentUser *Session  `json:"currentUser"`
}

// Clone devuelve una copia profunda del estado (slices nuevos, sesión nueva).
func (s *AppState) Clone() *AppState {
	out := &AppState{
		Products: append([]Product(nil), s.Products...),
		Users:    append([]User(nil), s.Users...),
	}
	if s.CurrentUser != nil {
		cu := *s.CurrentUser
		out.CurrentUser = &cu
	}
	return out
}

// NextProductID calcula el siguiente ID de producto: máximo existente + 1,
// o 1 si no hay productos.
func (s *AppState) NextProductID() int64 {
	var max int64
	for _, p := range s.Products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// FindUserByUsername devuelve el primer usuario con ese username (orden de
// iteración), o nil. El modelo no impide duplicados históricos.
func (s *AppState) FindUserByUsername(username string) *User {
	for i := range s.Users {
		if s.Users[i].Username == username {
			return &s.Users[i]
		}
	}
	return nil
}

// DefaultState construye el estado de arranque: sin productos, sin sesión y
// las dos cuentas de prueba (un admin y un usuario estándar).
func DefaultState(adminID, userID string) *AppState {
	return &AppState{
		Products: []Product{},
		Users: []User{
			{ID: adminID, Username: "admin", Password: "admin123", Role: RoleAdmin, Status: StatusActive},
			{ID: userID, Username: "user", Password: "user123", Role: RoleUser, Status: StatusActive},
		},
		CurrentUser: nil,
	}
}
