package domain

import "errors"

// Errores de dominio (sin dependencias externas). Cada mutación del State
// Store devuelve uno de estos valores; ninguno escapa sin tipar.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicateUsername  = errors.New("el nombre de usuario ya existe")
	ErrInvalidCredentials = errors.New("credenciales incorrectas o usuario inactivo")
	ErrForbidden          = errors.New("acceso denegado")
	ErrSelfModification   = errors.New("no se puede modificar la propia cuenta")
	ErrInvalidImport      = errors.New("archivo importado inválido")
)
