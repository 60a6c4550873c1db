package repository

import "github.com/jhoicas/geststock/internal/domain/entity"

// StateRepository define el puerto de persistencia del agregado completo (DIP).
//
// Load nunca devuelve un estado inválido: si el registro está ausente o
// corrupto, el adaptador lo repone con los valores de arranque y lo persiste.
// El error de Load solo refleja fallos de E/S al escribir esa reposición.
// Save reemplaza el registro entero de forma atómica.
type StateRepository interface {
	Load() (*entity.AppState, error)
	Save(state *entity.AppState) error
}
