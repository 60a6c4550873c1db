package localstore

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/geststock/internal/domain/entity"
	"github.com/jhoicas/geststock/pkg/logger"
)

// Clave fija del registro persistido (equivalente al "appData" del navegador).
const stateKey = "appData"

// StateRepository implementa repository.StateRepository sobre FileKV.
//
// La corrupción se resuelve aquí dentro: un registro ilegible o sin la
// secuencia de usuarios se registra en el log y se repone con el estado de
// arranque; el llamador siempre recibe un estado válido.
type StateRepository struct {
	kv  *FileKV
	log *logger.Logger
}

// NewStateRepository construye el adaptador sobre la ruta del archivo.
func NewStateRepository(path string, log *logger.Logger) *StateRepository {
	return &StateRepository{kv: NewFileKV(path), log: log}
}

// Load lee el registro persistido. Ausente o corrupto -> estado de arranque,
// persistido inmediatamente. El error solo refleja fallos de escritura de esa
// reposición; el estado devuelto es válido en todos los casos.
func (r *StateRepository) Load() (*entity.AppState, error) {
	raw, ok, err := r.kv.Get(stateKey)
	if err != nil {
		r.log.Warn().Err(err).Msg("registro ilegible, reinicializando datos")
	} else if ok {
		st, perr := decodeState(raw)
		if perr != nil {
			r.log.Warn().Err(perr).Msg("registro corrupto, reinicializando datos")
		} else {
			if migrated := normalize(st); migrated {
				if err := r.Save(st); err != nil {
					return st, err
				}
			}
			return st, nil
		}
	}

	r.log.Info().Msg("creando datos iniciales")
	st := entity.DefaultState(uuid.NewString(), uuid.NewString())
	if err := r.Save(st); err != nil {
		return st, err
	}
	return st, nil
}

// Save codifica el estado completo y lo escribe bajo la clave fija.
func (r *StateRepository) Save(state *entity.AppState) error {
	out, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("codificar estado: %w", err)
	}
	if err := r.kv.Set(stateKey, out); err != nil {
		return fmt.Errorf("guardar estado: %w", err)
	}
	return nil
}

// decodeState valida lo mínimo que exige el contrato: JSON bien formado con
// una secuencia de usuarios no vacía.
func decodeState(raw []byte) (*entity.AppState, error) {
	var st entity.AppState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}
	if len(st.Users) == 0 {
		return nil, fmt.Errorf("registro sin usuarios")
	}
	return &st, nil
}

// normalize aplica las migraciones de carga: productos nunca nil y cada
// usuario con un id estable (los registros antiguos y los archivos importados
// direccionaban usuarios por posición). Devuelve true si hubo cambios que
// persistir.
func normalize(st *entity.AppState) bool {
	changed := false
	if st.Products == nil {
		st.Products = []entity.Product{}
		changed = true
	}
	for i := range st.Users {
		if st.Users[i].ID == "" {
			st.Users[i].ID = uuid.NewString()
			changed = true
		}
	}
	return changed
}
