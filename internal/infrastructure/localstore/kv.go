// Package localstore implementa la persistencia local: un almacén clave-valor
// síncrono respaldado por un único archivo JSON, y sobre él el adaptador del
// agregado de la aplicación.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileKV es un almacén clave-valor de cadenas sobre un archivo JSON. Las
// escrituras reemplazan el archivo completo de forma atómica (archivo
// temporal + rename), por lo que nunca queda un registro a medio escribir.
type FileKV struct {
	path string
}

// NewFileKV crea el almacén sobre la ruta indicada. No toca el disco hasta
// la primera operación.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

// Get devuelve el valor crudo bajo la clave, con ok=false si la clave o el
// archivo no existen.
func (kv *FileKV) Get(key string) ([]byte, bool, error) {
	raw, err := os.ReadFile(kv.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("leer %s: %w", kv.path, err)
	}
	var records map[string]json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false, fmt.Errorf("decodificar %s: %w", kv.path, err)
	}
	val, ok := records[key]
	if !ok || val == nil {
		return nil, false, nil
	}
	return val, true, nil
}

// Set escribe el valor bajo la clave, sobrescribiendo cualquier valor previo.
func (kv *FileKV) Set(key string, value []byte) error {
	records := map[string]json.RawMessage{}
	if raw, err := os.ReadFile(kv.path); err == nil {
		// Un archivo ilegible se descarta: Set repone el registro entero.
		_ = json.Unmarshal(raw, &records)
	}
	records[key] = json.RawMessage(value)

	out, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("codificar registros: %w", err)
	}

	dir := filepath.Dir(kv.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".kv-*")
	if err != nil {
		return fmt.Errorf("archivo temporal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("escribir %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cerrar %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, kv.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("reemplazar %s: %w", kv.path, err)
	}
	return nil
}
