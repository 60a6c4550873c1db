// Package state contiene el State Store: el dueño único del agregado en
// memoria (productos, usuarios, sesión) y de sus reglas de mutación. Cada
// mutación valida, aplica, persiste vía el puerto de persistencia y devuelve
// un resultado tipado; las consultas devuelven copias, nunca referencias al
// agregado.
package state

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/geststock/internal/domain/entity"
	"github.com/jhoicas/geststock/internal/domain/repository"
	"github.com/jhoicas/geststock/pkg/logger"
)

// Store mantiene el estado canónico de la aplicación.
//
// El servidor HTTP es concurrente, así que el chequeo de unicidad y el append
// posterior (y toda otra mutación) van bajo un mutex como sección crítica.
type Store struct {
	mu   sync.Mutex
	st   *entity.AppState
	repo repository.StateRepository
	log  *logger.Logger
}

// New carga el estado persistido y construye el Store.
func New(repo repository.StateRepository, log *logger.Logger) (*Store, error) {
	st, err := repo.Load()
	if err != nil {
		return nil, err
	}
	return &Store{st: st, repo: repo, log: log}, nil
}

// persistLocked escribe el agregado completo. Se llama con el mutex tomado.
func (s *Store) persistLocked() error {
	return s.repo.Save(s.st)
}

// ListProducts devuelve los productos en orden de inserción.
func (s *Store) ListProducts() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Product(nil), s.st.Products...)
}

// SearchProducts filtra por subcadena (sin distinguir mayúsculas) sobre el
// nombre o la representación decimal de la cantidad, como el buscador del
// dashboard. Término vacío devuelve todo.
func (s *Store) SearchProducts(term string) []entity.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	products := s.ListProducts()
	if term == "" {
		return products
	}
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		name := strings.ToLower(p.Name)
		qty := strconv.Itoa(p.Quantity)
		if strings.Contains(name, term) || strings.Contains(qty, term) {
			out = append(out, p)
		}
	}
	return out
}

// ListUsers devuelve el directorio de usuarios.
func (s *Store) ListUsers() []entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.User(nil), s.st.Users...)
}

// CurrentSession devuelve la sesión actual o nil si nadie inició sesión.
func (s *Store) CurrentSession() *entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.CurrentUser == nil {
		return nil
	}
	cu := *s.st.CurrentUser
	return &cu
}

// DashboardMetrics resume el inventario para el tablero.
type DashboardMetrics struct {
	TotalProducts    int
	TotalQuantity    int
	LowStockProducts []entity.Product
}

// Metrics calcula las métricas del dashboard: total de productos, suma de
// cantidades y los productos con stock bajo (cantidad <= 5).
func (s *Store) Metrics() DashboardMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := DashboardMetrics{
		TotalProducts:    len(s.st.Products),
		LowStockProducts: []entity.Product{},
	}
	for _, p := range s.st.Products {
		m.TotalQuantity += p.Quantity
		if p.LowStock() {
			m.LowStockProducts = append(m.LowStockProducts, p)
		}
	}
	return m
}

// Snapshot devuelve una copia profunda del agregado completo (exports).
func (s *Store) Snapshot() *entity.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Clone()
}

// ReplaceState sustituye el agregado entero (import de respaldo) y persiste.
// El reemplazo no se fusiona con el estado previo; la sesión vigente viaja tal
// cual venga en el archivo, y si quedó obsoleta el gate la invalidará.
func (s *Store) ReplaceState(st *entity.AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = st.Clone()
	if s.st.Products == nil {
		s.st.Products = []entity.Product{}
	}
	if s.st.Users == nil {
		s.st.Users = []entity.User{}
	}
	// Los respaldos del formato antiguo no traen id de usuario.
	for i := range s.st.Users {
		if s.st.Users[i].ID == "" {
			s.st.Users[i].ID = uuid.NewString()
		}
	}
	return s.persistLocked()
}
