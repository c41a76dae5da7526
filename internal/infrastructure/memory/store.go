// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, para pruebas y desarrollo local sin PostgreSQL. El TxRunner
// sostiene el lock de escritura del store durante toda la transacción y
// restaura un snapshot ante error, con lo que ofrece las mismas garantías
// observables que el adaptador de PostgreSQL: read-modify-write por item
// serializado, commit atómico de item + registro, y ningún estado intermedio
// ni revertido visible fuera de la transacción.
package memory

import (
	"sync"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// Store guarda items y registros de cambio en mapas protegidos por mutex.
type Store struct {
	mu          sync.RWMutex
	items       map[string]*entity.InventoryItem
	changes     map[string]*entity.QuantityChange
	changeOrder []string // orden de inserción, para listar historial
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		items:   make(map[string]*entity.InventoryItem),
		changes: make(map[string]*entity.QuantityChange),
	}
}

// rwLocker protege el acceso de los repos al store: el RWMutex del store
// fuera de una transacción, o un no-op dentro de una (el TxRunner ya
// sostiene el lock de escritura durante todo el callback).
type rwLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type noLock struct{}

func (noLock) Lock()    {}
func (noLock) Unlock()  {}
func (noLock) RLock()   {}
func (noLock) RUnlock() {}

// snapshotLocked copia el estado completo para poder hacer rollback.
// El caller debe sostener mu.
func (s *Store) snapshotLocked() (map[string]*entity.InventoryItem, map[string]*entity.QuantityChange, []string) {
	items := make(map[string]*entity.InventoryItem, len(s.items))
	for k, v := range s.items {
		cp := *v
		items[k] = &cp
	}
	changes := make(map[string]*entity.QuantityChange, len(s.changes))
	for k, v := range s.changes {
		cp := *v
		changes[k] = &cp
	}
	order := make([]string, len(s.changeOrder))
	copy(order, s.changeOrder)
	return items, changes, order
}

// restoreLocked repone un snapshot previo. El caller debe sostener mu.
func (s *Store) restoreLocked(items map[string]*entity.InventoryItem, changes map[string]*entity.QuantityChange, order []string) {
	s.items = items
	s.changes = changes
	s.changeOrder = order
}
