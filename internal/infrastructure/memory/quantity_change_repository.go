package memory

import (
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.QuantityChangeRepository = (*ChangeRepo)(nil)

// ChangeRepo implementación en memoria del libro de cambios (insert-only).
type ChangeRepo struct {
	store *Store
	mu    rwLocker
}

// NewQuantityChangeRepository construye el adaptador sobre el store.
func NewQuantityChangeRepository(store *Store) *ChangeRepo {
	return &ChangeRepo{store: store, mu: &store.mu}
}

// newTxChangeRepo variante ligada a una transacción: el TxRunner ya sostiene
// el lock de escritura del store.
func newTxChangeRepo(store *Store) *ChangeRepo {
	return &ChangeRepo{store: store, mu: noLock{}}
}

// GetByID obtiene una copia del registro o (nil, nil) si no existe.
func (r *ChangeRepo) GetByID(id string) (*entity.QuantityChange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	change, ok := r.store.changes[id]
	if !ok {
		return nil, nil
	}
	cp := *change
	return &cp, nil
}

// Exists verifica si la clave de idempotencia ya está registrada.
func (r *ChangeRepo) Exists(id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.store.changes[id]
	return ok, nil
}

// Create inserta el registro estampando CreatedAt. Devuelve
// domain.ErrDuplicate si el ID ya existe, sin modificar nada.
func (r *ChangeRepo) Create(change *entity.QuantityChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store.changes[change.ID]; ok {
		return domain.ErrDuplicate
	}
	if change.CreatedAt.IsZero() {
		change.CreatedAt = time.Now().UTC()
	}
	cp := *change
	r.store.changes[change.ID] = &cp
	r.store.changeOrder = append(r.store.changeOrder, change.ID)
	return nil
}

// ListByItem historial de un item, más reciente primero, paginado.
func (r *ChangeRepo) ListByItem(inventoryItemID string, limit, offset int) ([]*entity.QuantityChange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.QuantityChange
	for i := len(r.store.changeOrder) - 1; i >= 0; i-- {
		change, ok := r.store.changes[r.store.changeOrder[i]]
		if !ok || change.InventoryItemID != inventoryItemID {
			continue
		}
		cp := *change
		list = append(list, &cp)
	}
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}
