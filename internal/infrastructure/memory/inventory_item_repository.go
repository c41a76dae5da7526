package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación en memoria de InventoryItemRepository.
type ItemRepo struct {
	store *Store
	mu    rwLocker
}

// NewInventoryItemRepository construye el adaptador sobre el store.
func NewInventoryItemRepository(store *Store) *ItemRepo {
	return &ItemRepo{store: store, mu: &store.mu}
}

// newTxItemRepo variante ligada a una transacción: el TxRunner ya sostiene
// el lock de escritura del store.
func newTxItemRepo(store *Store) *ItemRepo {
	return &ItemRepo{store: store, mu: noLock{}}
}

// GetByID obtiene una copia del item o (nil, nil) si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

// GetForUpdate equivale a GetByID: la serialización por item la aporta el
// TxRunner, que ejecuta las transacciones de a una.
func (r *ItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

// Save inserta o actualiza. Genera el ID (uuid) y estampa CreatedAt solo en
// el insert; UpdatedAt siempre, igual que el adaptador de PostgreSQL.
func (r *ItemRepo) Save(item *entity.InventoryItem) (*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if prev, ok := r.store.items[item.ID]; ok {
		item.CreatedAt = prev.CreatedAt
	} else {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	cp := *item
	r.store.items[item.ID] = &cp
	return item, nil
}

// Update cambia ProductID y UnitPrice por id sin escribir nunca Quantity:
// la cantidad almacenada se conserva aunque el payload traiga una obsoleta.
// Devuelve (nil, nil) si el item no existe.
func (r *ItemRepo) Update(item *entity.InventoryItem) (*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.store.items[item.ID]
	if !ok {
		return nil, nil
	}
	cp := *prev
	cp.ProductID = item.ProductID
	cp.UnitPrice = item.UnitPrice
	cp.UpdatedAt = time.Now().UTC()
	r.store.items[item.ID] = &cp
	out := cp
	return &out, nil
}

// Delete borra el item; el historial de cambios se conserva (sin cascade).
func (r *ItemRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.items, id)
	return nil
}

// ListByProductIDs lista items cuyo ProductID esté en la lista, más
// recientes primero, paginado.
func (r *ItemRepo) ListByProductIDs(productIDs []string, limit, offset int) ([]*entity.InventoryItem, error) {
	wanted := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}

	r.mu.RLock()
	var list []*entity.InventoryItem
	for _, item := range r.store.items {
		if wanted[item.ProductID] {
			cp := *item
			list = append(list, &cp)
		}
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}
