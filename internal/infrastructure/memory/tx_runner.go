package memory

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks como transacciones serializadas sobre el store.
// Sostiene el lock de escritura del store mientras corre fn (un bloqueo más
// grueso que el FOR UPDATE de PostgreSQL, pero con el mismo resultado
// observable): los repos ligados al pool bloquean hasta el commit y nunca
// ven estado intermedio. Un snapshot previo permite rollback si fn falla.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos ligados a la transacción; si fn devuelve error se
// restaura el estado previo antes de soltar el lock, si no, los cambios
// quedan confirmados al soltarlo.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	changeRepo repository.QuantityChangeRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	items, changes, order := r.store.snapshotLocked()
	if err := fn(newTxItemRepo(r.store), newTxChangeRepo(r.store)); err != nil {
		r.store.restoreLocked(items, changes, order)
		return err
	}
	return nil
}
