package inventory

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización de cantidad
// del item y el insert en el libro de cambios se confirmen como una unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		changeRepo repository.QuantityChangeRepository,
	) error) error
}
