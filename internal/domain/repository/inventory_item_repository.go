package repository

import "github.com/jhoicas/inventario-stock/internal/domain/entity"

// InventoryItemRepository define el puerto de persistencia para items de
// inventario. Las lecturas devuelven (nil, nil) cuando el item no existe.
type InventoryItemRepository interface {
	GetByID(id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila del item para update (SELECT FOR UPDATE).
	// Usar dentro de una transacción para serializar el read-modify-write
	// de Quantity por item.
	GetForUpdate(id string) (*entity.InventoryItem, error)
	// Save inserta o actualiza el item. El adaptador genera el ID (uuid) si
	// está vacío y estampa CreatedAt solo en el insert; UpdatedAt siempre.
	Save(item *entity.InventoryItem) (*entity.InventoryItem, error)
	// Update cambia ProductID y UnitPrice por id sin escribir nunca
	// Quantity: la cantidad solo se escribe dentro de la transacción de un
	// cambio. Devuelve (nil, nil) si el item no existe.
	Update(item *entity.InventoryItem) (*entity.InventoryItem, error)
	Delete(id string) error
	ListByProductIDs(productIDs []string, limit, offset int) ([]*entity.InventoryItem, error)
}
