package repository

import "github.com/jhoicas/inventario-stock/internal/domain/entity"

// QuantityChangeRepository define el puerto del libro de cambios de cantidad.
// Es append-only: los registros nunca se editan ni se borran, y sobreviven al
// borrado del item que referencian (sin cascade).
type QuantityChangeRepository interface {
	// GetByID devuelve el registro o (nil, nil) si no existe.
	GetByID(id string) (*entity.QuantityChange, error)
	Exists(id string) (bool, error)
	// Create inserta el registro estampando CreatedAt. Si el ID ya existe
	// devuelve domain.ErrDuplicate sin modificar nada.
	Create(change *entity.QuantityChange) error
	ListByItem(inventoryItemID string, limit, offset int) ([]*entity.QuantityChange, error)
}
