package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa la existencia de un producto con su cantidad actual.
// Quantity es propiedad del libro de cambios: fuera de la cantidad inicial al
// crearse, solo los QuantityChange aplicados la modifican. Puede ser negativa;
// el sistema no la recorta en cero.
type InventoryItem struct {
	ID        string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal // precio unitario, 2 decimales
	CreatedAt time.Time
	UpdatedAt time.Time
}
