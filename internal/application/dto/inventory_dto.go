package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// Nombres de campo en camelCase: es el formato de los sistemas de pedidos
// que ya consumen esta API.

// CreateItemRequest body para POST /api/inventory-items. Quantity es la
// cantidad inicial; después de crear el item solo el libro de cambios la
// modifica.
type CreateItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// UpdateItemRequest body para PUT /api/inventory-items/:id. No incluye
// Quantity a propósito: la cantidad solo cambia vía quantity-changes.
type UpdateItemRequest struct {
	ProductID string          `json:"productId"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// ItemResponse representación HTTP de un item de inventario.
type ItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToItemResponse convierte la entidad a su representación HTTP.
func ToItemResponse(item *entity.InventoryItem) *ItemResponse {
	return &ItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// QuantityChangeRequest un registro del body de POST /api/quantity-changes.
type QuantityChangeRequest struct {
	ID              string `json:"id"`
	InventoryItemID string `json:"inventoryItemId"`
	QuantityChange  int    `json:"quantityChange"`
}

// Estados por registro en la respuesta del lote.
const (
	ChangeStatusApplied   = "applied"
	ChangeStatusDuplicate = "duplicate"
	ChangeStatusConflict  = "conflict"
	ChangeStatusInvalid   = "invalid"
)

// QuantityChangeResult resultado por registro, en el mismo orden del lote.
// CreatedAt solo viene en applied/duplicate; Error solo en conflict/invalid.
type QuantityChangeResult struct {
	ID              string     `json:"id,omitempty"`
	InventoryItemID string     `json:"inventoryItemId,omitempty"`
	QuantityChange  int        `json:"quantityChange,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	Status          string     `json:"status"`
	Error           string     `json:"error,omitempty"`
}

// QuantityChangeResponse representación HTTP de un registro del libro.
type QuantityChangeResponse struct {
	ID              string    `json:"id"`
	InventoryItemID string    `json:"inventoryItemId"`
	QuantityChange  int       `json:"quantityChange"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToQuantityChangeResponse convierte la entidad a su representación HTTP.
func ToQuantityChangeResponse(c *entity.QuantityChange) *QuantityChangeResponse {
	return &QuantityChangeResponse{
		ID:              c.ID,
		InventoryItemID: c.InventoryItemID,
		QuantityChange:  c.QuantityChange,
		CreatedAt:       c.CreatedAt,
	}
}
