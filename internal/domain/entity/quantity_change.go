package entity

import "time"

// QuantityChange es un ajuste firmado sobre la cantidad de un item de
// inventario (recepción, venta, corrección). El ID lo asigna el llamador y
// actúa como clave de idempotencia: un registro persistido es inmutable y se
// aplica al item exactamente una vez.
type QuantityChange struct {
	ID              string // clave de idempotencia del llamador
	InventoryItemID string
	QuantityChange  int // positivo aumenta, negativo disminuye
	CreatedAt       time.Time
}
