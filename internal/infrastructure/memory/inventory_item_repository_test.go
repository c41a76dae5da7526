package memory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
)

// Update escribe productId y unitPrice por id; una cantidad obsoleta en el
// payload (leída antes de que un cambio concurrente confirmara su delta) no
// pisa la almacenada.
func TestItemRepoUpdate_IgnoraCantidadObsoleta(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewInventoryItemRepository(store)

	saved, err := repo.Save(&entity.InventoryItem{
		ProductID: "productA",
		Quantity:  100,
		UnitPrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	// Un cambio de cantidad confirma -10 entre la lectura del cliente y su PUT.
	saved.Quantity = 90
	_, err = repo.Save(saved)
	require.NoError(t, err)

	updated, err := repo.Update(&entity.InventoryItem{
		ID:        saved.ID,
		ProductID: "productB",
		UnitPrice: decimal.NewFromInt(20),
		Quantity:  100, // obsoleta
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "productB", updated.ProductID)
	assert.True(t, updated.UnitPrice.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 90, updated.Quantity, "el delta aplicado se conserva")
	assert.Equal(t, saved.CreatedAt, updated.CreatedAt, "CreatedAt es inmutable")
}

// Update de un id inexistente devuelve (nil, nil) sin crear nada.
func TestItemRepoUpdate_NoExiste(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewInventoryItemRepository(store)

	updated, err := repo.Update(&entity.InventoryItem{
		ID:        "no-existe",
		ProductID: "productB",
		UnitPrice: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.Nil(t, updated)

	got, err := repo.GetByID("no-existe")
	require.NoError(t, err)
	assert.Nil(t, got, "Update nunca inserta")
}
