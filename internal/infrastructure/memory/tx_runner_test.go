package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
)

// seedItem crea un item directamente en el store y devuelve su ID.
func seedItem(t *testing.T, store *memory.Store, quantity int) string {
	t.Helper()
	item, err := memory.NewInventoryItemRepository(store).Save(&entity.InventoryItem{
		ProductID: "productA",
		Quantity:  quantity,
		UnitPrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	return item.ID
}

// Mientras una transacción está abierta, los lectores ligados al pool quedan
// bloqueados: nunca pueden ver la cantidad nueva sin su registro en el libro.
func TestTxRunner_LectorNoVeEstadoIntermedio(t *testing.T) {
	store := memory.NewStore()
	itemRepo := memory.NewInventoryItemRepository(store)
	changeRepo := memory.NewQuantityChangeRepository(store)
	itemID := seedItem(t, store, 100)

	enTx := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- memory.NewTxRunner(store).Run(context.Background(), func(
			txItems repository.InventoryItemRepository,
			txChanges repository.QuantityChangeRepository,
		) error {
			item, err := txItems.GetForUpdate(itemID)
			if err != nil {
				return err
			}
			item.Quantity -= 10
			if _, err := txItems.Save(item); err != nil {
				return err
			}
			// Cantidad escrita, registro del libro todavía no.
			close(enTx)
			<-release
			return txChanges.Create(&entity.QuantityChange{
				ID:              "c1",
				InventoryItemID: itemID,
				QuantityChange:  -10,
			})
		})
	}()

	<-enTx
	type vista struct {
		cantidad int
		enLibro  bool
	}
	lectura := make(chan vista, 1)
	go func() {
		item, _ := itemRepo.GetByID(itemID)
		enLibro, _ := changeRepo.Exists("c1")
		lectura <- vista{cantidad: item.Quantity, enLibro: enLibro}
	}()

	select {
	case v := <-lectura:
		t.Fatalf("el lector observó estado intermedio: cantidad=%d, registro en libro=%v", v.cantidad, v.enLibro)
	case <-time.After(50 * time.Millisecond):
		// El lector sigue bloqueado: la transacción sostiene el lock.
	}

	close(release)
	require.NoError(t, <-txDone)
	v := <-lectura
	assert.Equal(t, 90, v.cantidad, "tras el commit la cantidad nueva es visible")
	assert.True(t, v.enLibro, "la cantidad nueva solo aparece junto con su registro")
}

// Si fn falla, el rollback ocurre antes de soltar el lock: las escrituras
// revertidas no son observables en ningún momento.
func TestTxRunner_RollbackNoEsObservable(t *testing.T) {
	store := memory.NewStore()
	itemRepo := memory.NewInventoryItemRepository(store)
	changeRepo := memory.NewQuantityChangeRepository(store)
	itemID := seedItem(t, store, 100)

	errFalla := errors.New("falla simulada")
	err := memory.NewTxRunner(store).Run(context.Background(), func(
		txItems repository.InventoryItemRepository,
		txChanges repository.QuantityChangeRepository,
	) error {
		item, err := txItems.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		item.Quantity -= 10
		if _, err := txItems.Save(item); err != nil {
			return err
		}
		if err := txChanges.Create(&entity.QuantityChange{
			ID:              "c1",
			InventoryItemID: itemID,
			QuantityChange:  -10,
		}); err != nil {
			return err
		}
		return errFalla
	})
	require.ErrorIs(t, err, errFalla)

	item, err := itemRepo.GetByID(itemID)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 100, item.Quantity, "la cantidad vuelve al valor previo")

	enLibro, err := changeRepo.Exists("c1")
	require.NoError(t, err)
	assert.False(t, enLibro, "el registro revertido no queda en el libro")

	historial, err := changeRepo.ListByItem(itemID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, historial)
}

// Un contexto ya cancelado impide abrir la transacción.
func TestTxRunner_ContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	itemID := seedItem(t, store, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := memory.NewTxRunner(store).Run(ctx, func(
		txItems repository.InventoryItemRepository,
		txChanges repository.QuantityChangeRepository,
	) error {
		t.Error("fn no debe ejecutarse con el contexto cancelado")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)

	item, err := memory.NewInventoryItemRepository(store).GetByID(itemID)
	require.NoError(t, err)
	assert.Equal(t, 100, item.Quantity)
}
