package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// ChangeInput es una solicitud de cambio de cantidad dentro de un lote.
// ID lo asigna el llamador y es la clave de idempotencia del registro.
type ChangeInput struct {
	ID              string
	InventoryItemID string
	QuantityChange  int
}

// ChangeOutcome es el resultado por registro. Exactamente uno de los casos:
//   - Change != nil, Duplicate false: el cambio se aplicó y persistió ahora.
//   - Change != nil, Duplicate true: el ID ya estaba registrado; se devuelve
//     el registro original sin tocar el item.
//   - Err != nil: domain.ErrConflict (item inexistente) o
//     domain.ErrInvalidInput; el registro no tocó el almacenamiento.
type ChangeOutcome struct {
	Change    *entity.QuantityChange
	Duplicate bool
	Err       error
}

// ApplyQuantityChangesUseCase aplica lotes de cambios de cantidad con
// idempotencia por registro. Cada registro corre en su propia transacción:
// el update del item (con bloqueo de fila) y el insert en el libro de
// cambios se confirman juntos o ninguno queda visible.
type ApplyQuantityChangesUseCase struct {
	txRunner   TxRunner
	changeRepo repository.QuantityChangeRepository
}

// NewApplyQuantityChangesUseCase construye el caso de uso. changeRepo debe
// estar atado al pool (fuera de tx): se usa para releer un registro cuando
// dos lotes concurrentes insertan el mismo ID y uno pierde la carrera.
func NewApplyQuantityChangesUseCase(txRunner TxRunner, changeRepo repository.QuantityChangeRepository) *ApplyQuantityChangesUseCase {
	return &ApplyQuantityChangesUseCase{txRunner: txRunner, changeRepo: changeRepo}
}

// Apply procesa el lote en orden de entrada y devuelve un resultado por
// registro, en el mismo orden. El lote no es todo-o-nada: un conflicto en un
// registro no detiene los siguientes. Solo un fallo de almacenamiento aborta
// el resto; en ese caso se devuelven los resultados ya confirmados junto con
// el error, y reintentar el lote completo es seguro por idempotencia.
func (uc *ApplyQuantityChangesUseCase) Apply(ctx context.Context, batch []ChangeInput) ([]ChangeOutcome, error) {
	outcomes := make([]ChangeOutcome, 0, len(batch))
	for _, in := range batch {
		if in.ID == "" || in.InventoryItemID == "" {
			outcomes = append(outcomes, ChangeOutcome{
				Err: fmt.Errorf("%w: id e inventoryItemId son obligatorios", domain.ErrInvalidInput),
			})
			continue
		}

		outcome, err := uc.applyOne(ctx, in)
		if err != nil {
			return outcomes, fmt.Errorf("aplicar cambio %s: %w", in.ID, err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// applyOne aplica un registro dentro de una transacción. Secuencia:
// chequeo de idempotencia → resolver item con bloqueo de fila → nueva
// cantidad → persistir item y registro. Las rutas de duplicado y de
// conflicto no escriben nada.
func (uc *ApplyQuantityChangesUseCase) applyOne(ctx context.Context, in ChangeInput) (ChangeOutcome, error) {
	var outcome ChangeOutcome
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		changeRepo repository.QuantityChangeRepository,
	) error {
		existing, err := changeRepo.GetByID(in.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			outcome = ChangeOutcome{Change: existing, Duplicate: true}
			return nil
		}

		item, err := itemRepo.GetForUpdate(in.InventoryItemID)
		if err != nil {
			return err
		}
		if item == nil {
			outcome = ChangeOutcome{
				Err: fmt.Errorf("%w: item de inventario %s no existe", domain.ErrConflict, in.InventoryItemID),
			}
			return nil
		}

		item.Quantity += in.QuantityChange
		if _, err := itemRepo.Save(item); err != nil {
			return err
		}

		change := &entity.QuantityChange{
			ID:              in.ID,
			InventoryItemID: in.InventoryItemID,
			QuantityChange:  in.QuantityChange,
		}
		if err := changeRepo.Create(change); err != nil {
			return err
		}
		outcome = ChangeOutcome{Change: change}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Carrera entre lotes concurrentes: otro applier insertó el
			// mismo ID entre nuestro chequeo y nuestro insert. La tx hizo
			// rollback, así que el item quedó intacto; el registro del
			// ganador es el resultado.
			existing, gerr := uc.changeRepo.GetByID(in.ID)
			if gerr != nil {
				return ChangeOutcome{}, gerr
			}
			if existing == nil {
				return ChangeOutcome{}, fmt.Errorf("cambio %s: duplicado reportado pero no legible", in.ID)
			}
			return ChangeOutcome{Change: existing, Duplicate: true}, nil
		}
		return ChangeOutcome{}, err
	}
	return outcome, nil
}
