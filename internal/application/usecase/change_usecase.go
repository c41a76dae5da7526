package usecase

import (
	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// ChangeQueryUseCase lecturas del libro de cambios de cantidad. El libro es
// append-only: no hay casos de uso de edición ni borrado.
type ChangeQueryUseCase struct {
	repo repository.QuantityChangeRepository
}

// NewChangeQueryUseCase construye el caso de uso.
func NewChangeQueryUseCase(repo repository.QuantityChangeRepository) *ChangeQueryUseCase {
	return &ChangeQueryUseCase{repo: repo}
}

// GetByID obtiene un registro por su clave de idempotencia. (nil, nil) si no existe.
func (uc *ChangeQueryUseCase) GetByID(id string) (*dto.QuantityChangeResponse, error) {
	change, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if change == nil {
		return nil, nil
	}
	return dto.ToQuantityChangeResponse(change), nil
}

// ListByItem historial de cambios de un item, más reciente primero. Incluye
// registros de items ya borrados: el libro no hace cascade.
func (uc *ChangeQueryUseCase) ListByItem(inventoryItemID string, page dto.PageRequest) ([]*dto.QuantityChangeResponse, error) {
	page.DefaultPage()
	changes, err := uc.repo.ListByItem(inventoryItemID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuantityChangeResponse, 0, len(changes))
	for _, c := range changes {
		out = append(out, dto.ToQuantityChangeResponse(c))
	}
	return out, nil
}
