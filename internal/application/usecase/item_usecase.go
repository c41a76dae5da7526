package usecase

import (
	"strings"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para items de inventario. Quantity solo se
// fija aquí al crear; después la maneja el libro de cambios.
type ItemUseCase struct {
	repo repository.InventoryItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.InventoryItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un item. El adaptador genera el ID y estampa los timestamps.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.InventoryItem{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice.Round(2),
	}
	saved, err := uc.repo.Save(item)
	if err != nil {
		return nil, err
	}
	return dto.ToItemResponse(saved), nil
}

// GetByID obtiene un item por ID. Devuelve (nil, nil) si no existe.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return dto.ToItemResponse(item), nil
}

// Update actualiza productId y unitPrice con un update dedicado que nunca
// escribe Quantity: la cantidad es del libro de cambios, incluso si otro
// proceso la movió mientras este PUT estaba en vuelo. Devuelve (nil, nil)
// si el item no existe.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.ErrInvalidInput
	}
	updated, err := uc.repo.Update(&entity.InventoryItem{
		ID:        id,
		ProductID: in.ProductID,
		UnitPrice: in.UnitPrice.Round(2),
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}
	return dto.ToItemResponse(updated), nil
}

// Delete borra el item. Los registros del libro de cambios que lo
// referencian se conservan (sin cascade).
func (uc *ItemUseCase) Delete(id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// ListByProductIDs busca items por productId (uno o varios) con paginación.
func (uc *ItemUseCase) ListByProductIDs(productIDs []string, page dto.PageRequest) ([]*dto.ItemResponse, error) {
	page.DefaultPage()
	items, err := uc.repo.ListByProductIDs(productIDs, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.ToItemResponse(item))
	}
	return out, nil
}
