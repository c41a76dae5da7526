package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
	"github.com/jhoicas/inventario-stock/internal/domain"
)

// ItemHandler maneja las peticiones HTTP de items de inventario (CRUD y
// búsqueda por producto). La cantidad no se edita por aquí: solo vía el
// endpoint de quantity-changes.
type ItemHandler struct {
	itemUC  *usecase.ItemUseCase
	queryUC *usecase.ChangeQueryUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(itemUC *usecase.ItemUseCase, queryUC *usecase.ChangeQueryUseCase) *ItemHandler {
	return &ItemHandler{itemUC: itemUC, queryUC: queryUC}
}

// Create godoc
// @Summary      Crear item de inventario
// @Tags         inventory-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateItemRequest  true  "productId, quantity inicial, unitPrice"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory-items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.itemUC.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId es obligatorio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// GetByID godoc
// @Summary      Obtener item por ID
// @Tags         inventory-items
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del item"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory-items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.itemUC.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if item == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
	}
	return c.JSON(item)
}

// Update godoc
// @Summary      Actualizar productId y unitPrice de un item
/// @Description  No modifica quantity: la cantidad solo cambia vía quantity-changes.
// @Tags         inventory-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID del item"
// @Param        body  body      dto.UpdateItemRequest  true  "productId, unitPrice"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory-items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.itemUC.Update(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId es obligatorio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if item == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
	}
	return c.JSON(item)
}

// Delete godoc
// @Summary      Borrar item de inventario
// @Description  El historial de quantity-changes del item se conserva.
// @Tags         inventory-items
// @Security     Bearer
// @Param        id  path  string  true  "ID del item"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory-items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.itemUC.Delete(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Buscar items por productId
// @Tags         inventory-items
// @Security     Bearer
// @Produce      json
// @Param        product_ids  query  string  true   "productIds separados por coma"
// @Param        limit        query  int     false  "tamaño de página (default 20)"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory-items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	raw := c.Query("product_ids")
	var productIDs []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			productIDs = append(productIDs, id)
		}
	}
	if len(productIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_ids es obligatorio"})
	}

	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	items, err := h.itemUC.ListByProductIDs(productIDs, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"items": items,
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// ListChanges godoc
// @Summary      Historial de cambios de cantidad de un item
// @Description  Incluye registros de items ya borrados: el libro no hace cascade.
// @Tags         inventory-items
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del item"
// @Param        limit   query  int     false  "tamaño de página (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.QuantityChangeResponse
// @Router       /api/inventory-items/{id}/quantity-changes [get]
func (h *ItemHandler) ListChanges(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	changes, err := h.queryUC.ListByItem(c.Params("id"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(changes)
}
