package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
	"github.com/jhoicas/inventario-stock/internal/domain"
)

// QuantityChangeHandler maneja las peticiones HTTP del libro de cambios de
// cantidad: aplicación de lotes y lecturas del historial.
type QuantityChangeHandler struct {
	applyUC *inventory.ApplyQuantityChangesUseCase
	queryUC *usecase.ChangeQueryUseCase
	log     zerolog.Logger
}

// NewQuantityChangeHandler construye el handler.
func NewQuantityChangeHandler(applyUC *inventory.ApplyQuantityChangesUseCase, queryUC *usecase.ChangeQueryUseCase, log zerolog.Logger) *QuantityChangeHandler {
	return &QuantityChangeHandler{applyUC: applyUC, queryUC: queryUC, log: log}
}

// ApplyBatch godoc
// @Summary      Aplicar un lote de cambios de cantidad
// @Description  Procesa los registros en orden. Cada id es clave de idempotencia:
//               reenviar un lote ya procesado devuelve los registros originales sin
//               volver a aplicar los deltas. Un item inexistente produce un conflict
//               por registro sin detener el resto del lote.
// @Tags         quantity-changes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      []dto.QuantityChangeRequest  true  "lote ordenado de cambios"
// @Success      201   {array}   dto.QuantityChangeResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/quantity-changes [post]
func (h *QuantityChangeHandler) ApplyBatch(c *fiber.Ctx) error {
	var batch []dto.QuantityChangeRequest
	if err := c.BodyParser(&batch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera un arreglo de cambios"})
	}

	inputs := make([]inventory.ChangeInput, 0, len(batch))
	for _, req := range batch {
		inputs = append(inputs, inventory.ChangeInput{
			ID:              req.ID,
			InventoryItemID: req.InventoryItemID,
			QuantityChange:  req.QuantityChange,
		})
	}

	outcomes, err := h.applyUC.Apply(c.Context(), inputs)
	if err != nil {
		// Fallo de almacenamiento: el prefijo ya confirmado queda firme y el
		// llamador puede reintentar el lote completo por idempotencia.
		h.log.Error().Err(err).Int("aplicados", len(outcomes)).Int("lote", len(batch)).
			Msg("lote de cambios abortado por fallo de almacenamiento")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "fallo de almacenamiento; reintente el lote"})
	}

	results := make([]dto.QuantityChangeResult, 0, len(outcomes))
	for i, out := range outcomes {
		results = append(results, toChangeResult(batch[i], out))
	}
	return c.Status(fiber.StatusCreated).JSON(results)
}

// toChangeResult mapea un ChangeOutcome al resultado por registro del body.
func toChangeResult(req dto.QuantityChangeRequest, out inventory.ChangeOutcome) dto.QuantityChangeResult {
	switch {
	case out.Err != nil && errors.Is(out.Err, domain.ErrConflict):
		return dto.QuantityChangeResult{
			ID:              req.ID,
			InventoryItemID: req.InventoryItemID,
			Status:          dto.ChangeStatusConflict,
			Error:           out.Err.Error(),
		}
	case out.Err != nil:
		return dto.QuantityChangeResult{
			ID:              req.ID,
			InventoryItemID: req.InventoryItemID,
			Status:          dto.ChangeStatusInvalid,
			Error:           out.Err.Error(),
		}
	case out.Duplicate:
		return changeResultFrom(out, dto.ChangeStatusDuplicate)
	default:
		return changeResultFrom(out, dto.ChangeStatusApplied)
	}
}

func changeResultFrom(out inventory.ChangeOutcome, status string) dto.QuantityChangeResult {
	createdAt := out.Change.CreatedAt
	return dto.QuantityChangeResult{
		ID:              out.Change.ID,
		InventoryItemID: out.Change.InventoryItemID,
		QuantityChange:  out.Change.QuantityChange,
		CreatedAt:       &createdAt,
		Status:          status,
	}
}

// GetByID godoc
// @Summary      Obtener un registro del libro de cambios
// @Tags         quantity-changes
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "clave de idempotencia"
// @Success      200  {object}  dto.QuantityChangeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quantity-changes/{id} [get]
func (h *QuantityChangeHandler) GetByID(c *fiber.Ctx) error {
	change, err := h.queryUC.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if change == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	}
	return c.JSON(change)
}
