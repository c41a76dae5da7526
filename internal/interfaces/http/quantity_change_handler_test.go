package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/inventario-stock/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testApp struct {
	app   *fiber.App
	store *memory.Store
}

// buildTestApp construye una aplicación Fiber con los handlers reales sobre
// el store en memoria, sin middleware de auth (eso se prueba aparte).
func buildTestApp() *testApp {
	store := memory.NewStore()
	itemRepo := memory.NewInventoryItemRepository(store)
	changeRepo := memory.NewQuantityChangeRepository(store)

	applyUC := inventory.NewApplyQuantityChangesUseCase(memory.NewTxRunner(store), changeRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)
	queryUC := usecase.NewChangeQueryUseCase(changeRepo)

	itemHandler := apphttp.NewItemHandler(itemUC, queryUC)
	changeHandler := apphttp.NewQuantityChangeHandler(applyUC, queryUC, zerolog.Nop())

	// Mismas rutas que el Router pero sin AuthMiddleware (se prueba aparte).
	app := fiber.New()
	api := app.Group("/api")
	items := api.Group("/inventory-items")
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Get("/:id/quantity-changes", itemHandler.ListChanges)
	changes := api.Group("/quantity-changes")
	changes.Post("/", changeHandler.ApplyBatch)
	changes.Get("/:id", changeHandler.GetByID)

	return &testApp{app: app, store: store}
}

// seedItem crea un item directamente en el store y devuelve su ID.
func (ta *testApp) seedItem(t *testing.T, productID string, quantity int) string {
	t.Helper()
	item, err := memory.NewInventoryItemRepository(ta.store).Save(&entity.InventoryItem{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: decimal.NewFromFloat(456.78),
	})
	require.NoError(t, err)
	return item.ID
}

// postBatch envía un lote a POST /api/quantity-changes y decodifica los
// resultados por registro.
func (ta *testApp) postBatch(t *testing.T, batch []dto.QuantityChangeRequest) (*http.Response, []dto.QuantityChangeResult) {
	t.Helper()
	body, err := json.Marshal(batch)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/quantity-changes/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)

	var results []dto.QuantityChangeResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	resp.Body.Close()
	return resp, results
}

// getQuantity lee la cantidad actual vía GET /api/inventory-items/:id.
func (ta *testApp) getQuantity(t *testing.T, itemID string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/inventory-items/"+itemID, nil)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var item dto.ItemResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))
	return item.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/quantity-changes
// ──────────────────────────────────────────────────────────────────────────────

// Lote válido: 201, un resultado applied por registro y cantidades
// actualizadas; el reenvío devuelve duplicate sin volver a aplicar.
func TestApplyBatch_AplicaYReenvia(t *testing.T) {
	ta := buildTestApp()
	itemA := ta.seedItem(t, "productA", 100)
	itemB := ta.seedItem(t, "productB", 200)

	batch := []dto.QuantityChangeRequest{
		{ID: "c1", InventoryItemID: itemA, QuantityChange: -10},
		{ID: "c2", InventoryItemID: itemB, QuantityChange: -20},
	}

	resp, results := ta.postBatch(t, batch)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, results, 2)
	for i, r := range results {
		assert.Equal(t, dto.ChangeStatusApplied, r.Status, "registro %d", i)
		assert.Equal(t, batch[i].ID, r.ID)
		require.NotNil(t, r.CreatedAt)
	}
	assert.Equal(t, 90, ta.getQuantity(t, itemA))
	assert.Equal(t, 180, ta.getQuantity(t, itemB))

	resp, results = ta.postBatch(t, batch)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "el reenvío también es 201")
	require.Len(t, results, 2)
	for i, r := range results {
		assert.Equal(t, dto.ChangeStatusDuplicate, r.Status, "registro %d", i)
	}
	assert.Equal(t, 90, ta.getQuantity(t, itemA), "los duplicados no tocan la cantidad")
	assert.Equal(t, 180, ta.getQuantity(t, itemB))
}

// Un item inexistente produce conflict por registro; los demás registros del
// lote se aplican y el lote responde 201 igualmente.
func TestApplyBatch_ConflictoPorRegistro(t *testing.T) {
	ta := buildTestApp()
	itemA := ta.seedItem(t, "productA", 100)

	resp, results := ta.postBatch(t, []dto.QuantityChangeRequest{
		{ID: "k1", InventoryItemID: itemA, QuantityChange: +5},
		{ID: "k2", InventoryItemID: "no-existe", QuantityChange: -5},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode,
		"el lote fue procesado; el conflicto va en el cuerpo, por registro")
	require.Len(t, results, 2)
	assert.Equal(t, dto.ChangeStatusApplied, results[0].Status)
	assert.Equal(t, dto.ChangeStatusConflict, results[1].Status)
	assert.Contains(t, results[1].Error, "no-existe")
	assert.Equal(t, 105, ta.getQuantity(t, itemA))
}

// Registros sin id se reportan como invalid sin detener el lote.
func TestApplyBatch_RegistroInvalido(t *testing.T) {
	ta := buildTestApp()
	itemA := ta.seedItem(t, "productA", 10)

	resp, results := ta.postBatch(t, []dto.QuantityChangeRequest{
		{ID: "", InventoryItemID: itemA, QuantityChange: 1},
		{ID: "ok1", InventoryItemID: itemA, QuantityChange: 1},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, results, 2)
	assert.Equal(t, dto.ChangeStatusInvalid, results[0].Status)
	assert.Equal(t, dto.ChangeStatusApplied, results[1].Status)
	assert.Equal(t, 11, ta.getQuantity(t, itemA))
}

// Body que no es un arreglo: 400 sin tocar almacenamiento.
func TestApplyBatch_BodyInvalido(t *testing.T) {
	ta := buildTestApp()
	req := httptest.NewRequest(http.MethodPost, "/api/quantity-changes/", bytes.NewReader([]byte(`{"no":"es-arreglo"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas del libro
// ──────────────────────────────────────────────────────────────────────────────

// GET de un registro aplicado devuelve el registro; un id desconocido, 404.
func TestGetQuantityChange(t *testing.T) {
	ta := buildTestApp()
	itemA := ta.seedItem(t, "productA", 100)
	ta.postBatch(t, []dto.QuantityChangeRequest{
		{ID: "g1", InventoryItemID: itemA, QuantityChange: -10},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/quantity-changes/g1", nil)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var change dto.QuantityChangeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&change))
	assert.Equal(t, "g1", change.ID)
	assert.Equal(t, itemA, change.InventoryItemID)
	assert.Equal(t, -10, change.QuantityChange)

	req = httptest.NewRequest(http.MethodGet, "/api/quantity-changes/desconocido", nil)
	resp, err = ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// El historial de un item sobrevive a su borrado (sin cascade).
func TestListChanges_SobreviveAlBorradoDelItem(t *testing.T) {
	ta := buildTestApp()
	itemA := ta.seedItem(t, "productA", 100)
	ta.postBatch(t, []dto.QuantityChangeRequest{
		{ID: "h1", InventoryItemID: itemA, QuantityChange: -10},
		{ID: "h2", InventoryItemID: itemA, QuantityChange: +3},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/inventory-items/"+itemA, nil)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/inventory-items/"+itemA+"/quantity-changes", nil)
	resp, err = ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var changes []dto.QuantityChangeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&changes))
	assert.Len(t, changes, 2, "el libro conserva el historial del item borrado")
}
