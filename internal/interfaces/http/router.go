package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemHandler   *ItemHandler
	ChangeHandler *QuantityChangeHandler
	JWTSecret     string
}

// Router registra las rutas de la API. Todo el grupo /api requiere Bearer
// Token del sistema llamador.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Items de inventario (CRUD + búsqueda por producto)
	items := api.Group("/inventory-items")
	items.Post("/", deps.ItemHandler.Create)
	items.Get("/", deps.ItemHandler.List)
	items.Get("/:id", deps.ItemHandler.GetByID)
	items.Put("/:id", deps.ItemHandler.Update)
	items.Delete("/:id", deps.ItemHandler.Delete)
	items.Get("/:id/quantity-changes", deps.ItemHandler.ListChanges)

	// Libro de cambios de cantidad (lotes idempotentes + lecturas)
	changes := api.Group("/quantity-changes")
	changes.Post("/", deps.ChangeHandler.ApplyBatch)
	changes.Get("/:id", deps.ChangeHandler.GetByID)
}
