package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/despensa-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LookupUC    *usecase.LookupUseCase
	InventoryUC *usecase.InventoryUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products: resolución de códigos de barras y limpieza de caché
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.LookupUC)
	products.Get("/:barcode", productHandler.Resolve)
	products.Delete("/:barcode/cache", productHandler.ClearCache)

	// Inventory: ajustes de cantidad e historial
	inventory := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventory.Post("/adjust", inventoryHandler.Adjust)
	inventory.Get("/:barcode/quantity", inventoryHandler.GetQuantity)
	inventory.Get("/:barcode/log", inventoryHandler.GetLog)
}
