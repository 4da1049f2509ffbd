package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/application/usecase"
	"github.com/jhoicas/despensa-api/internal/domain"
)

// ProductHandler maneja la resolución de códigos de barras y la limpieza de
// caché.
type ProductHandler struct {
	uc *usecase.LookupUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.LookupUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Resolve godoc
// @Summary      Resolver un código de barras a metadatos + cantidad
// @Description  Cache-aside: primero la caché, luego Open Food Facts. Una
// resolución fallida es indistinguible de "no encontrado": ambas son 404.
// @Tags         products
// @Produce      json
// @Param        barcode  path  string  true  "Código de barras"
// @Success      200  {object}  dto.ProductInfoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{barcode} [get]
func (h *ProductHandler) Resolve(c *fiber.Ctx) error {
	barcode := c.Params("barcode")
	info := h.uc.Resolve(c.Context(), barcode)
	if info == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "producto no resuelto",
		})
	}
	return c.JSON(dto.ToProductInfoResponse(barcode, info))
}

// ClearCache godoc
// @Summary      Eliminar el registro cacheado de un código
// @Description  Invalidación fuera de banda: única vía para revertir un
// resultado negativo memorizado (no hay TTL).
// @Tags         products
// @Param        barcode  path  string  true  "Código de barras"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{barcode}/cache [delete]
func (h *ProductHandler) ClearCache(c *fiber.Ctx) error {
	if err := h.uc.ClearCached(c.Params("barcode")); err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "código de barras vacío",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
