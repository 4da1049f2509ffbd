package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/application/usecase"
	"github.com/jhoicas/despensa-api/internal/domain"
)

// InventoryHandler maneja los ajustes de cantidad y las consultas del
// historial.
type InventoryHandler struct {
	uc *usecase.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Adjust godoc
// @Summary      Registrar un delta de cantidad para un código
// @Description  Con estrategia counter incrementa el contador del registro;
// con ledger agrega una entrada inmutable al log.
// @Tags         inventory
// @Accept       json
// @Param        body  body  dto.AdjustInventoryRequest  true  "barcode, delta (con signo)"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo inválido",
		})
	}
	if err := h.uc.Adjust(in.Barcode, in.Delta); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "código de barras vacío",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "ajuste registrado"})
}

// GetQuantity godoc
// @Summary      Cantidad actual de un código
// @Description  Bajo ledger suma los deltas del log; bajo counter lee el
// campo quantity del registro (0 si no existe).
// @Tags         inventory
// @Produce      json
// @Param        barcode  path  string  true  "Código de barras"
// @Success      200  {object}  dto.QuantityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/{barcode}/quantity [get]
func (h *InventoryHandler) GetQuantity(c *fiber.Ctx) error {
	barcode := c.Params("barcode")
	qty, err := h.uc.Quantity(barcode)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "código de barras vacío",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(dto.QuantityResponse{
		Barcode:  barcode,
		Quantity: qty,
		Strategy: string(h.uc.Strategy()),
	})
}

// GetLog godoc
// @Summary      Historial de ajustes de un código
// @Tags         inventory
// @Produce      json
// @Param        barcode  path  string  true  "Código de barras"
// @Success      200  {array}   dto.LogEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/{barcode}/log [get]
func (h *InventoryHandler) GetLog(c *fiber.Ctx) error {
	entries, err := h.uc.History(c.Params("barcode"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "código de barras vacío",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	out := make([]dto.LogEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LogEntryResponse{
			ID: e.ID, Barcode: e.Barcode, Delta: e.Delta, Timestamp: e.Timestamp,
		})
	}
	return c.JSON(out)
}
