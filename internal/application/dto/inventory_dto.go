package dto

import "time"

// AdjustInventoryRequest body para POST /api/inventory/adjust.
// Delta con signo: negativo representa consumo; sin clamp a cero.
type AdjustInventoryRequest struct {
	Barcode string `json:"barcode"`
	Delta   int64  `json:"delta"`
}

// QuantityResponse respuesta de GET /api/inventory/:barcode/quantity.
type QuantityResponse struct {
	Barcode  string `json:"barcode"`
	Quantity int64  `json:"quantity"`
	Strategy string `json:"strategy"`
}

// LogEntryResponse una entrada del historial de inventario.
type LogEntryResponse struct {
	ID        string    `json:"id"`
	Barcode   string    `json:"barcode"`
	Delta     int64     `json:"delta"`
	Timestamp time.Time `json:"timestamp"`
}
