package repository

import "github.com/jhoicas/despensa-api/internal/domain/entity"

// InventoryLogRepository define el puerto para el log append-only de
// inventario (colección inventory_log). Las entradas nunca se modifican
// ni se borran.
type InventoryLogRepository interface {
	// Append inserta una nueva entrada inmutable.
	Append(entry *entity.InventoryLogEntry) error
	// DeltasByBarcode devuelve los deltas crudos de un código en orden de
	// inserción; nil representa un delta ausente o no numérico (el caso de
	// uso lo salta con warning de calidad de datos, no es un error).
	DeltasByBarcode(barcode string) ([]*int64, error)
	// ListByBarcode devuelve las entradas completas (historial auditable).
	ListByBarcode(barcode string) ([]*entity.InventoryLogEntry, error)
}
