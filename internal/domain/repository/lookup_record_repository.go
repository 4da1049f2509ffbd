package repository

import "github.com/jhoicas/despensa-api/internal/domain/entity"

// LookupRecordRepository define el puerto de persistencia para la caché de
// metadatos por código de barras (colección product_metadata).
type LookupRecordRepository interface {
	// GetByBarcode devuelve el registro o nil si no existe.
	GetByBarcode(barcode string) (*entity.CachedLookupRecord, error)
	// MergeUpsert escribe solo los campos de lookup (metadatos, estado,
	// last_checked) con semántica merge: nunca toca quantity, que puede
	// estar siendo escrito concurrentemente por el modo contador.
	MergeUpsert(rec *entity.CachedLookupRecord) error
	// IncrementQuantity aplica un incremento atómico del lado del servidor
	// sobre quantity y refresca last_checked. Crea la fila si no existe.
	IncrementQuantity(barcode string, delta int64) error
	// Delete elimina el registro cacheado (limpieza de caché fuera de banda;
	// única forma de revertir un estado negativo memorizado).
	Delete(barcode string) error
}
