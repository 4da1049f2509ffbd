package entity

import "time"

// LookupStatus estado de una consulta de código de barras en la caché.
// Los estados negativos (not_found, no_data, lookup_failed) son terminales:
// una vez cacheados no se vuelve a consultar la API externa para ese código
// (sin TTL; solo se revierten con una limpieza explícita de caché).
type LookupStatus string

const (
	StatusFound        LookupStatus = "found"
	StatusNotFound     LookupStatus = "not_found"
	StatusNoData       LookupStatus = "no_data"
	StatusLookupFailed LookupStatus = "lookup_failed"
	StatusWasOffline   LookupStatus = "was_offline"
)

// IsNegative indica si el estado es un resultado negativo memorizado
// (se respeta sin reconsultar la API externa).
func (s LookupStatus) IsNegative() bool {
	switch s {
	case StatusNotFound, StatusNoData, StatusLookupFailed, StatusWasOffline:
		return true
	}
	return false
}

// ProductMetadata metadatos legibles de un producto resuelto.
// Valor inmutable una vez resuelto con éxito.
type ProductMetadata struct {
	Name     string // nombre a mostrar; "marca - producto" si hay marca
	ImageURL string // opcional
	Brands   string // opcional
}

// CachedLookupRecord registro cacheado por código de barras. El código es la
// identidad del documento (PK). Une la caché de lookup y el contador de
// cantidad: Quantity es el mismo campo que escribe el modo contador del
// inventario, no un documento aparte.
// Invariante: si LookupStatus == found entonces Name no es vacío.
type CachedLookupRecord struct {
	Barcode      string
	Name         string
	ImageURL     string
	Brands       string
	LookupStatus LookupStatus
	LastChecked  time.Time // asignado por el servidor (now() en el upsert)
	Quantity     int64     // default 0; compartido con el modo contador
}

// Metadata proyecta los campos de metadatos del registro.
func (r *CachedLookupRecord) Metadata() ProductMetadata {
	return ProductMetadata{Name: r.Name, ImageURL: r.ImageURL, Brands: r.Brands}
}

// ProductInfo resultado de resolver un código de barras: metadatos + cantidad
// actual conocida en el momento de la lectura.
type ProductInfo struct {
	Metadata ProductMetadata
	Quantity int64
}
