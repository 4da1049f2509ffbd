package ports

import (
	"context"

	"github.com/jhoicas/despensa-api/internal/domain/entity"
)

// LookupOutcome resultado clasificado de una consulta a la API externa de
// productos. Status es exactamente uno de found/not_found/no_data/
// lookup_failed; Metadata solo es válido cuando Status == found.
type LookupOutcome struct {
	Status   entity.LookupStatus
	Metadata entity.ProductMetadata
}

// ProductAPIClient puerto hacia la API pública de productos
// (GET /product/{barcode}). La clasificación de la respuesta en un estado
// terminal es responsabilidad del adaptador; err solo se devuelve junto a
// Status == lookup_failed para diagnóstico.
type ProductAPIClient interface {
	Fetch(ctx context.Context, barcode string) (LookupOutcome, error)
}

// ReachabilityChecker señal de conectividad de red. La ausencia de señal se
// trata como offline (el caller pasa un checker nil o uno que devuelve false).
type ReachabilityChecker interface {
	Online(ctx context.Context) bool
}
