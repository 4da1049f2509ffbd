package usecase

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/despensa-api/internal/application/ports"
	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
)

// LookupUseCase resuelve códigos de barras a metadatos de producto con
// cache-aside sobre el almacén remoto y memorización de resultados negativos.
// Toda falla (almacén, red, API externa) se maneja localmente y degrada a un
// resultado nulo; el caller solo observa ProductInfo o nil.
type LookupUseCase struct {
	records repository.LookupRecordRepository
	api     ports.ProductAPIClient
	reach   ports.ReachabilityChecker
	flight  singleflight.Group
}

// NewLookupUseCase construye el caso de uso. reach puede ser nil: la ausencia
// de señal de conectividad se trata como offline.
func NewLookupUseCase(
	records repository.LookupRecordRepository,
	api ports.ProductAPIClient,
	reach ports.ReachabilityChecker,
) *LookupUseCase {
	return &LookupUseCase{records: records, api: api, reach: reach}
}

// Resolve devuelve los metadatos y la cantidad actual de un código de barras,
// o nil si no se pudo resolver (código vacío, offline con caché fría,
// resultado negativo memorizado o fallo de infraestructura).
//
// Algoritmo:
//  1. leer la caché; found con nombre → hit terminal.
//  2. estado negativo memorizado → nil sin tocar la API (sin TTL; solo la
//     limpieza explícita de caché lo revierte).
//  3. miss (o estado no reconocido) → fetch + clasificación + escritura merge.
//  4. en found, re-lectura del registro para obtener la cantidad autoritativa
//     (el merge pudo competir con un incremento concurrente de inventario).
//
// Errores de lectura/escritura de caché se registran y se tratan como miss;
// repetir la llamada tras un registro terminal es una lectura pura.
func (uc *LookupUseCase) Resolve(ctx context.Context, barcode string) *entity.ProductInfo {
	if barcode == "" {
		log.Warn().Msg("código de barras vacío en Resolve")
		return nil
	}
	if uc.records == nil {
		log.Error().Msg("almacén remoto no inicializado en Resolve")
		return nil
	}

	rec, err := uc.records.GetByBarcode(barcode)
	if err != nil {
		// Falla de lectura de caché: continuar como miss, no propagar.
		log.Warn().Err(err).Str("barcode", barcode).Msg("lectura de caché falló; se continúa al fetch")
		rec = nil
	}
	if rec != nil {
		if rec.LookupStatus == entity.StatusFound && rec.Name != "" {
			log.Debug().Str("barcode", barcode).Str("name", rec.Name).Msg("cache hit")
			return &entity.ProductInfo{Metadata: rec.Metadata(), Quantity: rec.Quantity}
		}
		if rec.LookupStatus.IsNegative() {
			log.Debug().Str("barcode", barcode).Str("status", string(rec.LookupStatus)).
				Msg("resultado negativo memorizado; se omite la API externa")
			return nil
		}
		// Registro sin estado reconocido: continuar al fetch.
	}

	// Resoluciones concurrentes del mismo código con caché fría comparten un
	// único fetch en vuelo en lugar de duplicar llamadas a la API externa.
	v, _, _ := uc.flight.Do(barcode, func() (any, error) {
		return uc.fetchAndCache(ctx, barcode), nil
	})
	info, _ := v.(*entity.ProductInfo)
	return info
}

// fetchAndCache consulta la API externa, persiste el resultado clasificado
// (éxito o fallo) con una escritura merge y devuelve los metadatos en found.
func (uc *LookupUseCase) fetchAndCache(ctx context.Context, barcode string) *entity.ProductInfo {
	// Offline: nil inmediato y SIN escribir was_offline, para que un retry
	// posterior con conexión no quede bloqueado por un negativo rancio.
	if uc.reach == nil || !uc.reach.Online(ctx) {
		log.Info().Str("barcode", barcode).Msg("sin conexión: no se consulta la API ni se escribe la caché")
		return nil
	}

	outcome, err := uc.api.Fetch(ctx, barcode)
	if err != nil {
		log.Warn().Err(err).Str("barcode", barcode).Str("status", string(outcome.Status)).
			Msg("consulta a la API externa falló")
	}

	rec := &entity.CachedLookupRecord{Barcode: barcode, LookupStatus: outcome.Status}
	if outcome.Status == entity.StatusFound {
		rec.Name = outcome.Metadata.Name
		rec.ImageURL = outcome.Metadata.ImageURL
		rec.Brands = outcome.Metadata.Brands
	} else {
		// Nombre placeholder para registros negativos; found exige nombre real.
		rec.Name = "Unknown (" + string(outcome.Status) + ")"
	}

	// Persistir siempre el desenlace: todo código consultado deja rastro
	// durable y no se repite la misma llamada fallida en sesiones futuras.
	if err := uc.records.MergeUpsert(rec); err != nil {
		// Best-effort: un fetch exitoso no se descarta porque falló la caché.
		log.Error().Err(err).Str("barcode", barcode).Msg("escritura de caché falló")
		if outcome.Status == entity.StatusFound {
			return &entity.ProductInfo{Metadata: outcome.Metadata, Quantity: 0}
		}
		return nil
	}
	log.Debug().Str("barcode", barcode).Str("status", string(outcome.Status)).Msg("resultado cacheado")

	if outcome.Status != entity.StatusFound {
		return nil
	}

	// Segunda lectura: cantidad autoritativa al momento de la respuesta.
	final, err := uc.records.GetByBarcode(barcode)
	if err != nil || final == nil {
		log.Warn().Err(err).Str("barcode", barcode).
			Msg("re-lectura tras cachear falló; se devuelve cantidad 0")
		return &entity.ProductInfo{Metadata: outcome.Metadata, Quantity: 0}
	}
	return &entity.ProductInfo{Metadata: outcome.Metadata, Quantity: final.Quantity}
}

// ClearCached elimina el registro cacheado de un código (invalidación fuera
// de banda; única vía para revertir un estado negativo memorizado).
func (uc *LookupUseCase) ClearCached(barcode string) error {
	if barcode == "" {
		return domain.ErrInvalidInput
	}
	if uc.records == nil {
		return domain.ErrStoreUnavailable
	}
	return uc.records.Delete(barcode)
}
