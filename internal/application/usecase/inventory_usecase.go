package usecase

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
)

// Strategy estrategia de seguimiento de cantidades, elegida al construir el
// caso de uso (no dos caminos siempre vivos).
type Strategy string

const (
	// StrategyCounter contador mutable: incremento atómico del lado del
	// servidor sobre quantity en el registro del código.
	StrategyCounter Strategy = "counter"
	// StrategyLedger log append-only: cada ajuste es una entrada inmutable y
	// la cantidad se recalcula sumando deltas en la lectura.
	StrategyLedger Strategy = "ledger"
)

// ParseStrategy valida el valor de configuración; default ledger.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyCounter:
		return StrategyCounter, nil
	case StrategyLedger, "":
		return StrategyLedger, nil
	}
	return "", fmt.Errorf("estrategia de inventario desconocida: %q", s)
}

// InventoryUseCase registra deltas de cantidad por código de barras.
//
// Modo contador: requiere que el incremento del almacén sea atómico en el
// servidor (un read-modify-write plano perdería updates concurrentes).
// Modo ledger: concurrencia-seguro por construcción (las escrituras nunca
// compiten por el mismo campo) a cambio de lectura O(n) y con historial
// auditable.
type InventoryUseCase struct {
	strategy Strategy
	records  repository.LookupRecordRepository
	entries  repository.InventoryLogRepository
}

// NewInventoryUseCase construye el caso de uso con la estrategia elegida.
func NewInventoryUseCase(
	strategy Strategy,
	records repository.LookupRecordRepository,
	entries repository.InventoryLogRepository,
) *InventoryUseCase {
	return &InventoryUseCase{strategy: strategy, records: records, entries: entries}
}

// Strategy devuelve la estrategia activa.
func (uc *InventoryUseCase) Strategy() Strategy { return uc.strategy }

// Adjust aplica un delta con la estrategia configurada. Delta con signo, sin
// clamp a cero: los negativos representan consumo y la cantidad puede quedar
// negativa.
func (uc *InventoryUseCase) Adjust(barcode string, delta int64) error {
	if uc.strategy == StrategyCounter {
		return uc.IncrementCounter(barcode, delta)
	}
	return uc.AppendLogEntry(barcode, delta)
}

// IncrementCounter aplica un incremento atómico sobre quantity en el registro
// del código y refresca last_checked. Código vacío: no-op con diagnóstico.
func (uc *InventoryUseCase) IncrementCounter(barcode string, delta int64) error {
	if barcode == "" {
		log.Warn().Msg("código de barras vacío en IncrementCounter")
		return domain.ErrInvalidInput
	}
	if uc.records == nil {
		log.Error().Msg("almacén remoto no inicializado en IncrementCounter")
		return domain.ErrStoreUnavailable
	}
	if err := uc.records.IncrementQuantity(barcode, delta); err != nil {
		return fmt.Errorf("increment counter: %w", err)
	}
	return nil
}

// AppendLogEntry crea una entrada inmutable del log; nunca muta el total.
// Código vacío: no-op con diagnóstico.
func (uc *InventoryUseCase) AppendLogEntry(barcode string, delta int64) error {
	if barcode == "" {
		log.Warn().Msg("código de barras vacío en AppendLogEntry")
		return domain.ErrInvalidInput
	}
	if uc.entries == nil {
		log.Error().Msg("almacén remoto no inicializado en AppendLogEntry")
		return domain.ErrStoreUnavailable
	}
	if err := uc.entries.Append(&entity.InventoryLogEntry{Barcode: barcode, Delta: delta}); err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	return nil
}

// SumLog recalcula la cantidad de un código sumando los deltas de todas sus
// entradas (0 si no hay). Deltas ausentes o no numéricos se saltan y se
// registran como warning de calidad de datos, no como error.
func (uc *InventoryUseCase) SumLog(barcode string) (int64, error) {
	if barcode == "" {
		log.Warn().Msg("código de barras vacío en SumLog")
		return 0, domain.ErrInvalidInput
	}
	if uc.entries == nil {
		return 0, domain.ErrStoreUnavailable
	}
	deltas, err := uc.entries.DeltasByBarcode(barcode)
	if err != nil {
		return 0, fmt.Errorf("sum log: %w", err)
	}
	var total int64
	skipped := 0
	for _, d := range deltas {
		if d == nil {
			skipped++
			continue
		}
		total += *d
	}
	if skipped > 0 {
		log.Warn().Str("barcode", barcode).Int("skipped", skipped).
			Msg("entradas del log con delta inválido omitidas en la suma")
	}
	return total, nil
}

// Quantity devuelve la cantidad actual según la estrategia activa: suma del
// log bajo ledger, campo quantity del registro bajo contador (0 si no existe).
func (uc *InventoryUseCase) Quantity(barcode string) (int64, error) {
	if uc.strategy == StrategyLedger {
		return uc.SumLog(barcode)
	}
	if barcode == "" {
		return 0, domain.ErrInvalidInput
	}
	if uc.records == nil {
		return 0, domain.ErrStoreUnavailable
	}
	rec, err := uc.records.GetByBarcode(barcode)
	if err != nil {
		return 0, fmt.Errorf("get quantity: %w", err)
	}
	if rec == nil {
		return 0, nil
	}
	return rec.Quantity, nil
}

// History devuelve las entradas del log de un código (historial auditable).
func (uc *InventoryUseCase) History(barcode string) ([]*entity.InventoryLogEntry, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.entries == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return uc.entries.ListByBarcode(barcode)
}
