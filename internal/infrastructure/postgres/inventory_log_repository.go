package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo implementación append-only de InventoryLogRepository sobre
// PostgreSQL. Solo INSERT y SELECT: las entradas nunca se actualizan ni
// borran.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Append inserta una entrada nueva; ts lo asigna el servidor (now()).
func (r *InventoryLogRepo) Append(entry *entity.InventoryLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_log (id, barcode, delta, ts)
		VALUES ($1, $2, $3, now())`
	_, err := r.q.Exec(context.Background(), query, entry.ID, entry.Barcode, entry.Delta)
	if err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	return nil
}

// DeltasByBarcode devuelve los deltas crudos de un código en orden de
// inserción. Un delta NULL se devuelve como nil (entrada con dato inválido;
// el caso de uso la salta con warning).
func (r *InventoryLogRepo) DeltasByBarcode(barcode string) ([]*int64, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT delta FROM inventory_log WHERE barcode = $1 ORDER BY ts`, barcode)
	if err != nil {
		return nil, fmt.Errorf("deltas by barcode: %w", err)
	}
	defer rows.Close()
	var deltas []*int64
	for rows.Next() {
		var d *int64
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan delta: %w", err)
		}
		deltas = append(deltas, d)
	}
	return deltas, rows.Err()
}

// ListByBarcode devuelve las entradas completas de un código, más recientes
// primero (historial auditable).
func (r *InventoryLogRepo) ListByBarcode(barcode string) ([]*entity.InventoryLogEntry, error) {
	query := `
		SELECT id, barcode, delta, ts
		FROM inventory_log WHERE barcode = $1 ORDER BY ts DESC`
	rows, err := r.q.Query(context.Background(), query, barcode)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLogEntry
	for rows.Next() {
		var e entity.InventoryLogEntry
		var delta *int64
		if err := rows.Scan(&e.ID, &e.Barcode, &delta, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		if delta != nil {
			e.Delta = *delta
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
