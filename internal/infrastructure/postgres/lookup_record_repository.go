package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
)

var _ repository.LookupRecordRepository = (*LookupRecordRepo)(nil)

// LookupRecordRepo implementación de LookupRecordRepository sobre PostgreSQL
// (usable con pool o tx). La tabla product_metadata es a la vez caché de
// lookup y contador de cantidad: un solo registro por código de barras.
type LookupRecordRepo struct {
	q Querier
}

// NewLookupRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLookupRecordRepository(q Querier) *LookupRecordRepo {
	return &LookupRecordRepo{q: q}
}

// GetByBarcode obtiene el registro cacheado de un código, o nil si no existe.
func (r *LookupRecordRepo) GetByBarcode(barcode string) (*entity.CachedLookupRecord, error) {
	query := `
		SELECT barcode, name, image_url, brands, lookup_status, last_checked, quantity
		FROM product_metadata WHERE barcode = $1`
	var rec entity.CachedLookupRecord
	var name, imageURL, brands, status *string
	err := r.q.QueryRow(context.Background(), query, barcode).Scan(
		&rec.Barcode, &name, &imageURL, &brands, &status, &rec.LastChecked, &rec.Quantity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lookup record: %w", err)
	}
	if name != nil {
		rec.Name = *name
	}
	if imageURL != nil {
		rec.ImageURL = *imageURL
	}
	if brands != nil {
		rec.Brands = *brands
	}
	if status != nil {
		rec.LookupStatus = entity.LookupStatus(*status)
	}
	return &rec, nil
}

// MergeUpsert escribe los campos de lookup del registro con semántica merge:
// quantity nunca aparece en el upsert, así una escritura concurrente del modo
// contador no se pierde. last_checked lo asigna el servidor (now()).
func (r *LookupRecordRepo) MergeUpsert(rec *entity.CachedLookupRecord) error {
	query := `
		INSERT INTO product_metadata (barcode, name, image_url, brands, lookup_status, last_checked)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (barcode)
		DO UPDATE SET name = EXCLUDED.name, image_url = EXCLUDED.image_url,
			brands = EXCLUDED.brands, lookup_status = EXCLUDED.lookup_status,
			last_checked = now()`
	_, err := r.q.Exec(context.Background(), query,
		rec.Barcode, nullable(rec.Name), nullable(rec.ImageURL), nullable(rec.Brands),
		string(rec.LookupStatus),
	)
	if err != nil {
		return fmt.Errorf("merge upsert lookup record: %w", err)
	}
	return nil
}

// IncrementQuantity aplica quantity = quantity + delta de forma atómica en el
// servidor (no read-modify-write del cliente: incrementos concurrentes no se
// pierden). Crea la fila si el código aún no tiene registro.
func (r *LookupRecordRepo) IncrementQuantity(barcode string, delta int64) error {
	query := `
		INSERT INTO product_metadata (barcode, quantity, last_checked)
		VALUES ($1, $2, now())
		ON CONFLICT (barcode)
		DO UPDATE SET quantity = product_metadata.quantity + EXCLUDED.quantity,
			last_checked = now()`
	_, err := r.q.Exec(context.Background(), query, barcode, delta)
	if err != nil {
		return fmt.Errorf("increment quantity: %w", err)
	}
	return nil
}

// Delete elimina el registro cacheado de un código.
func (r *LookupRecordRepo) Delete(barcode string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM product_metadata WHERE barcode = $1`, barcode)
	if err != nil {
		return fmt.Errorf("delete lookup record: %w", err)
	}
	return nil
}

// nullable convierte "" en NULL para columnas opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
