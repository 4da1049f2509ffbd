package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despensa-api/internal/application/ports"
	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks
// ──────────────────────────────────────────────────────────────────────────────

// mockRecordRepo almacén en memoria con semántica merge: MergeUpsert nunca
// toca quantity y IncrementQuantity nunca toca los campos de lookup.
type mockRecordRepo struct {
	mu          sync.Mutex
	records     map[string]*entity.CachedLookupRecord
	getCalls    int
	upsertCalls int
	getErr      error
	upsertErr   error
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{records: make(map[string]*entity.CachedLookupRecord)}
}

func (m *mockRecordRepo) GetByBarcode(barcode string) (*entity.CachedLookupRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	rec, ok := m.records[barcode]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *mockRecordRepo) MergeUpsert(rec *entity.CachedLookupRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	cp := *rec
	cp.LastChecked = time.Now()
	if existing, ok := m.records[rec.Barcode]; ok {
		cp.Quantity = existing.Quantity
	}
	m.records[rec.Barcode] = &cp
	return nil
}

func (m *mockRecordRepo) IncrementQuantity(barcode string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[barcode]
	if !ok {
		rec = &entity.CachedLookupRecord{Barcode: barcode}
		m.records[barcode] = rec
	}
	rec.Quantity += delta
	rec.LastChecked = time.Now()
	return nil
}

func (m *mockRecordRepo) Delete(barcode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, barcode)
	return nil
}

type mockAPI struct {
	calls   int64
	delay   time.Duration
	outcome ports.LookupOutcome
	err     error
}

func (m *mockAPI) Fetch(ctx context.Context, barcode string) (ports.LookupOutcome, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	return m.outcome, m.err
}

type mockReach struct{ online bool }

func (m *mockReach) Online(ctx context.Context) bool { return m.online }

func foundOutcome(name, brands, imageURL string) ports.LookupOutcome {
	return ports.LookupOutcome{
		Status:   entity.StatusFound,
		Metadata: entity.ProductMetadata{Name: name, Brands: brands, ImageURL: imageURL},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolve
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_CodigoVacio_SinIO(t *testing.T) {
	repo := newMockRecordRepo()
	api := &mockAPI{}
	uc := NewLookupUseCase(repo, api, &mockReach{online: true})

	info := uc.Resolve(context.Background(), "")

	assert.Nil(t, info)
	assert.Equal(t, 0, repo.getCalls, "no debe leer el almacén")
	assert.Equal(t, int64(0), api.calls, "no debe llamar a la API")
}

func TestResolve_PrimeraResolucion(t *testing.T) {
	repo := newMockRecordRepo()
	api := &mockAPI{outcome: foundOutcome("Acme - Widget", "Acme", "http://x/y.png")}
	uc := NewLookupUseCase(repo, api, &mockReach{online: true})

	info := uc.Resolve(context.Background(), "7501234567890")

	require.NotNil(t, info)
	assert.Equal(t, "Acme - Widget", info.Metadata.Name)
	assert.Equal(t, "Acme", info.Metadata.Brands)
	assert.Equal(t, "http://x/y.png", info.Metadata.ImageURL)
	assert.Equal(t, int64(0), info.Quantity, "caché fría: sin cantidad previa")

	rec, err := repo.GetByBarcode("7501234567890")
	require.NoError(t, err)
	require.NotNil(t, rec, "debe dejar rastro durable")
	assert.Equal(t, entity.StatusFound, rec.LookupStatus)
	assert.Equal(t, "Acme - Widget", rec.Name)
}

func TestResolve_CacheHitIdempotente(t *testing.T) {
	repo := newMockRecordRepo()
	api := &mockAPI{outcome: foundOutcome("Acme - Widget", "Acme", "")}
	uc := NewLookupUseCase(repo, api, &mockReach{online: true})

	first := uc.Resolve(context.Background(), "123")
	second := uc.Resolve(context.Background(), "123")

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Metadata, second.Metadata)
	assert.Equal(t, int64(1), api.calls, "la segunda resolución no debe tocar la API")
}

func TestResolve_NegativoMemorizado(t *testing.T) {
	negatives := []entity.LookupStatus{
		entity.StatusNotFound,
		entity.StatusNoData,
		entity.StatusLookupFailed,
		entity.StatusWasOffline,
	}
	for _, status := range negatives {
		t.Run(string(status), func(t *testing.T) {
			repo := newMockRecordRepo()
			repo.records["999"] = &entity.CachedLookupRecord{
				Barcode:      "999",
				Name:         "Unknown (" + string(status) + ")",
				LookupStatus: status,
			}
			api := &mockAPI{outcome: foundOutcome("algo", "", "")}
			uc := NewLookupUseCase(repo, api, &mockReach{online: true})

			info := uc.Resolve(context.Background(), "999")

			assert.Nil(t, info)
			assert.Equal(t, int64(0), api.calls, "un negativo memorizado nunca reconsulta la API")
		})
	}
}

func TestResolve_EstadoNoReconocido_VaAlFetch(t *testing.T) {
	repo := newMockRecordRepo()
	// Fila creada por un incremento de inventario antes de resolver: sin estado.
	require.NoError(t, repo.IncrementQuantity("555", 4))
	api := &mockAPI{outcome: foundOutcome("Pan", "", "")}
	uc := NewLookupUseCase(repo, api, &mockReach{online: true})

	info := uc.Resolve(context.Background(), "555")

	require.NotNil(t, info)
	assert.Equal(t, int64(1), api.calls)
	assert.Equal(t, int64(4), info.Quantity, "la re-lectura recupera la cantidad preexistente")
}

func TestResolve_OfflineCacheFria_NoEscribe(t *testing.T) {
	repo := newMockRecordRepo()
	api := &mockAPI{outcome: foundOutcome("x", "", "")}
	uc := NewLookupUseCase(repo, api, &mockReach{online: false})

	info := uc.Resolve(context.Background(), "42")

	assert.Nil(t, info)
	assert.Equal(t, int64(0), api.calls)
	assert.Equal(t, 0, repo.upsertCalls, "offline no debe escribir was_offline")
	rec, _ := repo.GetByBarcode("42")
	assert.Nil(t, rec, "no debe quedar registro nuevo")
}

func TestResolve_SinSenalDeRed_EsOffline(t *testing.T) {
	repo := newMockRecordRepo()
	api := &mockAPI{outcome: foundOutcome("x", "", "")}
	uc := NewLookupUseCase(repo, api, nil)

	info := uc.Resolve(context.Background(), "42")

	assert.Nil(t, info)
	assert.Equal(t, int64(0), api.calls)
	assert.Equal(t, 0, repo.upsertCalls)
}

func TestResolve_ResultadoNegativo_SePersiste(t *testing.T) {
	repo := newMockRecordRepo()
	api := &mockAPI{outcome: ports.LookupOutcome{Status: entity.StatusNotFound}}
	uc := NewLookupUseCase(repo, api, &mockReach{online: true})

	info := uc.Resolve(context.Background(), "404404")

	assert.Nil(t, info)
	rec, err := repo.GetByBarcode("404404")
	require.NoError(t, err)
	require.NotNil(t, rec, "el fallo también deja rastro durable")
	assert.Equal(t, entity.StatusNotFound, rec.LookupStatus)

	// Y a partir de ahí queda memorizado.
	_ = uc.Resolve(context.Background(), "404404")
	assert.Equal(t, int64(1), api.calls)
}

func TestResolve_EscrituraCacheFallida_DevuelveMetadatos(t *testing.T) {
	repo := newMockRecordRepo()
	repo.upsertErr = domain.ErrStoreIO
	api := &mockAPI{outcome: foundOutcome("Leche", "Alpina", "")}
	uc := NewLookupUseCase(repo, api, &mockReach{online: true})

	info := uc.Resolve(context.Background(), "77")

	// Disponibilidad sobre consistencia: el fetch exitoso no se descarta.
	require.NotNil(t, info)
	assert.Equal(t, "Leche", info.Metadata.Name)
	assert.Equal(t, int64(0), info.Quantity)
}

func TestResolve_ErrorLecturaCache_SeTrataComoMiss(t *testing.T) {
	repo := newMockRecordRepo()
	repo.getErr = domain.ErrStoreIO
	api := &mockAPI{outcome: foundOutcome("Arroz", "", "")}
	uc := NewLookupUseCase(repo, api, &mockReach{online: true})

	info := uc.Resolve(context.Background(), "88")

	require.NotNil(t, info, "la falla de lectura degrada a miss, no a error")
	assert.Equal(t, int64(1), api.calls)
}

func TestResolve_ConcurrentesCompartenFetch(t *testing.T) {
	repo := newMockRecordRepo()
	api := &mockAPI{outcome: foundOutcome("Café", "", ""), delay: 100 * time.Millisecond}
	uc := NewLookupUseCase(repo, api, &mockReach{online: true})

	var wg sync.WaitGroup
	results := make([]*entity.ProductInfo, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = uc.Resolve(context.Background(), "dup")
		}(i)
	}
	wg.Wait()

	for _, info := range results {
		require.NotNil(t, info)
		assert.Equal(t, "Café", info.Metadata.Name)
	}
	assert.Equal(t, int64(1), api.calls, "las resoluciones concurrentes comparten un único fetch")
}

// ──────────────────────────────────────────────────────────────────────────────
// ClearCached
// ──────────────────────────────────────────────────────────────────────────────

func TestClearCached_RevierteNegativo(t *testing.T) {
	repo := newMockRecordRepo()
	api := &mockAPI{outcome: ports.LookupOutcome{Status: entity.StatusNotFound}}
	uc := NewLookupUseCase(repo, api, &mockReach{online: true})

	_ = uc.Resolve(context.Background(), "11")
	require.Equal(t, int64(1), api.calls)

	// Sin limpieza el negativo es permanente; con limpieza se reintenta.
	require.NoError(t, uc.ClearCached("11"))
	api.outcome = foundOutcome("Ahora sí", "", "")

	info := uc.Resolve(context.Background(), "11")
	require.NotNil(t, info)
	assert.Equal(t, int64(2), api.calls)
}

func TestClearCached_CodigoVacio(t *testing.T) {
	uc := NewLookupUseCase(newMockRecordRepo(), &mockAPI{}, nil)
	assert.ErrorIs(t, uc.ClearCached(""), domain.ErrInvalidInput)
}
