package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 2*time.Second), srv
}

func TestFetch_Found_ComponeNombreConMarca(t *testing.T) {
	var gotPath, gotQuery string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":1,"product":{"product_name":"Widget","brands":"Acme","image_url":"http://x/y.png"}}`))
	})
	defer srv.Close()

	out, err := client.Fetch(context.Background(), "7501234567890")

	require.NoError(t, err)
	assert.Equal(t, "/api/v2/product/7501234567890.json", gotPath)
	assert.Equal(t, "fields=product_name,brands,image_url", gotQuery)
	assert.Equal(t, entity.StatusFound, out.Status)
	assert.Equal(t, "Acme - Widget", out.Metadata.Name)
	assert.Equal(t, "Acme", out.Metadata.Brands)
	assert.Equal(t, "http://x/y.png", out.Metadata.ImageURL)
}

func TestFetch_Found_SinMarca(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":1,"product":{"product_name":"Widget"}}`))
	})
	defer srv.Close()

	out, err := client.Fetch(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, entity.StatusFound, out.Status)
	assert.Equal(t, "Widget", out.Metadata.Name)
	assert.Empty(t, out.Metadata.Brands)
}

func TestFetch_404_NotFound(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	out, err := client.Fetch(context.Background(), "1")

	require.NoError(t, err, "404 es un desenlace clasificado, no un fallo")
	assert.Equal(t, entity.StatusNotFound, out.Status)
}

func TestFetch_Non2xx_LookupFailed(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	out, err := client.Fetch(context.Background(), "1")

	assert.Equal(t, entity.StatusLookupFailed, out.Status)
	assert.ErrorIs(t, err, domain.ErrAPIRequestFailed)
}

func TestFetch_Status0_NoData(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":0}`))
	})
	defer srv.Close()

	out, err := client.Fetch(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, entity.StatusNoData, out.Status)
}

func TestFetch_SinNombre_NoData(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":1,"product":{"product_name":""}}`))
	})
	defer srv.Close()

	out, err := client.Fetch(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, entity.StatusNoData, out.Status)
}

func TestFetch_JSONInvalido_LookupFailed(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`no es json`))
	})
	defer srv.Close()

	out, err := client.Fetch(context.Background(), "1")

	assert.Equal(t, entity.StatusLookupFailed, out.Status)
	assert.ErrorIs(t, err, domain.ErrAPIRequestFailed)
}

func TestFetch_ErrorDeTransporte_LookupFailed(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // servidor caído: error de red en vuelo

	out, err := client.Fetch(context.Background(), "1")

	assert.Equal(t, entity.StatusLookupFailed, out.Status)
	assert.ErrorIs(t, err, domain.ErrAPIRequestFailed)
}
