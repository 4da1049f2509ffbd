package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/despensa-api/internal/application/ports"
	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa ProductAPIClient.
var _ ports.ProductAPIClient = (*Client)(nil)

// Campos pedidos a la API; limitar la respuesta abarata la llamada.
const productFields = "product_name,brands,image_url"

// Client adaptador que implementa ProductAPIClient contra la API pública v2
// de Open Food Facts. Usa net/http de la librería estándar; no requiere SDK.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el adaptador. baseURL suele ser
// https://world.openfoodfacts.org; timeout es el límite de red por petición.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// offResponse payload de GET /api/v2/product/{barcode}.json.
// status 0 = código conocido pero sin producto.
type offResponse struct {
	Status  int `json:"status"`
	Product *struct {
		ProductName string `json:"product_name"`
		Brands      string `json:"brands"`
		ImageURL    string `json:"image_url"`
	} `json:"product"`
}

// Fetch consulta el código y clasifica la respuesta en exactamente un estado:
//
//	404                                  -> not_found
//	otro non-2xx, error de transporte    -> lookup_failed
//	2xx sin producto o sin nombre        -> no_data
//	2xx con nombre                       -> found ("marca - nombre" si hay marca)
//
// err acompaña únicamente a lookup_failed, como diagnóstico.
func (c *Client) Fetch(ctx context.Context, barcode string) (ports.LookupOutcome, error) {
	url := fmt.Sprintf("%s/api/v2/product/%s.json?fields=%s", c.baseURL, barcode, productFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.LookupOutcome{Status: entity.StatusLookupFailed},
			fmt.Errorf("%w: build request: %v", domain.ErrAPIRequestFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.LookupOutcome{Status: entity.StatusLookupFailed},
			fmt.Errorf("%w: %v", domain.ErrAPIRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ports.LookupOutcome{Status: entity.StatusNotFound}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ports.LookupOutcome{Status: entity.StatusLookupFailed},
			fmt.Errorf("%w: status %d", domain.ErrAPIRequestFailed, resp.StatusCode)
	}

	var body offResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.LookupOutcome{Status: entity.StatusLookupFailed},
			fmt.Errorf("%w: decode response: %v", domain.ErrAPIRequestFailed, err)
	}

	if body.Status == 0 || body.Product == nil || body.Product.ProductName == "" {
		return ports.LookupOutcome{Status: entity.StatusNoData}, nil
	}

	name := body.Product.ProductName
	displayName := name
	if body.Product.Brands != "" {
		displayName = body.Product.Brands + " - " + name
	}
	return ports.LookupOutcome{
		Status: entity.StatusFound,
		Metadata: entity.ProductMetadata{
			Name:     strings.TrimSpace(displayName),
			ImageURL: body.Product.ImageURL,
			Brands:   body.Product.Brands,
		},
	}, nil
}
