package dto

import "github.com/jhoicas/despensa-api/internal/domain/entity"

// ProductInfoResponse respuesta de GET /api/products/:barcode.
type ProductInfoResponse struct {
	Barcode  string `json:"barcode"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
	Brands   string `json:"brands,omitempty"`
	Quantity int64  `json:"quantity"`
}

// ToProductInfoResponse proyecta el resultado del caso de uso.
func ToProductInfoResponse(barcode string, info *entity.ProductInfo) *ProductInfoResponse {
	if info == nil {
		return nil
	}
	return &ProductInfoResponse{
		Barcode:  barcode,
		Name:     info.Metadata.Name,
		ImageURL: info.Metadata.ImageURL,
		Brands:   info.Metadata.Brands,
		Quantity: info.Quantity,
	}
}
