package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-manager/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. IsActive nil equivale a true.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	IsActive *bool           `json:"is_active"`
}

// Active resuelve el valor por defecto de IsActive.
func (r CreateProductRequest) Active() bool {
	if r.IsActive == nil {
		return true
	}
	return *r.IsActive
}

// UpdateProductRequest entrada para actualización parcial: solo se aplican los campos no nil.
type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	Quantity *int             `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
}

// IsEmpty indica que no se suministró ningún campo.
func (r UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && r.Quantity == nil && r.Price == nil
}

// ProductResponse salida de producto.
type ProductResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	IsActive  bool            `json:"is_active"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse listado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}

// NewProductResponse mapea la entidad a su respuesta.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Quantity:  p.Quantity,
		Price:     p.Price,
		IsActive:  p.IsActive,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewProductListResponse mapea un listado de entidades.
func NewProductListResponse(list []*entity.Product) ProductListResponse {
	items := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, NewProductResponse(p))
	}
	return ProductListResponse{Items: items}
}
