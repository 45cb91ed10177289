package dto

import (
	"time"

	"github.com/jhoicas/warehouse-manager/internal/domain/entity"
)

// CreateOrderRequest entrada para crear un pedido. ProductIDs admite repetidos.
type CreateOrderRequest struct {
	ProductIDs []int64 `json:"product_ids"`
	Address    string  `json:"address"`
}

// UpdateOrderRequest reemplaza la secuencia completa de productos.
type UpdateOrderRequest struct {
	ProductIDs []int64 `json:"product_ids"`
}

// OrderResponse salida de pedido con sus productos en orden.
type OrderResponse struct {
	ID        int64             `json:"id"`
	Address   string            `json:"address"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Products  []ProductResponse `json:"products"`
}

// OrderListResponse listado de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
}

// NewOrderResponse mapea la entidad a su respuesta.
func NewOrderResponse(o *entity.Order) OrderResponse {
	products := make([]ProductResponse, 0, len(o.Products))
	for i := range o.Products {
		products = append(products, NewProductResponse(&o.Products[i]))
	}
	return OrderResponse{
		ID:        o.ID,
		Address:   o.Address,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Products:  products,
	}
}

// NewOrderListResponse mapea un listado de pedidos.
func NewOrderListResponse(list []*entity.Order) OrderListResponse {
	items := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, NewOrderResponse(o))
	}
	return OrderListResponse{Items: items}
}
