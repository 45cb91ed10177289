package repository

import (
	"context"

	"github.com/jhoicas/warehouse-manager/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	// Add persiste el pedido con sus productos, asigna ID y marcas de tiempo.
	Add(ctx context.Context, order *entity.Order) error
	// Get devuelve (nil, nil) si no existe o fue eliminado.
	Get(ctx context.Context, id int64) (*entity.Order, error)
	// List devuelve los pedidos no eliminados.
	List(ctx context.Context) ([]*entity.Order, error)
	// Update reemplaza dirección y secuencia de productos; no hace nada si el pedido ya no existe.
	Update(ctx context.Context, order *entity.Order) error
	// Delete es un borrado lógico.
	Delete(ctx context.Context, id int64) error
	// DeleteOneQuantityProduct quita una sola ocurrencia del producto.
	// Devuelve domain.ErrNotFound si el producto no está en el pedido.
	DeleteOneQuantityProduct(ctx context.Context, order *entity.Order, product *entity.Product) (*entity.Order, error)
	// DeleteProduct quita todas las ocurrencias del producto.
	// Devuelve domain.ErrNotFound si el producto no está en el pedido.
	DeleteProduct(ctx context.Context, order *entity.Order, product *entity.Product) (*entity.Order, error)
}
