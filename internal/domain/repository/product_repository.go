package repository

import (
	"context"

	"github.com/jhoicas/warehouse-manager/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Add persiste el producto y le asigna ID.
	Add(ctx context.Context, product *entity.Product) error
	// Get devuelve (nil, nil) si no existe.
	Get(ctx context.Context, id int64) (*entity.Product, error)
	// List devuelve solo productos activos.
	List(ctx context.Context) ([]*entity.Product, error)
	// Update no hace nada si el producto ya no existe.
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
}
