package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/warehouse-manager/internal/domain"
	"github.com/jhoicas/warehouse-manager/internal/domain/entity"
	"github.com/jhoicas/warehouse-manager/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementación in-memory de repository.ProductRepository.
type ProductRepository struct {
	store *Store
}

// Add asigna el siguiente ID y guarda una copia.
func (r *ProductRepository) Add(_ context.Context, product *entity.Product) error {
	if product == nil {
		return domain.ErrInvalidInput
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.cur.nextProductID++
	product.ID = r.store.cur.nextProductID
	product.UpdatedAt = r.store.now()
	r.store.cur.products[product.ID] = *product
	return nil
}

// Get devuelve una copia o (nil, nil) si no existe.
func (r *ProductRepository) Get(_ context.Context, id int64) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.cur.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// List devuelve los productos activos ordenados por ID.
func (r *ProductRepository) List(_ context.Context) ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]*entity.Product, 0, len(r.store.cur.products))
	for _, p := range r.store.cur.products {
		if !p.IsActive {
			continue
		}
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Update sobrescribe el producto; no hace nada si ya no existe.
func (r *ProductRepository) Update(_ context.Context, product *entity.Product) error {
	if product == nil {
		return domain.ErrInvalidInput
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.cur.products[product.ID]; !ok {
		return nil
	}
	product.UpdatedAt = r.store.now()
	r.store.cur.products[product.ID] = *product
	return nil
}

// Delete elimina el producto por ID. Falla si algún pedido lo referencia,
// como la FK RESTRICT de order_products.
func (r *ProductRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if orderID, ok := r.store.cur.references(id); ok {
		return fmt.Errorf("producto %d referenciado por el pedido %d: %w", id, orderID, domain.ErrProductInUse)
	}
	delete(r.store.cur.products, id)
	return nil
}
