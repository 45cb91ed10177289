package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/warehouse-manager/internal/domain"
	"github.com/jhoicas/warehouse-manager/internal/domain/entity"
	"github.com/jhoicas/warehouse-manager/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepository)(nil)

// OrderRepository implementación in-memory de repository.OrderRepository.
// Guarda los IDs de productos en orden; cada lectura devuelve el estado actual de esos productos.
type OrderRepository struct {
	store *Store
}

// Add asigna ID y sella las marcas de tiempo.
func (r *OrderRepository) Add(_ context.Context, order *entity.Order) error {
	if order == nil {
		return domain.ErrInvalidInput
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now()
	r.store.cur.nextOrderID++
	order.ID = r.store.cur.nextOrderID
	order.CreatedAt = now
	order.UpdatedAt = now
	r.store.cur.orders[order.ID] = orderRow{
		id:         order.ID,
		address:    order.Address,
		createdAt:  order.CreatedAt,
		updatedAt:  order.UpdatedAt,
		productIDs: order.ProductIDs(),
	}
	return nil
}

// Get devuelve el pedido o (nil, nil) si no existe o está eliminado.
func (r *OrderRepository) Get(_ context.Context, id int64) (*entity.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.cur.orders[id]
	if !ok || row.deleted {
		return nil, nil
	}
	return r.toEntity(row), nil
}

// List devuelve los pedidos no eliminados ordenados por ID.
func (r *OrderRepository) List(_ context.Context) ([]*entity.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]*entity.Order, 0, len(r.store.cur.orders))
	for _, row := range r.store.cur.orders {
		if row.deleted {
			continue
		}
		list = append(list, r.toEntity(row))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Update reemplaza dirección y productos; no hace nada si el pedido no existe.
func (r *OrderRepository) Update(_ context.Context, order *entity.Order) error {
	if order == nil {
		return domain.ErrInvalidInput
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.cur.orders[order.ID]
	if !ok || row.deleted {
		return nil
	}
	row.address = order.Address
	row.productIDs = order.ProductIDs()
	row.updatedAt = r.store.now()
	r.store.cur.orders[order.ID] = row

	order.CreatedAt = row.createdAt
	order.UpdatedAt = row.updatedAt
	return nil
}

// Delete marca el pedido como eliminado.
func (r *OrderRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.cur.orders[id]
	if !ok {
		return nil
	}
	row.deleted = true
	r.store.cur.orders[id] = row
	return nil
}

// DeleteOneQuantityProduct quita una ocurrencia del producto del pedido.
func (r *OrderRepository) DeleteOneQuantityProduct(ctx context.Context, order *entity.Order, product *entity.Product) (*entity.Order, error) {
	rest, ok := order.WithoutOneProduct(product.ID)
	if !ok {
		return nil, productNotInOrder(order, product)
	}
	return r.replaceProducts(ctx, order, rest)
}

// DeleteProduct quita todas las ocurrencias del producto del pedido.
func (r *OrderRepository) DeleteProduct(ctx context.Context, order *entity.Order, product *entity.Product) (*entity.Order, error) {
	if !order.HasProduct(product.ID) {
		return nil, productNotInOrder(order, product)
	}
	return r.replaceProducts(ctx, order, order.WithoutProduct(product.ID))
}

func (r *OrderRepository) replaceProducts(ctx context.Context, order *entity.Order, products []entity.Product) (*entity.Order, error) {
	updated := order.Clone()
	updated.Products = products
	if err := r.Update(ctx, updated); err != nil {
		return nil, err
	}
	got, err := r.Get(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if got == nil {
		return nil, domain.NewNotFound(domain.EntityOrder, order.ID)
	}
	return got, nil
}

// toEntity resuelve los productos actuales del pedido. Requiere el lock tomado.
func (r *OrderRepository) toEntity(row orderRow) *entity.Order {
	products := make([]entity.Product, 0, len(row.productIDs))
	for _, pid := range row.productIDs {
		if p, ok := r.store.cur.products[pid]; ok {
			products = append(products, p)
		}
	}
	return &entity.Order{
		ID:        row.id,
		Address:   row.address,
		CreatedAt: row.createdAt,
		UpdatedAt: row.updatedAt,
		Products:  products,
	}
}

func productNotInOrder(order *entity.Order, product *entity.Product) error {
	return fmt.Errorf("producto %d (%s) no está en el pedido %d: %w", product.ID, product.Name, order.ID, domain.ErrNotFound)
}
