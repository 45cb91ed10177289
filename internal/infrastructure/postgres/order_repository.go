package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-manager/internal/domain"
	"github.com/jhoicas/warehouse-manager/internal/domain/entity"
	"github.com/jhoicas/warehouse-manager/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

var orderColumns = []string{"id", "address", "create_datetime", "update_datetime"}

type orderRecord struct {
	ID             int64     `db:"id"`
	Address        string    `db:"address"`
	CreateDatetime time.Time `db:"create_datetime"`
	UpdateDatetime time.Time `db:"update_datetime"`
}

// orderProductRecord es un producto del pedido junto con su posición.
type orderProductRecord struct {
	OrderID        int64           `db:"order_id"`
	Position       int             `db:"position"`
	ID             int64           `db:"id"`
	Name           string          `db:"name"`
	Quantity       int             `db:"quantity"`
	Price          decimal.Decimal `db:"price"`
	IsActive       bool            `db:"is_active"`
	UpdateDatetime time.Time       `db:"update_datetime"`
}

func (r orderProductRecord) toEntity() entity.Product {
	return entity.Product{
		ID:        r.ID,
		Name:      r.Name,
		Quantity:  r.Quantity,
		Price:     r.Price,
		IsActive:  r.IsActive,
		UpdatedAt: r.UpdateDatetime,
	}
}

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Los productos se guardan en order_products con su posición, lo que conserva orden y repetidos.
type OrderRepo struct {
	tx *TxRunner
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(tx *TxRunner) *OrderRepo {
	return &OrderRepo{tx: tx}
}

// Add inserta el pedido y sus productos. Las marcas de tiempo las pone la base.
// Debe llamarse dentro de una unidad de trabajo para que ambas inserciones sean atómicas.
func (r *OrderRepo) Add(ctx context.Context, order *entity.Order) error {
	q := r.tx.Querier(ctx)

	query, args, err := builder.Insert(ordersTable).
		Columns("address").
		Values(order.Address).
		Suffix("RETURNING id, create_datetime, update_datetime").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert order: %w", err)
	}
	if err := q.QueryRow(ctx, query, args...).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return r.insertProducts(ctx, q, order.ID, order.ProductIDs())
}

// Get obtiene un pedido con sus productos; (nil, nil) si no existe o fue eliminado.
func (r *OrderRepo) Get(ctx context.Context, id int64) (*entity.Order, error) {
	q := r.tx.Querier(ctx)

	query, args, err := builder.Select(orderColumns...).
		From(ordersTable).
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get order: %w", err)
	}

	var rec orderRecord
	if err := pgxscan.Get(ctx, q, &rec, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	products, err := r.loadProducts(ctx, q, []int64{id})
	if err != nil {
		return nil, err
	}
	return toOrder(rec, products[id]), nil
}

// List lista los pedidos no eliminados, ordenados por ID.
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	q := r.tx.Querier(ctx)

	query, args, err := builder.Select(orderColumns...).
		From(ordersTable).
		Where(squirrel.Eq{"is_deleted": false}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list orders: %w", err)
	}

	var recs []orderRecord
	if err := pgxscan.Select(ctx, q, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(recs) == 0 {
		return []*entity.Order{}, nil
	}

	ids := make([]int64, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}
	products, err := r.loadProducts(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	list := make([]*entity.Order, 0, len(recs))
	for _, rec := range recs {
		list = append(list, toOrder(rec, products[rec.ID]))
	}
	return list, nil
}

// Update reemplaza dirección y productos y refresca update_datetime.
// Si el pedido no existe o fue eliminado no hace nada.
func (r *OrderRepo) Update(ctx context.Context, order *entity.Order) error {
	q := r.tx.Querier(ctx)

	query, args, err := builder.Update(ordersTable).
		Set("address", order.Address).
		Set("update_datetime", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": order.ID, "is_deleted": false}).
		Suffix("RETURNING update_datetime").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update order: %w", err)
	}
	if err := q.QueryRow(ctx, query, args...).Scan(&order.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("update order: %w", err)
	}

	delQuery, delArgs, err := builder.Delete(orderProductsTable).
		Where(squirrel.Eq{"order_id": order.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete order products: %w", err)
	}
	if _, err := q.Exec(ctx, delQuery, delArgs...); err != nil {
		return fmt.Errorf("delete order products: %w", err)
	}

	return r.insertProducts(ctx, q, order.ID, order.ProductIDs())
}

// Delete marca el pedido como eliminado (borrado lógico).
func (r *OrderRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := builder.Update(ordersTable).
		Set("is_deleted", true).
		Set("update_datetime", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete order: %w", err)
	}
	if _, err := r.tx.Querier(ctx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// DeleteOneQuantityProduct quita la primera ocurrencia del producto en el pedido.
func (r *OrderRepo) DeleteOneQuantityProduct(ctx context.Context, order *entity.Order, product *entity.Product) (*entity.Order, error) {
	query, args, err := deleteOneOrderProductQuery(order.ID, product.ID)
	if err != nil {
		return nil, fmt.Errorf("build delete one order product: %w", err)
	}
	return r.removeProducts(ctx, order, product, query, args)
}

// DeleteProduct quita todas las ocurrencias del producto en el pedido.
func (r *OrderRepo) DeleteProduct(ctx context.Context, order *entity.Order, product *entity.Product) (*entity.Order, error) {
	query, args, err := builder.Delete(orderProductsTable).
		Where(squirrel.Eq{"order_id": order.ID, "product_id": product.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete order product: %w", err)
	}
	return r.removeProducts(ctx, order, product, query, args)
}

func (r *OrderRepo) removeProducts(ctx context.Context, order *entity.Order, product *entity.Product, query string, args []any) (*entity.Order, error) {
	q := r.tx.Querier(ctx)

	cmd, err := q.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("delete order product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, fmt.Errorf("producto %d (%s) no está en el pedido %d: %w", product.ID, product.Name, order.ID, domain.ErrNotFound)
	}

	if _, err := q.Exec(ctx, `UPDATE orders SET update_datetime = NOW() WHERE id = $1`, order.ID); err != nil {
		return nil, fmt.Errorf("touch order: %w", err)
	}

	updated, err := r.Get(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.NewNotFound(domain.EntityOrder, order.ID)
	}
	return updated, nil
}

func (r *OrderRepo) insertProducts(ctx context.Context, q Querier, orderID int64, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}
	query, args, err := insertOrderProductsQuery(orderID, productIDs)
	if err != nil {
		return fmt.Errorf("build insert order products: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert order products: %w", err)
	}
	return nil
}

// loadProducts devuelve los productos de cada pedido en orden de posición.
func (r *OrderRepo) loadProducts(ctx context.Context, q Querier, orderIDs []int64) (map[int64][]entity.Product, error) {
	query, args, err := orderProductsQuery(orderIDs)
	if err != nil {
		return nil, fmt.Errorf("build order products: %w", err)
	}

	var recs []orderProductRecord
	if err := pgxscan.Select(ctx, q, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("load order products: %w", err)
	}

	byOrder := make(map[int64][]entity.Product, len(orderIDs))
	for _, rec := range recs {
		byOrder[rec.OrderID] = append(byOrder[rec.OrderID], rec.toEntity())
	}
	return byOrder, nil
}

func insertOrderProductsQuery(orderID int64, productIDs []int64) (string, []any, error) {
	ins := builder.Insert(orderProductsTable).Columns("order_id", "position", "product_id")
	for i, pid := range productIDs {
		ins = ins.Values(orderID, i, pid)
	}
	return ins.ToSql()
}

func orderProductsQuery(orderIDs []int64) (string, []any, error) {
	return builder.Select(
		"op.order_id", "op.position",
		"p.id", "p.name", "p.quantity", "p.price", "p.is_active", "p.update_datetime",
	).
		From(orderProductsTable + " op").
		Join(productsTable + " p ON p.id = op.product_id").
		Where(squirrel.Eq{"op.order_id": orderIDs}).
		OrderBy("op.order_id", "op.position").
		ToSql()
}

func deleteOneOrderProductQuery(orderID, productID int64) (string, []any, error) {
	first := builder.Select("MIN(position)").
		From(orderProductsTable).
		Where(squirrel.Eq{"order_id": orderID, "product_id": productID})
	return builder.Delete(orderProductsTable).
		Where(squirrel.Eq{"order_id": orderID}).
		Where(squirrel.Expr("position = (?)", first)).
		ToSql()
}

func toOrder(rec orderRecord, products []entity.Product) *entity.Order {
	if products == nil {
		products = []entity.Product{}
	}
	return &entity.Order{
		ID:        rec.ID,
		Address:   rec.Address,
		CreatedAt: rec.CreateDatetime,
		UpdatedAt: rec.UpdateDatetime,
		Products:  products,
	}
}
