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

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productColumns = []string{"id", "name", "quantity", "price", "is_active", "update_datetime"}

// productRecord es la fila de products tal como la escanea pgxscan.
type productRecord struct {
	ID             int64           `db:"id"`
	Name           string          `db:"name"`
	Quantity       int             `db:"quantity"`
	Price          decimal.Decimal `db:"price"`
	IsActive       bool            `db:"is_active"`
	UpdateDatetime time.Time       `db:"update_datetime"`
}

func (r productRecord) toEntity() *entity.Product {
	return &entity.Product{
		ID:        r.ID,
		Name:      r.Name,
		Quantity:  r.Quantity,
		Price:     r.Price,
		IsActive:  r.IsActive,
		UpdatedAt: r.UpdateDatetime,
	}
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
// Usa la transacción del contexto si la hay, si no el pool.
type ProductRepo struct {
	tx *TxRunner
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(tx *TxRunner) *ProductRepo {
	return &ProductRepo{tx: tx}
}

// Add persiste un nuevo producto y copia en la entidad el ID y la marca de tiempo generados.
func (r *ProductRepo) Add(ctx context.Context, product *entity.Product) error {
	query, args, err := insertProductQuery(product)
	if err != nil {
		return fmt.Errorf("build insert product: %w", err)
	}
	err = r.tx.Querier(ctx).QueryRow(ctx, query, args...).Scan(&product.ID, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Get obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) Get(ctx context.Context, id int64) (*entity.Product, error) {
	query, args, err := builder.Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get product: %w", err)
	}

	var rec productRecord
	if err := pgxscan.Get(ctx, r.tx.Querier(ctx), &rec, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return rec.toEntity(), nil
}

// List lista los productos activos ordenados por ID.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	query, args, err := listProductsQuery()
	if err != nil {
		return nil, fmt.Errorf("build list products: %w", err)
	}

	var recs []productRecord
	if err := pgxscan.Select(ctx, r.tx.Querier(ctx), &recs, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(recs))
	for _, rec := range recs {
		list = append(list, rec.toEntity())
	}
	return list, nil
}

// Update actualiza nombre, cantidad, precio y estado. Si la fila ya no existe no hace nada.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query, args, err := updateProductQuery(product)
	if err != nil {
		return fmt.Errorf("build update product: %w", err)
	}
	err = r.tx.Querier(ctx).QueryRow(ctx, query, args...).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID. Falla si algún pedido lo referencia (FK RESTRICT).
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := builder.Delete(productsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete product: %w", err)
	}
	if _, err := r.tx.Querier(ctx).Exec(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto %d referenciado por un pedido: %w", id, domain.ErrProductInUse)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func insertProductQuery(p *entity.Product) (string, []any, error) {
	return builder.Insert(productsTable).
		Columns("name", "quantity", "price", "is_active").
		Values(p.Name, p.Quantity, p.Price, p.IsActive).
		Suffix("RETURNING id, update_datetime").
		ToSql()
}

func listProductsQuery() (string, []any, error) {
	return builder.Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id").
		ToSql()
}

func updateProductQuery(p *entity.Product) (string, []any, error) {
	return builder.Update(productsTable).
		Set("name", p.Name).
		Set("quantity", p.Quantity).
		Set("price", p.Price).
		Set("is_active", p.IsActive).
		Set("update_datetime", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING update_datetime").
		ToSql()
}
