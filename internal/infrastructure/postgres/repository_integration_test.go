package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-manager/internal/domain"
	"github.com/jhoicas/warehouse-manager/internal/domain/entity"
	"github.com/jhoicas/warehouse-manager/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse-manager/pkg/config"
)

const testDSNEnv = "WAREHOUSE_POSTGRES_TEST_DSN"

type fixture struct {
	tx       *postgres.TxRunner
	products *postgres.ProductRepo
	orders   *postgres.OrderRepo
}

// setup abre el pool de pruebas, aplica migraciones y vacía las tablas.
// Se salta si no hay base disponible.
func setup(t *testing.T) (context.Context, fixture) {
	t.Helper()

	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		t.Skipf("%s no definido; se omiten pruebas de integración", testDSNEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	if err != nil {
		t.Skipf("postgres no disponible: %v", err)
	}
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.MigrateUp(ctx, pool))
	truncate(ctx, t, pool)

	tx := postgres.NewTxRunner(pool)
	return ctx, fixture{
		tx:       tx,
		products: postgres.NewProductRepository(tx),
		orders:   postgres.NewOrderRepository(tx),
	}
}

func truncate(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(ctx, `TRUNCATE order_products, orders, products RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func addProduct(ctx context.Context, t *testing.T, f fixture, name string, active bool) *entity.Product {
	t.Helper()
	p := entity.NewProduct(name, 5, decimal.RequireFromString("9.99"), active)
	require.NoError(t, f.products.Add(ctx, p))
	return p
}

func TestProductRepo_CRUD(t *testing.T) {
	ctx, f := setup(t)

	p := addProduct(ctx, t, f, "Martillo", true)
	assert.Equal(t, int64(1), p.ID)
	assert.False(t, p.UpdatedAt.IsZero())

	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Martillo", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("9.99")))

	got.Quantity = 42
	require.NoError(t, f.products.Update(ctx, got))
	again, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, again.Quantity)

	require.NoError(t, f.products.Delete(ctx, p.ID))
	gone, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Update sobre una fila inexistente no falla.
	require.NoError(t, f.products.Update(ctx, got))
}

func TestProductRepo_ListOnlyActive(t *testing.T) {
	ctx, f := setup(t)

	addProduct(ctx, t, f, "visible", true)
	addProduct(ctx, t, f, "oculto", false)

	list, err := f.products.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "visible", list[0].Name)
}

func TestOrderRepo_KeepsOrderAndDuplicates(t *testing.T) {
	ctx, f := setup(t)

	a := addProduct(ctx, t, f, "a", true)
	b := addProduct(ctx, t, f, "b", true)

	order := entity.NewOrder("Calle 1", []entity.Product{*a, *b, *a}, time.Now())
	require.NoError(t, f.orders.Add(ctx, order))
	assert.NotZero(t, order.ID)

	got, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []int64{a.ID, b.ID, a.ID}, got.ProductIDs())

	got.Products = got.WithoutProduct(a.ID)
	got.Address = "Calle 2"
	require.NoError(t, f.orders.Update(ctx, got))

	again, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Calle 2", again.Address)
	assert.Equal(t, []int64{b.ID}, again.ProductIDs())
	assert.Equal(t, got.CreatedAt.Unix(), again.CreatedAt.Unix())
}

func TestOrderRepo_DeleteOneQuantityProduct(t *testing.T) {
	ctx, f := setup(t)

	a := addProduct(ctx, t, f, "a", true)
	b := addProduct(ctx, t, f, "b", true)
	order := entity.NewOrder("Calle 1", []entity.Product{*a, *b, *a}, time.Now())
	require.NoError(t, f.orders.Add(ctx, order))

	updated, err := f.orders.DeleteOneQuantityProduct(ctx, order, a)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID, a.ID}, updated.ProductIDs())

	updated, err = f.orders.DeleteProduct(ctx, updated, a)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID}, updated.ProductIDs())

	_, err = f.orders.DeleteProduct(ctx, updated, a)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestOrderRepo_SoftDelete(t *testing.T) {
	ctx, f := setup(t)

	order := entity.NewOrder("Calle 1", nil, time.Now())
	require.NoError(t, f.orders.Add(ctx, order))
	require.NoError(t, f.orders.Delete(ctx, order.ID))

	got, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err := f.orders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductRepo_DeleteReferencedFails(t *testing.T) {
	ctx, f := setup(t)

	a := addProduct(ctx, t, f, "a", true)
	order := entity.NewOrder("Calle 1", []entity.Product{*a}, time.Now())
	require.NoError(t, f.orders.Add(ctx, order))

	err := f.products.Delete(ctx, a.ID)
	require.ErrorIs(t, err, domain.ErrProductInUse)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestTxRunner_RollbackDiscards(t *testing.T) {
	ctx, f := setup(t)

	txCtx, err := f.tx.Begin(ctx)
	require.NoError(t, err)
	p := addProduct(txCtx, t, f, "temporal", true)
	require.NoError(t, f.tx.Rollback(txCtx))

	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTxRunner_CommitPersists(t *testing.T) {
	ctx, f := setup(t)

	txCtx, err := f.tx.Begin(ctx)
	require.NoError(t, err)
	p := addProduct(txCtx, t, f, "firme", true)
	require.NoError(t, f.tx.Commit(txCtx))

	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "firme", got.Name)
}
