package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-manager/internal/domain/entity"
)

func product(id int64, name string) entity.Product {
	return entity.Product{ID: id, Name: name, Quantity: 1, Price: decimal.NewFromInt(10), IsActive: true}
}

func TestNewOrder_Timestamps(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	o := entity.NewOrder("Calle 1", nil, now)

	assert.Zero(t, o.ID)
	assert.Equal(t, now, o.CreatedAt)
	assert.Equal(t, now, o.UpdatedAt)
	assert.Empty(t, o.Products)
}

func TestOrder_AddProductAllowsDuplicates(t *testing.T) {
	o := entity.NewOrder("Calle 1", nil, time.Now())
	o.AddProduct(product(1, "P1"))
	o.AddProduct(product(1, "P1"))

	assert.Equal(t, []int64{1, 1}, o.ProductIDs())
	assert.True(t, o.HasProduct(1))
	assert.False(t, o.HasProduct(2))
}

func TestOrder_WithoutProductRemovesEveryOccurrence(t *testing.T) {
	o := entity.NewOrder("Calle 1", []entity.Product{product(1, "P1"), product(2, "P2"), product(1, "P1")}, time.Now())

	rest := o.WithoutProduct(1)

	require.Len(t, rest, 1)
	assert.Equal(t, int64(2), rest[0].ID)
	assert.Len(t, o.Products, 3, "el pedido original no se modifica")
}

func TestOrder_WithoutOneProduct(t *testing.T) {
	o := entity.NewOrder("Calle 1", []entity.Product{product(1, "P1"), product(2, "P2"), product(1, "P1")}, time.Now())

	rest, ok := o.WithoutOneProduct(1)
	require.True(t, ok)
	assert.Equal(t, []int64{2, 1}, (&entity.Order{Products: rest}).ProductIDs())

	_, ok = o.WithoutOneProduct(99)
	assert.False(t, ok)
}

func TestOrder_CloneDoesNotShareProducts(t *testing.T) {
	o := entity.NewOrder("Calle 1", []entity.Product{product(1, "P1")}, time.Now())
	c := o.Clone()
	c.Products[0].Name = "otro"
	c.AddProduct(product(2, "P2"))

	assert.Equal(t, "P1", o.Products[0].Name)
	assert.Len(t, o.Products, 1)
}
