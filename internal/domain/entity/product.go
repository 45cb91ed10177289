package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del almacén.
// ID es 0 hasta que el adaptador de persistencia lo asigna en Add.
// IsActive funciona como filtro de visibilidad: los inactivos no salen en listados,
// pero siguen disponibles por ID.
type Product struct {
	ID        int64
	Name      string
	Quantity  int
	Price     decimal.Decimal
	IsActive  bool
	UpdatedAt time.Time
}

// NewProduct construye un producto sin identidad.
func NewProduct(name string, quantity int, price decimal.Decimal, isActive bool) *Product {
	return &Product{
		Name:     name,
		Quantity: quantity,
		Price:    price,
		IsActive: isActive,
	}
}
