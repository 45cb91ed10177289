package entity

import "time"

// Order representa un pedido: dirección de entrega y secuencia ordenada de productos.
// Products admite repetidos cuando el mismo producto se agrega varias veces.
type Order struct {
	ID        int64
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Products  []Product
}

// NewOrder construye un pedido sin identidad con las marcas de tiempo iniciales.
func NewOrder(address string, products []Product, now time.Time) *Order {
	return &Order{
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
		Products:  products,
	}
}

// AddProduct agrega el producto al final, sin validar unicidad.
func (o *Order) AddProduct(p Product) {
	o.Products = append(o.Products, p)
}

// HasProduct indica si el pedido contiene al menos una vez el producto con ese ID.
func (o *Order) HasProduct(productID int64) bool {
	for _, p := range o.Products {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// WithoutProduct devuelve la secuencia de productos sin ninguna ocurrencia de productID.
func (o *Order) WithoutProduct(productID int64) []Product {
	out := make([]Product, 0, len(o.Products))
	for _, p := range o.Products {
		if p.ID != productID {
			out = append(out, p)
		}
	}
	return out
}

// WithoutOneProduct devuelve la secuencia sin la primera ocurrencia de productID.
// El segundo valor es false si el producto no estaba en el pedido.
func (o *Order) WithoutOneProduct(productID int64) ([]Product, bool) {
	for i, p := range o.Products {
		if p.ID == productID {
			out := make([]Product, 0, len(o.Products)-1)
			out = append(out, o.Products[:i]...)
			return append(out, o.Products[i+1:]...), true
		}
	}
	return o.Products, false
}

// ProductIDs devuelve los IDs en el orden del pedido.
func (o *Order) ProductIDs() []int64 {
	ids := make([]int64, 0, len(o.Products))
	for _, p := range o.Products {
		ids = append(ids, p.ID)
	}
	return ids
}

// Clone devuelve una copia profunda (la secuencia de productos no se comparte).
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Products = append([]Product(nil), o.Products...)
	return &c
}
