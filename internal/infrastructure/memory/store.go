package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/warehouse-manager/internal/domain/entity"
	"github.com/jhoicas/warehouse-manager/internal/domain/repository"
)

var _ repository.UnitOfWork = (*Store)(nil)

// orderRow guarda solo los IDs de productos; Get/List los resuelven contra products,
// igual que el join de PostgreSQL.
type orderRow struct {
	id         int64
	address    string
	createdAt  time.Time
	updatedAt  time.Time
	productIDs []int64
	deleted    bool
}

type state struct {
	products      map[int64]entity.Product
	orders        map[int64]orderRow
	nextProductID int64
	nextOrderID   int64
}

func (s state) clone() state {
	c := state{
		products:      make(map[int64]entity.Product, len(s.products)),
		orders:        make(map[int64]orderRow, len(s.orders)),
		nextProductID: s.nextProductID,
		nextOrderID:   s.nextOrderID,
	}
	for id, p := range s.products {
		c.products[id] = p
	}
	for id, row := range s.orders {
		row.productIDs = append([]int64(nil), row.productIDs...)
		c.orders[id] = row
	}
	return c
}

// references devuelve el primer pedido (eliminado o no) que referencia el producto.
func (s state) references(productID int64) (int64, bool) {
	ids := make([]int64, 0, len(s.orders))
	for id := range s.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		for _, pid := range s.orders[id].productIDs {
			if pid == productID {
				return id, true
			}
		}
	}
	return 0, false
}

// Store es el almacenamiento en memoria compartido por los repositorios y la unidad de trabajo.
// Begin toma una instantánea; Rollback la restaura y Commit la descarta.
// Pensado para desarrollo local y tests: un solo escritor a la vez.
type Store struct {
	mu       sync.RWMutex
	cur      state
	snapshot *state
	now      func() time.Time
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		cur: state{
			products: make(map[int64]entity.Product),
			orders:   make(map[int64]orderRow),
		},
		now: time.Now,
	}
}

// Begin abre la unidad de trabajo. Un Begin con otra ya abierta conserva la instantánea original.
func (s *Store) Begin(ctx context.Context) (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil {
		snap := s.cur.clone()
		s.snapshot = &snap
	}
	return ctx, nil
}

// Commit confirma los cambios pendientes.
func (s *Store) Commit(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = nil
	return nil
}

// Rollback descarta los cambios hechos desde Begin.
func (s *Store) Rollback(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil {
		s.cur = *s.snapshot
		s.snapshot = nil
	}
	return nil
}

// Products devuelve el repositorio de productos sobre este almacenamiento.
func (s *Store) Products() *ProductRepository {
	return &ProductRepository{store: s}
}

// Orders devuelve el repositorio de pedidos sobre este almacenamiento.
func (s *Store) Orders() *OrderRepository {
	return &OrderRepository{store: s}
}

// Now devuelve la hora del reloj del almacenamiento.
func (s *Store) Now() time.Time {
	return s.now()
}
