package warehouse

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-manager/internal/application/dto"
	"github.com/jhoicas/warehouse-manager/internal/domain"
	"github.com/jhoicas/warehouse-manager/internal/domain/entity"
	"github.com/jhoicas/warehouse-manager/internal/domain/repository"
	"github.com/jhoicas/warehouse-manager/pkg/logger"
)

// Service concentra las reglas de negocio del almacén sobre productos y pedidos.
// No guarda estado entre llamadas: todo vive en los repositorios.
// Cada operación que muta abre exactamente una unidad de trabajo y hace un Commit al terminar bien.
type Service struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	uow         repository.UnitOfWork
	log         *logger.Logger
	now         func() time.Time
}

// NewService construye el servicio.
func NewService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	uow repository.UnitOfWork,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		uow:         uow,
		log:         log,
		now:         time.Now,
	}
}

// CreateProduct crea un producto. No valida nombre, cantidad ni precio.
func (s *Service) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	product := entity.NewProduct(in.Name, in.Quantity, in.Price, in.Active())
	err := withinUnitOfWork(ctx, s.uow, s.log, "create_product", func(ctx context.Context) error {
		return s.productRepo.Add(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int64("product_id", product.ID).Msg("producto creado")
	return product, nil
}

// GetProduct devuelve el producto o nil si no existe.
func (s *Service) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	return s.productRepo.Get(ctx, id)
}

// ListProducts lista los productos visibles (activos).
func (s *Service) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return s.productRepo.List(ctx)
}

// UpdateProduct aplica solo los campos suministrados.
func (s *Service) UpdateProduct(ctx context.Context, id int64, in dto.UpdateProductRequest) (*entity.Product, error) {
	var product *entity.Product
	err := withinUnitOfWork(ctx, s.uow, s.log, "update_product", func(ctx context.Context) error {
		p, err := s.requireProduct(ctx, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Quantity != nil {
			p.Quantity = *in.Quantity
		}
		if in.Price != nil {
			p.Price = *in.Price
		}
		if err := s.productRepo.Update(ctx, p); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int64("product_id", id).Msg("producto actualizado")
	return product, nil
}

// DeleteProduct delega en el repositorio; no falla si el producto no existe.
// Devuelve domain.ErrProductInUse si algún pedido lo referencia.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return withinUnitOfWork(ctx, s.uow, s.log, "delete_product", func(ctx context.Context) error {
		return s.productRepo.Delete(ctx, id)
	})
}

// CreateOrder resuelve todos los productos (fallando en el primero inexistente) y crea el pedido.
// Los IDs repetidos generan entradas repetidas.
func (s *Service) CreateOrder(ctx context.Context, productIDs []int64, address string) (*entity.Order, error) {
	var order *entity.Order
	err := withinUnitOfWork(ctx, s.uow, s.log, "create_order", func(ctx context.Context) error {
		products, err := s.resolveProducts(ctx, productIDs)
		if err != nil {
			return err
		}
		o := entity.NewOrder(address, products, s.now())
		if err := s.orderRepo.Add(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int64("order_id", order.ID).Int("products", len(order.Products)).Msg("pedido creado")
	return order, nil
}

// GetOrder devuelve el pedido o nil si no existe.
func (s *Service) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	return s.orderRepo.Get(ctx, id)
}

// ListOrders lista los pedidos no eliminados.
func (s *Service) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	return s.orderRepo.List(ctx)
}

// UpdateOrder reemplaza la secuencia completa de productos del pedido.
func (s *Service) UpdateOrder(ctx context.Context, id int64, productIDs []int64) (*entity.Order, error) {
	var order *entity.Order
	err := withinUnitOfWork(ctx, s.uow, s.log, "update_order", func(ctx context.Context) error {
		o, err := s.requireOrder(ctx, id)
		if err != nil {
			return err
		}
		products, err := s.resolveProducts(ctx, productIDs)
		if err != nil {
			return err
		}
		o.Products = products
		if err := s.orderRepo.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder delega en el repositorio (borrado lógico).
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	return withinUnitOfWork(ctx, s.uow, s.log, "delete_order", func(ctx context.Context) error {
		return s.orderRepo.Delete(ctx, id)
	})
}

// AddProductToOrder agrega el producto si el pedido no lo contiene ya (comparando por ID).
// Si ya está, devuelve el pedido sin cambios.
func (s *Service) AddProductToOrder(ctx context.Context, orderID, productID int64) (*entity.Order, error) {
	var order *entity.Order
	err := withinUnitOfWork(ctx, s.uow, s.log, "add_product_to_order", func(ctx context.Context) error {
		o, err := s.requireOrder(ctx, orderID)
		if err != nil {
			return err
		}
		p, err := s.requireProduct(ctx, productID)
		if err != nil {
			return err
		}
		if !o.HasProduct(p.ID) {
			o.AddProduct(*p)
			if err := s.orderRepo.Update(ctx, o); err != nil {
				return err
			}
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// RemoveProductFromOrder quita todas las ocurrencias del producto y persiste siempre,
// aunque no hubiera nada que quitar.
func (s *Service) RemoveProductFromOrder(ctx context.Context, orderID, productID int64) (*entity.Order, error) {
	var order *entity.Order
	err := withinUnitOfWork(ctx, s.uow, s.log, "remove_product_from_order", func(ctx context.Context) error {
		o, err := s.requireOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if _, err := s.requireProduct(ctx, productID); err != nil {
			return err
		}
		o.Products = o.WithoutProduct(productID)
		if err := s.orderRepo.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// RemoveOneProductFromOrder quita una sola ocurrencia del producto.
// Falla con NotFound si el producto no está en el pedido.
func (s *Service) RemoveOneProductFromOrder(ctx context.Context, orderID, productID int64) (*entity.Order, error) {
	var order *entity.Order
	err := withinUnitOfWork(ctx, s.uow, s.log, "remove_one_product_from_order", func(ctx context.Context) error {
		o, err := s.requireOrder(ctx, orderID)
		if err != nil {
			return err
		}
		p, err := s.requireProduct(ctx, productID)
		if err != nil {
			return err
		}
		updated, err := s.orderRepo.DeleteOneQuantityProduct(ctx, o, p)
		if err != nil {
			return err
		}
		order = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) requireProduct(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := s.productRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound(domain.EntityProduct, id)
	}
	return p, nil
}

func (s *Service) requireOrder(ctx context.Context, id int64) (*entity.Order, error) {
	o, err := s.orderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NewNotFound(domain.EntityOrder, id)
	}
	return o, nil
}

// resolveProducts obtiene cada producto en el orden dado; falla en el primer ID inexistente.
func (s *Service) resolveProducts(ctx context.Context, ids []int64) ([]entity.Product, error) {
	products := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.requireProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}
