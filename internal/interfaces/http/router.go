package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-manager/internal/application/dto"
	"github.com/jhoicas/warehouse-manager/internal/domain/entity"
	"github.com/jhoicas/warehouse-manager/pkg/logger"
)

// WarehouseService es lo que la API necesita del servicio de almacén.
type WarehouseService interface {
	CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, in dto.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	CreateOrder(ctx context.Context, productIDs []int64, address string) (*entity.Order, error)
	GetOrder(ctx context.Context, id int64) (*entity.Order, error)
	ListOrders(ctx context.Context) ([]*entity.Order, error)
	UpdateOrder(ctx context.Context, id int64, productIDs []int64) (*entity.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	AddProductToOrder(ctx context.Context, orderID, productID int64) (*entity.Order, error)
	RemoveProductFromOrder(ctx context.Context, orderID, productID int64) (*entity.Order, error)
	RemoveOneProductFromOrder(ctx context.Context, orderID, productID int64) (*entity.Order, error)
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Service WarehouseService
	Log     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	api := app.Group("/api", RequestID(), RequestLogger(log), SingleOperator())

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Service)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.Service)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Post("/:id/products/:productId", orderHandler.AddProduct)
	orders.Delete("/:id/products/:productId", orderHandler.RemoveProduct)
}
