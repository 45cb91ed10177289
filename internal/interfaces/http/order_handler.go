package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-manager/internal/application/dto"
	"github.com/jhoicas/warehouse-manager/internal/domain"
)

// OrderHandler maneja las peticiones HTTP para pedidos.
type OrderHandler struct {
	svc WarehouseService
}

// NewOrderHandler construye el handler.
func NewOrderHandler(svc WarehouseService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Create crea un pedido. Los IDs repetidos generan entradas repetidas.
//
//	POST /api/orders   body: dto.CreateOrderRequest   201 dto.OrderResponse
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if strings.TrimSpace(in.Address) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "address es requerido"})
	}
	out, err := h.svc.CreateOrder(c.UserContext(), in.ProductIDs, in.Address)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderResponse(out))
}

// GetByID obtiene un pedido no eliminado.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.svc.GetOrder(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return writeError(c, domain.NewNotFound(domain.EntityOrder, id))
	}
	return c.JSON(dto.NewOrderResponse(out))
}

// List lista los pedidos no eliminados.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list, err := h.svc.ListOrders(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderListResponse(list))
}

// Update reemplaza los productos del pedido.
//
//	PUT /api/orders/:id   body: dto.UpdateOrderRequest
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.UpdateOrder(c.UserContext(), id, in.ProductIDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(out))
}

// Delete elimina (lógicamente) un pedido.
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.svc.DeleteOrder(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddProduct agrega el producto al pedido si aún no está.
//
//	POST /api/orders/:id/products/:productId
func (h *OrderHandler) AddProduct(c *fiber.Ctx) error {
	orderID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	productID, ok := paramID(c, "productId")
	if !ok {
		return invalidID(c, "productId")
	}
	out, err := h.svc.AddProductToOrder(c.UserContext(), orderID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(out))
}

// RemoveProduct quita el producto del pedido. Con ?one=true quita una sola unidad.
//
//	DELETE /api/orders/:id/products/:productId[?one=true]
func (h *OrderHandler) RemoveProduct(c *fiber.Ctx) error {
	orderID, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	productID, ok := paramID(c, "productId")
	if !ok {
		return invalidID(c, "productId")
	}
	remove := h.svc.RemoveProductFromOrder
	if c.QueryBool("one", false) {
		remove = h.svc.RemoveOneProductFromOrder
	}
	out, err := remove(c.UserContext(), orderID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(out))
}
