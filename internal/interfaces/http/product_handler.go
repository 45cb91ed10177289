package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-manager/internal/application/dto"
	"github.com/jhoicas/warehouse-manager/internal/domain"
)

// ProductHandler maneja las peticiones HTTP para productos.
type ProductHandler struct {
	svc WarehouseService
}

// NewProductHandler construye el handler.
func NewProductHandler(svc WarehouseService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// Create crea un producto.
//
//	POST /api/products   body: dto.CreateProductRequest   201 dto.ProductResponse
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.CreateProduct(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(out))
}

// GetByID obtiene un producto.
//
//	GET /api/products/:id   200 dto.ProductResponse | 404
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.svc.GetProduct(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return writeError(c, domain.NewNotFound(domain.EntityProduct, id))
	}
	return c.JSON(dto.NewProductResponse(out))
}

// List lista los productos activos.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.svc.ListProducts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewProductListResponse(list))
}

// Update aplica una actualización parcial.
//
//	PATCH /api/products/:id   body: dto.UpdateProductRequest
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.UpdateProduct(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewProductResponse(out))
}

// Delete elimina un producto; 204 aunque no existiera.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.svc.DeleteProduct(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
