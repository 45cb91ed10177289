package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-manager/internal/application/dto"
	"github.com/jhoicas/warehouse-manager/internal/domain"
	"github.com/jhoicas/warehouse-manager/internal/domain/entity"
	"github.com/jhoicas/warehouse-manager/pkg/logger"
)

// WarehouseService es lo que la consola necesita del servicio de almacén.
type WarehouseService interface {
	CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, in dto.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	CreateOrder(ctx context.Context, productIDs []int64, address string) (*entity.Order, error)
	GetOrder(ctx context.Context, id int64) (*entity.Order, error)
	ListOrders(ctx context.Context) ([]*entity.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	AddProductToOrder(ctx context.Context, orderID, productID int64) (*entity.Order, error)
	RemoveProductFromOrder(ctx context.Context, orderID, productID int64) (*entity.Order, error)
	RemoveOneProductFromOrder(ctx context.Context, orderID, productID int64) (*entity.Order, error)
}

// errInvalidNumber se devuelve cuando la entrada no es un entero.
var errInvalidNumber = fmt.Errorf("número inválido: %w", domain.ErrInvalidInput)

// UI es la interfaz de consola por menú. Lee líneas de in y escribe en out.
type UI struct {
	svc WarehouseService
	in  *bufio.Scanner
	out io.Writer
	log *logger.Logger
}

// NewUI construye la consola.
func NewUI(svc WarehouseService, in io.Reader, out io.Writer, log *logger.Logger) *UI {
	if log == nil {
		log = logger.Nop()
	}
	return &UI{svc: svc, in: bufio.NewScanner(in), out: out, log: log}
}

type command struct {
	name string
	run  func(ctx context.Context) error
}

// Run muestra el menú hasta que el operador elige salir o se agota la entrada.
func (u *UI) Run(ctx context.Context) error {
	commands := map[string]command{
		"1": {"add_product", u.addProduct},
		"2": {"list_products", u.listProducts},
		"3": {"create_order", u.createOrder},
		"4": {"list_orders", u.listOrders},
		"5": {"edit_order", u.editOrder},
		"6": {"delete_order", u.deleteOrder},
		"7": {"delete_product", u.deleteProduct},
		"8": {"update_product", u.updateProduct},
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		u.printMenu()
		choice, err := u.prompt("Opción: ")
		if err != nil {
			return ignoreEOF(err)
		}
		if choice == "0" {
			u.println("Saliendo...")
			return nil
		}

		cmd, ok := commands[choice]
		if !ok {
			u.println("Opción inválida, intente de nuevo")
			continue
		}

		log := u.log.WithField("op_id", uuid.NewString())
		log.Debug().Str("command", cmd.name).Msg("comando iniciado")
		if err := cmd.run(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			u.report(err)
			log.Debug().Err(err).Str("command", cmd.name).Msg("comando fallido")
			continue
		}
		log.Debug().Str("command", cmd.name).Msg("comando terminado")
	}
}

func (u *UI) printMenu() {
	u.println("")
	u.println("=== Sistema de gestión de almacén ===")
	u.println("1. Agregar producto")
	u.println("2. Listar productos")
	u.println("3. Crear pedido")
	u.println("4. Listar pedidos")
	u.println("5. Editar pedido (agregar/quitar productos)")
	u.println("6. Eliminar pedido")
	u.println("7. Eliminar producto")
	u.println("8. Actualizar producto")
	u.println("0. Salir")
}

// report imprime el error de un comando; la sesión sigue.
func (u *UI) report(err error) {
	switch {
	case errors.Is(err, errInvalidNumber):
		u.println("Ingrese un número válido")
	case errors.Is(err, domain.ErrInvalidInput):
		u.printf("Dato inválido: %v\n", err)
	case errors.Is(err, domain.ErrNotFound):
		u.printf("No encontrado: %v\n", err)
	case errors.Is(err, domain.ErrProductInUse):
		u.printf("No se puede eliminar: %v\n", err)
	default:
		u.printf("Error: %v\n", err)
	}
}

func (u *UI) addProduct(ctx context.Context) error {
	u.println("\n--- Nuevo producto ---")
	name, err := u.prompt("Nombre: ")
	if err != nil {
		return err
	}
	qty, err := u.promptInt("Cantidad: ")
	if err != nil {
		return err
	}
	price, err := u.promptDecimal("Precio: ")
	if err != nil {
		return err
	}
	active, err := u.prompt("¿Activo? (s/n): ")
	if err != nil {
		return err
	}
	isActive := strings.EqualFold(active, "s")

	p, err := u.svc.CreateProduct(ctx, dto.CreateProductRequest{
		Name:     name,
		Quantity: qty,
		Price:    price,
		IsActive: &isActive,
	})
	if err != nil {
		return err
	}
	u.printf("Producto creado: ID %d\n", p.ID)
	return nil
}

func (u *UI) listProducts(ctx context.Context) error {
	u.println("\n--- Productos ---")
	products, err := u.svc.ListProducts(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		u.printf("ID: %d, Nombre: %s, Cantidad: %d, Precio: %s\n", p.ID, p.Name, p.Quantity, p.Price.StringFixed(2))
	}
	return nil
}

func (u *UI) createOrder(ctx context.Context) error {
	u.println("\n--- Nuevo pedido ---")
	if err := u.listProducts(ctx); err != nil {
		return err
	}

	var ids []int64
	for {
		line, err := u.prompt("ID de producto a agregar (o 'fin' para terminar): ")
		if err != nil {
			return err
		}
		if strings.EqualFold(line, "fin") {
			break
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			u.println("Ingrese un número válido o 'fin'")
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		u.println("El pedido debe tener al menos un producto")
		return nil
	}

	address, err := u.prompt("Dirección de entrega: ")
	if err != nil {
		return err
	}
	order, err := u.svc.CreateOrder(ctx, ids, address)
	if err != nil {
		return err
	}
	u.printf("Pedido creado: ID %d\n", order.ID)
	return nil
}

func (u *UI) listOrders(ctx context.Context) error {
	u.println("\n--- Pedidos ---")
	orders, err := u.svc.ListOrders(ctx)
	if err != nil {
		return err
	}
	for _, o := range orders {
		u.printf("\nPedido ID: %d, Dirección: %s\n", o.ID, o.Address)
		u.println("Productos:")
		for _, p := range o.Products {
			u.printf("  - %s (ID: %d, Cant: %d, Precio: %s)\n", p.Name, p.ID, p.Quantity, p.Price.StringFixed(2))
		}
	}
	return nil
}

func (u *UI) editOrder(ctx context.Context) error {
	u.println("\n--- Editar pedido ---")
	if err := u.listOrders(ctx); err != nil {
		return err
	}
	orderID, err := u.promptID("ID del pedido a editar: ")
	if err != nil {
		return err
	}
	order, err := u.svc.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.NewNotFound(domain.EntityOrder, orderID)
	}

	u.println("\nProductos actuales del pedido:")
	for _, p := range order.Products {
		u.printf("ID: %d, Nombre: %s\n", p.ID, p.Name)
	}
	u.println("\n1. Agregar producto al pedido")
	u.println("2. Quitar producto del pedido")
	u.println("3. Quitar una unidad del producto")
	choice, err := u.prompt("Opción: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		if err := u.listProducts(ctx); err != nil {
			return err
		}
		productID, err := u.promptID("ID de producto a agregar: ")
		if err != nil {
			return err
		}
		if _, err := u.svc.AddProductToOrder(ctx, orderID, productID); err != nil {
			return err
		}
		u.println("Producto agregado al pedido")
	case "2", "3":
		productID, err := u.promptID("ID de producto a quitar: ")
		if err != nil {
			return err
		}
		remove := u.svc.RemoveProductFromOrder
		if choice == "3" {
			remove = u.svc.RemoveOneProductFromOrder
		}
		if _, err := remove(ctx, orderID, productID); err != nil {
			return err
		}
		u.println("Producto quitado del pedido")
	default:
		u.println("Opción inválida")
	}
	return nil
}

func (u *UI) deleteOrder(ctx context.Context) error {
	u.println("\n--- Eliminar pedido ---")
	if err := u.listOrders(ctx); err != nil {
		return err
	}
	id, err := u.promptID("ID del pedido a eliminar: ")
	if err != nil {
		return err
	}
	if err := u.svc.DeleteOrder(ctx, id); err != nil {
		return err
	}
	u.println("Pedido eliminado")
	return nil
}

func (u *UI) deleteProduct(ctx context.Context) error {
	u.println("\n--- Eliminar producto ---")
	if err := u.listProducts(ctx); err != nil {
		return err
	}
	id, err := u.promptID("ID del producto a eliminar: ")
	if err != nil {
		return err
	}
	if err := u.svc.DeleteProduct(ctx, id); err != nil {
		return err
	}
	u.println("Producto eliminado")
	return nil
}

// updateProduct pide cada campo; una línea vacía conserva el valor actual.
func (u *UI) updateProduct(ctx context.Context) error {
	u.println("\n--- Actualizar producto ---")
	if err := u.listProducts(ctx); err != nil {
		return err
	}
	id, err := u.promptID("ID del producto a actualizar: ")
	if err != nil {
		return err
	}

	var in dto.UpdateProductRequest
	name, err := u.prompt("Nuevo nombre (vacío = sin cambio): ")
	if err != nil {
		return err
	}
	if name != "" {
		in.Name = &name
	}
	qtyRaw, err := u.prompt("Nueva cantidad (vacío = sin cambio): ")
	if err != nil {
		return err
	}
	if qtyRaw != "" {
		qty, err := strconv.Atoi(qtyRaw)
		if err != nil {
			return errInvalidNumber
		}
		in.Quantity = &qty
	}
	priceRaw, err := u.prompt("Nuevo precio (vacío = sin cambio): ")
	if err != nil {
		return err
	}
	if priceRaw != "" {
		price, err := decimal.NewFromString(priceRaw)
		if err != nil {
			return fmt.Errorf("precio %q: %w", priceRaw, domain.ErrInvalidInput)
		}
		in.Price = &price
	}
	if in.IsEmpty() {
		u.println("Sin cambios")
		return nil
	}

	p, err := u.svc.UpdateProduct(ctx, id, in)
	if err != nil {
		return err
	}
	u.printf("Producto actualizado: ID %d\n", p.ID)
	return nil
}

// prompt escribe el texto y lee una línea sin espacios en los extremos.
// Devuelve io.EOF cuando no hay más entrada.
func (u *UI) prompt(text string) (string, error) {
	fmt.Fprint(u.out, text)
	if !u.in.Scan() {
		if err := u.in.Err(); err != nil {
			return "", fmt.Errorf("leer entrada: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(u.in.Text()), nil
}

func (u *UI) promptInt(text string) (int, error) {
	line, err := u.prompt(text)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, errInvalidNumber
	}
	return n, nil
}

func (u *UI) promptID(text string) (int64, error) {
	line, err := u.prompt(text)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, errInvalidNumber
	}
	return id, nil
}

func (u *UI) promptDecimal(text string) (decimal.Decimal, error) {
	line, err := u.prompt(text)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(line)
	if err != nil {
		return decimal.Zero, fmt.Errorf("precio %q: %w", line, domain.ErrInvalidInput)
	}
	return d, nil
}

func (u *UI) println(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *UI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
