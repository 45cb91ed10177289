package postgres

import (
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	productsTable      = "products"
	ordersTable        = "orders"
	orderProductsTable = "order_products"
)

// builder genera SQL con placeholders $n.
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return strings.Contains(err.Error(), "23503")
}
