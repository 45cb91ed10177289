package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	// ErrProductInUse: el producto no se puede borrar mientras un pedido lo referencia.
	ErrProductInUse = errors.New("producto en uso")
)

// Nombres de entidad usados en NotFoundError.
const (
	EntityProduct = "producto"
	EntityOrder   = "pedido"
)

// NotFoundError indica que un id referenciado no existe. errors.Is(err, ErrNotFound) es true.
type NotFoundError struct {
	Entity string
	ID     int64
}

// NewNotFound construye el error para la entidad e id indicados.
func NewNotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s con id %d no encontrado", e.Entity, e.ID)
}

// Unwrap permite comparar contra ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// IsNotFound reporta si err (o alguno de sus envoltorios) es un NotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
