package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/warehouse-manager/internal/domain"
)

func TestNotFoundError_Message(t *testing.T) {
	err := domain.NewNotFound(domain.EntityProduct, 42)
	assert.Equal(t, "producto con id 42 no encontrado", err.Error())
}

func TestNotFoundError_IsSentinel(t *testing.T) {
	wrapped := fmt.Errorf("crear pedido: %w", domain.NewNotFound(domain.EntityOrder, 7))

	assert.True(t, errors.Is(wrapped, domain.ErrNotFound))
	assert.True(t, domain.IsNotFound(wrapped))

	var nf *domain.NotFoundError
	if assert.True(t, errors.As(wrapped, &nf)) {
		assert.Equal(t, domain.EntityOrder, nf.Entity)
		assert.Equal(t, int64(7), nf.ID)
	}
}

func TestIsNotFound_OtherErrors(t *testing.T) {
	assert.False(t, domain.IsNotFound(nil))
	assert.False(t, domain.IsNotFound(domain.ErrInvalidInput))
	assert.False(t, domain.IsNotFound(errors.New("conexión rechazada")))
}
