package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-manager/internal/application/dto"
	"github.com/jhoicas/warehouse-manager/internal/application/warehouse"
	"github.com/jhoicas/warehouse-manager/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/warehouse-manager/internal/interfaces/http"
)

// buildTestApp arma la API sobre un almacenamiento en memoria.
func buildTestApp() *fiber.App {
	store := memory.NewStore()
	svc := warehouse.NewService(store.Products(), store.Orders(), store, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Service: svc})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestProducts_CreateGetList(t *testing.T) {
	app := buildTestApp()

	resp, raw := do(t, app, http.MethodPost, "/api/products", `{"name":"Tornillo","quantity":10,"price":"0.25"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	created := decode[dto.ProductResponse](t, raw)
	assert.Equal(t, int64(1), created.ID)
	assert.True(t, created.IsActive)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	resp, raw = do(t, app, http.MethodGet, "/api/products/1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Tornillo", decode[dto.ProductResponse](t, raw).Name)

	resp, raw = do(t, app, http.MethodGet, "/api/products", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.ProductListResponse](t, raw).Items, 1)
}

func TestProducts_NotFoundAndBadID(t *testing.T) {
	app := buildTestApp()

	resp, raw := do(t, app, http.MethodGet, "/api/products/9999", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = do(t, app, http.MethodGet, "/api/products/abc", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", decode[dto.ErrorResponse](t, raw).Code)

	resp, _ = do(t, app, http.MethodPatch, "/api/products/9999", `{"quantity":1}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProducts_UpdateAndDelete(t *testing.T) {
	app := buildTestApp()
	do(t, app, http.MethodPost, "/api/products", `{"name":"Tornillo","quantity":10,"price":"0.25"}`)

	resp, raw := do(t, app, http.MethodPatch, "/api/products/1", `{"quantity":3}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	updated := decode[dto.ProductResponse](t, raw)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, "Tornillo", updated.Name)

	resp, _ = do(t, app, http.MethodDelete, "/api/products/1", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/products/1", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestOrders_Lifecycle(t *testing.T) {
	app := buildTestApp()
	do(t, app, http.MethodPost, "/api/products", `{"name":"a","quantity":1,"price":"1"}`)
	do(t, app, http.MethodPost, "/api/products", `{"name":"b","quantity":1,"price":"2"}`)

	resp, raw := do(t, app, http.MethodPost, "/api/orders", `{"product_ids":[1,2,1],"address":"Calle 1"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	order := decode[dto.OrderResponse](t, raw)
	require.Len(t, order.Products, 3)

	resp, raw = do(t, app, http.MethodDelete, "/api/orders/1/products/1?one=true", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.Len(t, decode[dto.OrderResponse](t, raw).Products, 2)

	resp, raw = do(t, app, http.MethodDelete, "/api/orders/1/products/1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	order = decode[dto.OrderResponse](t, raw)
	require.Len(t, order.Products, 1)
	assert.Equal(t, int64(2), order.Products[0].ID)

	resp, raw = do(t, app, http.MethodPost, "/api/orders/1/products/1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.Len(t, decode[dto.OrderResponse](t, raw).Products, 2)

	resp, raw = do(t, app, http.MethodPut, "/api/orders/1", `{"product_ids":[]}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.Empty(t, decode[dto.OrderResponse](t, raw).Products)

	resp, _ = do(t, app, http.MethodDelete, "/api/orders/1", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/orders/1", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, raw = do(t, app, http.MethodGet, "/api/orders", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.OrderListResponse](t, raw).Items)
}

func TestOrders_UnknownProductAndMissingAddress(t *testing.T) {
	app := buildTestApp()

	resp, raw := do(t, app, http.MethodPost, "/api/orders", `{"product_ids":[42],"address":"Calle 1"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, raw).Message, "producto con id 42")

	resp, raw = do(t, app, http.MethodPost, "/api/orders", `{"product_ids":[],"address":"  "}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	resp, _ = do(t, app, http.MethodPost, "/api/orders", `{not json`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRequestID_IsPropagated(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(fiber.HeaderXRequestID))
}

func TestProducts_DeleteReferencedIsConflict(t *testing.T) {
	app := buildTestApp()
	do(t, app, http.MethodPost, "/api/products", `{"name":"a","quantity":1,"price":"1"}`)
	do(t, app, http.MethodPost, "/api/orders", `{"product_ids":[1],"address":"Calle 1"}`)

	resp, raw := do(t, app, http.MethodDelete, "/api/products/1", "")
	require.Equal(t, fiber.StatusConflict, resp.StatusCode, string(raw))
	assert.Equal(t, "PRODUCT_IN_USE", decode[dto.ErrorResponse](t, raw).Code)

	resp, _ = do(t, app, http.MethodGet, "/api/products/1", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
