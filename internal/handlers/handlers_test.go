package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"returnsconsole/internal/database"
	"returnsconsole/internal/metrics"
	"returnsconsole/internal/returns"
)

type fakeStore struct {
	pingErr   error
	ordersErr error
	products  []returns.Product
	orders    []returns.Order
	customers map[returns.ID]returns.Customer
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) Products(context.Context) ([]returns.Product, error) {
	return f.products, nil
}

func (f *fakeStore) Catalog(context.Context) (returns.Catalog, error) {
	return returns.NewCatalog(f.products), nil
}

func (f *fakeStore) Orders(context.Context) ([]returns.Order, error) {
	return f.orders, f.ordersErr
}

func (f *fakeStore) Order(_ context.Context, id returns.ID) (returns.Order, error) {
	if order, ok := returns.FindOrder(f.orders, id); ok {
		return order, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) Customer(_ context.Context, id returns.ID) (returns.Customer, error) {
	if c, ok := f.customers[id]; ok {
		return c, nil
	}
	return returns.Customer{}, database.ErrNotFound
}

func newFixtureStore() *fakeStore {
	return &fakeStore{
		products: []returns.Product{
			{ID: "9", Name: "Pirinç", NameEn: "Rice", Price: 10},
			{ID: "2", Name: "Un", Price: 4.5},
		},
		orders: []returns.Order{
			{"id": 42, "customerId": 7, "products": []any{map[string]any{"id": 9, "quantity": 3}}},
			{"id": 43, "customer": "Customer #7", "items": []any{map[string]any{"id": 501, "product_id": 2, "quantity": 2}}},
			{"id": 44, "customer_id": 7, "note": "phone order"},
			{"id": 50, "customerId": 8, "items": "legacy", "product_id": 9, "quantity": 1},
		},
		customers: map[returns.ID]returns.Customer{
			"7": {ID: "7", Name: "Ayşe Yılmaz"},
			"8": {ID: "8", Name: "Mehmet Kaya"},
		},
	}
}

type testServer struct {
	router  *gin.Engine
	metrics *metrics.Registry
}

func newTestServer(t *testing.T, store Store) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	reg := metrics.NewRegistry()
	r := gin.New()
	RegisterConsoleRoutes(r.Group("/api"), Deps{Store: store, Metrics: reg, Currency: "TRY"})
	return testServer{router: r, metrics: reg}
}

func (s testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	return rec, decoded
}

func TestGetProducts(t *testing.T) {
	s := newTestServer(t, newFixtureStore())

	rec, body := s.do(t, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["data"], 2)

	rec, body = s.do(t, http.MethodGet, "/api/products?page=2&limit=1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body["data"], 1)
	assert.Equal(t, "2", body["data"].([]any)[0].(map[string]any)["id"])
	assert.Equal(t, 2.0, body["pagination"].(map[string]any)["totalPages"])

	_, body = s.do(t, http.MethodGet, "/api/products?search=rice", nil)
	assert.Len(t, body["data"], 1)

	rec, _ = s.do(t, http.MethodGet, "/api/products?page=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProductsDatabaseDown(t *testing.T) {
	store := newFixtureStore()
	store.pingErr = errors.New("no primary")
	s := newTestServer(t, store)

	rec, body := s.do(t, http.MethodGet, "/api/products", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "database unavailable", body["error"])
}

func TestGetCustomerOrders(t *testing.T) {
	s := newTestServer(t, newFixtureStore())

	rec, body := s.do(t, http.MethodGet, "/api/customers/7/orders", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3.0, body["count"])

	_, body = s.do(t, http.MethodGet, "/api/customers/99/orders", nil)
	assert.Equal(t, 0.0, body["count"])
	assert.Equal(t, []any{}, body["data"])
}

func TestGetCustomerOrdersStoreError(t *testing.T) {
	store := newFixtureStore()
	store.ordersErr = errors.New("cursor closed")
	s := newTestServer(t, store)

	rec, _ := s.do(t, http.MethodGet, "/api/customers/7/orders", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetOrderLines(t *testing.T) {
	s := newTestServer(t, newFixtureStore())

	rec, body := s.do(t, http.MethodGet, "/api/orders/43/lines", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "items", body["shape"])
	lines := body["lines"].([]any)
	require.Len(t, lines, 1)
	line := lines[0].(map[string]any)
	assert.Equal(t, "501", line["lineRef"])
	assert.Equal(t, "Un", line["name"])
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.OrderShapes.WithLabelValues("items")))
}

func TestGetOrderLinesLocalized(t *testing.T) {
	s := newTestServer(t, newFixtureStore())

	_, body := s.do(t, http.MethodGet, "/api/orders/42/lines?lang=en", nil)

	line := body["lines"].([]any)[0].(map[string]any)
	assert.Equal(t, "Rice", line["name"])
	assert.Equal(t, "42", line["lineRef"])
}

func TestGetOrderLinesEmptyOrder(t *testing.T) {
	s := newTestServer(t, newFixtureStore())

	rec, body := s.do(t, http.MethodGet, "/api/orders/44/lines", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, body["lines"])
	assert.Equal(t, noProductsMessage, body["message"])
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.EmptyOrders))
}

func TestGetOrderLinesNotFound(t *testing.T) {
	s := newTestServer(t, newFixtureStore())

	rec, body := s.do(t, http.MethodGet, "/api/orders/404/lines", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order not found", body["error"])
}

func TestQuoteReturnClamps(t *testing.T) {
	s := newTestServer(t, newFixtureStore())

	tests := []struct {
		name     string
		quantity any
		want     float64
		display  string
	}{
		{"above purchased", 5, 3, "30.00"},
		{"within range", 2, 2, "20.00"},
		{"zero", 0, 1, "10.00"},
		{"negative", -4, 1, "10.00"},
		{"non numeric", "lots", 1, "10.00"},
		{"numeric string", "2", 2, "20.00"},
		{"missing", nil, 1, "10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := s.do(t, http.MethodPost, "/api/returns/quote", map[string]any{
				"orderId":   42,
				"productId": 9,
				"quantity":  tt.quantity,
			})
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, body["quantity"])
			assert.Equal(t, tt.display, body["refundDisplay"])
			assert.Equal(t, tt.want*10, body["refundAmount"])
			assert.Equal(t, 3.0, body["maxQuantity"])
		})
	}
}

func TestQuoteReturnUnknownProduct(t *testing.T) {
	s := newTestServer(t, newFixtureStore())

	rec, _ := s.do(t, http.MethodPost, "/api/returns/quote", map[string]any{"orderId": "42", "productId": "2", "quantity": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/returns/quote", map[string]any{"productId": 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDraftReturn(t *testing.T) {
	s := newTestServer(t, newFixtureStore())

	rec, body := s.do(t, http.MethodPost, "/api/returns/draft", map[string]any{
		"customerId": 7,
		"orderId":    42,
		"productId":  9,
		"quantity":   5,
		"reason":     "torn package",
	})

	require.Equal(t, http.StatusOK, rec.Code, body)
	draft := body["draft"].(map[string]any)
	assert.NotEmpty(t, draft["id"])
	assert.Equal(t, "7", draft["customerId"])
	assert.Equal(t, "Ayşe Yılmaz", draft["customerName"])
	assert.Equal(t, "42", draft["orderId"])
	assert.Equal(t, "42", draft["lineRef"])
	assert.Equal(t, "Pirinç", draft["productName"])
	assert.Equal(t, 3.0, draft["quantity"])
	assert.Equal(t, "torn package", draft["reason"])
	assert.Equal(t, 30.0, draft["refundAmount"])
	assert.Equal(t, "30.00", body["refundDisplay"])
	assert.Equal(t, "TRY", body["currency"])
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.DraftsBuilt))
}

func TestDraftReturnScalarItemsOrder(t *testing.T) {
	s := newTestServer(t, newFixtureStore())

	rec, body := s.do(t, http.MethodPost, "/api/returns/draft", map[string]any{
		"customerId": "8",
		"orderId":    "50",
		"productId":  "9",
		"quantity":   1,
		"reason":     "expired",
	})

	require.Equal(t, http.StatusOK, rec.Code, body)
	assert.Equal(t, "50", body["draft"].(map[string]any)["lineRef"])
}

func TestDraftReturnRejectsIncompleteForms(t *testing.T) {
	tests := []struct {
		name   string
		body   map[string]any
		status int
		reason string
	}{
		{
			name:   "blank reason",
			body:   map[string]any{"customerId": 7, "orderId": 42, "productId": 9, "quantity": 1, "reason": "   "},
			status: http.StatusBadRequest,
			reason: "invalid_body",
		},
		{
			name:   "missing product",
			body:   map[string]any{"customerId": 7, "orderId": 42, "quantity": 1, "reason": "x"},
			status: http.StatusBadRequest,
			reason: "invalid_body",
		},
		{
			name:   "non numeric quantity",
			body:   map[string]any{"customerId": 7, "orderId": 42, "productId": 9, "quantity": "many", "reason": "x"},
			status: http.StatusBadRequest,
			reason: "invalid_quantity",
		},
		{
			name:   "zero quantity",
			body:   map[string]any{"customerId": 7, "orderId": 42, "productId": 9, "quantity": 0, "reason": "x"},
			status: http.StatusBadRequest,
			reason: "invalid_quantity",
		},
		{
			name:   "unknown customer",
			body:   map[string]any{"customerId": 1, "orderId": 42, "productId": 9, "quantity": 1, "reason": "x"},
			status: http.StatusNotFound,
			reason: "unknown_customer",
		},
		{
			name:   "order of another customer",
			body:   map[string]any{"customerId": 8, "orderId": 42, "productId": 9, "quantity": 1, "reason": "x"},
			status: http.StatusNotFound,
			reason: "unknown_order",
		},
		{
			name:   "order without lines",
			body:   map[string]any{"customerId": 7, "orderId": 44, "productId": 9, "quantity": 1, "reason": "x"},
			status: http.StatusUnprocessableEntity,
			reason: "unknown_product",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, newFixtureStore())

			rec, body := s.do(t, http.MethodPost, "/api/returns/draft", tt.body)

			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, body["error"])
			assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.DraftsDenied.WithLabelValues(tt.reason)))
			assert.Equal(t, 0.0, testutil.ToFloat64(s.metrics.DraftsBuilt))
		})
	}
}

func TestParsePaginationParams(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	_, _, err = parsePaginationParams("1", "x")
	assert.ErrorIs(t, err, errInvalidPagination)

	assert.Equal(t, []int{3}, paginate([]int{1, 2, 3}, 2, 2))
	assert.Equal(t, []int{}, paginate([]int{1, 2, 3}, 9, 2))
}
