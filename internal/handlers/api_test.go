package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickbites/storefront/internal/catalog"
	"github.com/quickbites/storefront/internal/metrics"
	"github.com/quickbites/storefront/internal/services"
	"github.com/quickbites/storefront/internal/store"
)

type stubScheduler struct{}

func (stubScheduler) AfterFunc(d time.Duration, f func()) store.CancelFunc {
	return func() bool { return true }
}

type fixture struct {
	router *gin.Engine
	cart   *store.CartStore
	orders *store.OrderStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.Load()
	require.NoError(t, err)

	reg := metrics.NewRegistry()
	cart := store.NewCartStore()
	favorites := store.NewFavoritesStore()
	history := store.NewSearchHistoryStore()
	orders := store.NewOrderStore(stubScheduler{}, reg)
	checkout := services.NewCheckoutService(cart, orders)

	router := gin.New()
	NewAPIHandler(cat, cart, favorites, history, orders, checkout, reg).SetupRoutes(router)
	return &fixture{router: router, cart: cart, orders: orders}
}

func (f *fixture) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestListFoods(t *testing.T) {
	f := newFixture(t)

	w, resp := f.do(t, http.MethodGet, "/api/foods", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 18, resp["count"])
}

func TestListFoodsByCategory(t *testing.T) {
	f := newFixture(t)

	w, resp := f.do(t, http.MethodGet, "/api/foods?category=pizza", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, resp["count"])
}

func TestSearchRecordsHistory(t *testing.T) {
	f := newFixture(t)

	w, _ := f.do(t, http.MethodGet, "/api/foods?q=ramen", "")
	assert.Equal(t, http.StatusOK, w.Code)

	_, resp := f.do(t, http.MethodGet, "/api/search/history", "")
	require.Contains(t, resp, "recent")
	assert.Equal(t, []any{"ramen"}, resp["recent"])
}

func TestAddToCartAndQuote(t *testing.T) {
	f := newFixture(t)

	w, _ := f.do(t, http.MethodPost, "/api/cart/items", `{"item_id": 1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = f.do(t, http.MethodPost, "/api/cart/items", `{"item_id": 1}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := f.do(t, http.MethodGet, "/api/cart", "")
	assert.Equal(t, http.StatusOK, w.Code)

	quote, ok := resp["quote"].(map[string]any)
	require.True(t, ok)
	// Two Margherita Pizzas: subtotal 25.98, tax 2.0784, fee 2.99.
	assert.Equal(t, "25.98", quote["subtotal"])
	assert.Equal(t, "2.99", quote["delivery_fee"])
	assert.EqualValues(t, 2, quote["item_count"])
}

func TestAddToCartUnknownItem(t *testing.T) {
	f := newFixture(t)

	w, _ := f.do(t, http.MethodPost, "/api/cart/items", `{"item_id": 9999}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCartItemZeroRemoves(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/cart/items", `{"item_id": 1}`)

	w, resp := f.do(t, http.MethodPut, "/api/cart/items/1", `{"quantity": 0}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, resp["item_count"])
	assert.Empty(t, f.cart.Lines())
}

func TestCheckoutFlow(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/cart/items", `{"item_id": 1}`)

	w, resp := f.do(t, http.MethodPost, "/api/checkout",
		`{"delivery_address": "42 Main St", "payment_method": "Credit Card"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	orderID, ok := resp["order_id"].(string)
	require.True(t, ok)
	assert.Equal(t, "30-45 minutes", resp["estimated_delivery"])
	assert.Empty(t, f.cart.Lines(), "checkout must clear the cart")

	w, resp = f.do(t, http.MethodGet, "/api/orders/"+orderID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	order := resp["order"].(map[string]any)
	assert.Equal(t, "preparing", order["status"])
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)

	w, _ := f.do(t, http.MethodPost, "/api/checkout",
		`{"delivery_address": "42 Main St", "payment_method": "Cash"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoritesRoundTrip(t *testing.T) {
	f := newFixture(t)

	w, resp := f.do(t, http.MethodPost, "/api/favorites/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, resp["count"])

	// Repeat favorite stays at one entry.
	_, resp = f.do(t, http.MethodPost, "/api/favorites/1", "")
	assert.EqualValues(t, 1, resp["count"])

	_, resp = f.do(t, http.MethodDelete, "/api/favorites/1", "")
	assert.EqualValues(t, 0, resp["count"])
}

func TestReorderRebuildsCart(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/cart/items", `{"item_id": 1}`)
	f.do(t, http.MethodPost, "/api/cart/items", `{"item_id": 1}`)
	f.do(t, http.MethodPost, "/api/cart/items", `{"item_id": 7}`)

	_, resp := f.do(t, http.MethodPost, "/api/checkout",
		`{"delivery_address": "42 Main St", "payment_method": "Cash"}`)
	orderID := resp["order_id"].(string)
	require.Empty(t, f.cart.Lines())

	w, resp := f.do(t, http.MethodPost, "/api/orders/"+orderID+"/reorder", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, resp["added_lines"])
	assert.EqualValues(t, 3, resp["item_count"])

	line, ok := f.cart.Get(1)
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
}

func TestCancelOrder(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/cart/items", `{"item_id": 1}`)
	_, resp := f.do(t, http.MethodPost, "/api/checkout",
		`{"delivery_address": "42 Main St", "payment_method": "Cash"}`)
	orderID := resp["order_id"].(string)

	w, _ := f.do(t, http.MethodPost, "/api/orders/"+orderID+"/cancel", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// A second cancel conflicts: the order is already terminal.
	w, _ = f.do(t, http.MethodPost, "/api/orders/"+orderID+"/cancel", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = f.do(t, http.MethodPost, "/api/orders/nonexistent/cancel", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	f := newFixture(t)

	w, _ := f.do(t, http.MethodGet, "/api/orders/nonexistent", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	w, resp := f.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])
}
