package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"julianmorley.ca/con-plar/storefront/pkg/ai"
	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/memory"
	"julianmorley.ca/con-plar/storefront/pkg/redis"
	"julianmorley.ca/con-plar/storefront/pkg/seed"
)

type envelope struct {
	Success bool                     `json:"success"`
	Data    json.RawMessage          `json:"data"`
	Message string                   `json:"message"`
	Errors  []global.ValidationError `json:"errors"`
}

type testAPI struct {
	t      *testing.T
	engine *gin.Engine
	store  *memory.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := memory.New()
	_, err := seed.Load(context.Background(), st)
	require.NoError(t, err)

	cfg := &global.Config{Env: "test", CORSOrigins: "http://localhost:3000"}
	h := NewHandler(st, nil, ai.NewReporter("", "", ""))
	return &testAPI{t: t, engine: NewEngine(cfg, h), store: st}
}

func (a *testAPI) do(method, path string, body interface{}) (int, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (a *testAPI) productID(slug string) string {
	a.t.Helper()
	p, err := a.store.GetProductBySlug(context.Background(), slug)
	require.NoError(a.t, err)
	return p.ID
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealthCheck(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestGetProducts_Filters(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodGet, "/api/products?isOnSale=true", nil)
	require.Equal(t, http.StatusOK, code)
	products := decode[[]map[string]interface{}](t, env.Data)
	assert.Len(t, products, 5)

	code, env = api.do(http.MethodGet, "/api/products?brand=Apple&isOnSale=", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]map[string]interface{}](t, env.Data), 2, "empty values are ignored")

	code, env = api.do(http.MethodGet, "/api/products?minPrice=100&maxPrice=10", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]map[string]interface{}](t, env.Data))
}

func TestGetProducts_RejectsMalformedQuery(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodGet, "/api/products?minPrice=cheap&inStock=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
	assert.Len(t, env.Errors, 2)

	for i := 0; i < 20; i++ {
		code, env = api.do(http.MethodGet, "/api/products?isNew=x&maxPrice=y&isOnSale=z&minPrice=w&inStock=v&isFeatured=u", nil)
		require.Equal(t, http.StatusBadRequest, code)
		fields := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			fields = append(fields, e.Field)
		}
		assert.Equal(t, []string{"minPrice", "maxPrice", "inStock", "isOnSale", "isFeatured", "isNew"}, fields)
	}
}

func TestGetProduct_BySlugAndID(t *testing.T) {
	api := newTestAPI(t)
	id := api.productID("google-pixel-8-pro")

	code, env := api.do(http.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "google-pixel-8-pro", decode[map[string]interface{}](t, env.Data)["slug"])

	code, _ = api.do(http.MethodGet, "/api/products/slug/google-pixel-8-pro", nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = api.do(http.MethodGet, "/api/products/slug/nokia-3310", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Product not found", env.Message)
}

func TestGetDeals(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodGet, "/api/products/deals", nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, decode[[]map[string]interface{}](t, env.Data))
}

func TestCreateProduct(t *testing.T) {
	api := newTestAPI(t)
	categoryID := decode[map[string]interface{}](t, func() json.RawMessage {
		_, env := api.do(http.MethodGet, "/api/categories/slug/cases-protection", nil)
		return env.Data
	}())["id"]

	body := map[string]interface{}{
		"name":       "Clear Case",
		"categoryId": categoryID,
		"price":      "14.99",
		"image":      "https://example.com/case.jpg",
	}
	code, env := api.do(http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusCreated, code, env.Message)
	assert.Equal(t, "clear-case", decode[map[string]interface{}](t, env.Data)["slug"])

	code, _ = api.do(http.MethodPost, "/api/products", body)
	assert.Equal(t, http.StatusConflict, code)

	code, env = api.do(http.MethodPost, "/api/products", map[string]interface{}{"name": "X"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, env.Errors)
}

func TestCategories(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]map[string]interface{}](t, env.Data), 5)

	_, env = api.do(http.MethodGet, "/api/categories/slug/accessories", nil)
	accessories := decode[map[string]interface{}](t, env.Data)

	code, env = api.do(http.MethodGet, "/api/categories/"+accessories["id"].(string)+"/subcategories", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]map[string]interface{}](t, env.Data), 3)

	code, _ = api.do(http.MethodGet, "/api/categories/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCartFlow(t *testing.T) {
	api := newTestAPI(t)
	anker := api.productID("anker-65w-usb-c-charger")

	code, _ := api.do(http.MethodPost, "/api/cart", map[string]interface{}{"userId": "u1", "productId": anker, "quantity": 1})
	require.Equal(t, http.StatusCreated, code)
	code, env := api.do(http.MethodPost, "/api/cart", map[string]interface{}{"userId": "u1", "productId": anker, "quantity": 2})
	require.Equal(t, http.StatusCreated, code)
	item := decode[map[string]interface{}](t, env.Data)
	assert.EqualValues(t, 3, item["quantity"])

	code, env = api.do(http.MethodGet, "/api/cart?userId=u1", nil)
	require.Equal(t, http.StatusOK, code)
	cart := decode[struct {
		Items  []map[string]interface{} `json:"items"`
		Totals map[string]interface{}   `json:"totals"`
	}](t, env.Data)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "149.97", cart.Totals["subtotal"])
	assert.Equal(t, "0", cart.Totals["shipping"])

	itemID := item["id"].(string)
	code, env = api.do(http.MethodPatch, "/api/cart/"+itemID, map[string]interface{}{"quantity": -1})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "quantity", env.Errors[0].Field)

	code, _ = api.do(http.MethodPatch, "/api/cart/"+itemID, map[string]interface{}{"quantity": 1})
	assert.Equal(t, http.StatusOK, code)

	code, _ = api.do(http.MethodDelete, "/api/cart/"+itemID, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodDelete, "/api/cart/"+itemID, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = api.do(http.MethodDelete, "/api/cart?userId=u1", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodPost, "/api/cart", map[string]interface{}{"productId": "nope"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Product not found", env.Message)
}

func TestFavoritesFlow(t *testing.T) {
	api := newTestAPI(t)
	sony := api.productID("sony-wh-1000xm5-headphones")

	code, env := api.do(http.MethodDelete, "/api/favorites?userId=u1", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "productId", env.Errors[0].Field)

	code, _ = api.do(http.MethodPost, "/api/favorites", map[string]interface{}{"userId": "u1", "productId": sony})
	require.Equal(t, http.StatusCreated, code)
	code, _ = api.do(http.MethodPost, "/api/favorites", map[string]interface{}{"userId": "u1", "productId": sony})
	require.Equal(t, http.StatusCreated, code)

	_, env = api.do(http.MethodGet, "/api/favorites?userId=u1", nil)
	assert.Len(t, decode[[]map[string]interface{}](t, env.Data), 1)

	_, env = api.do(http.MethodGet, "/api/favorites/check?userId=u1&productId="+sony, nil)
	assert.Equal(t, map[string]bool{"isFavorite": true}, decode[map[string]bool](t, env.Data))

	code, env = api.do(http.MethodDelete, "/api/favorites?userId=u1&productId="+sony, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]bool{"removed": true}, decode[map[string]bool](t, env.Data))

	code, env = api.do(http.MethodDelete, "/api/favorites?userId=u1&productId="+sony, nil)
	assert.Equal(t, http.StatusOK, code, "removing twice is a no-op")
	assert.True(t, env.Success)
	assert.Equal(t, map[string]bool{"removed": false}, decode[map[string]bool](t, env.Data))

	_, env = api.do(http.MethodGet, "/api/favorites/check?userId=u1&productId="+sony, nil)
	assert.Equal(t, map[string]bool{"isFavorite": false}, decode[map[string]bool](t, env.Data))
}

func TestOrderLifecycle(t *testing.T) {
	api := newTestAPI(t)
	spigen := api.productID("spigen-liquid-air-case")

	code, env := api.do(http.MethodPost, "/api/orders", map[string]interface{}{
		"userId": "u1",
		"items":  []map[string]interface{}{{"productId": spigen, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	order := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, "55.17", order["total"])
	orderID := order["id"].(string)

	code, env = api.do(http.MethodPatch, "/api/orders/"+orderID+"/status", map[string]interface{}{"status": "shipped", "trackingNumber": "TRK1"})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = api.do(http.MethodPatch, "/api/orders/"+orderID+"/status", map[string]interface{}{"status": "delivered"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "TRK1", decode[map[string]interface{}](t, env.Data)["trackingNumber"])

	code, _ = api.do(http.MethodPatch, "/api/orders/"+orderID+"/status", map[string]interface{}{"status": "cancelled"})
	assert.Equal(t, http.StatusConflict, code)

	code, env = api.do(http.MethodPatch, "/api/orders/"+orderID+"/status", map[string]interface{}{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "status", env.Errors[0].Field)

	code, env = api.do(http.MethodGet, "/api/orders/track/TRK1", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, orderID, decode[map[string]interface{}](t, env.Data)["id"])

	_, env = api.do(http.MethodGet, "/api/orders?userId=u1", nil)
	assert.Len(t, decode[[]map[string]interface{}](t, env.Data), 1)

	code, _ = api.do(http.MethodGet, "/api/orders/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodPost, "/api/orders", map[string]interface{}{"userId": "nobody"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
}

func TestSubmitContact(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodPost, "/api/contact", map[string]interface{}{
		"name": "Ada", "email": "not-an-email", "subject": "Hi", "message": "Hello",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "email", env.Errors[0].Field)

	code, _ = api.do(http.MethodPost, "/api/contact", map[string]interface{}{
		"name": "Ada", "email": "ada@example.com", "subject": "Hi", "message": "Hello",
	})
	assert.Equal(t, http.StatusCreated, code)
	assert.Len(t, api.store.ContactMessages(), 1)
}

func TestCatalogAnalytics(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodGet, "/api/analytics/catalog", nil)
	require.Equal(t, http.StatusOK, code)
	stats := decode[ai.CatalogStats](t, env.Data)
	assert.Equal(t, 10, stats.ProductCount)
	assert.Equal(t, 5, stats.OnSaleCount)
	assert.Len(t, stats.Categories, 5)
	require.Len(t, stats.PriceBands, 5)
	assert.Equal(t, "50-200", stats.PriceBands[1].Label)
	assert.Equal(t, 3, stats.PriceBands[1].ProductCount)
	assert.Equal(t, 2, stats.PriceBands[4].ProductCount)

	code, _ = api.do(http.MethodGet, "/api/analytics/catalog?lowStock=-3", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = api.do(http.MethodGet, "/api/analytics/ai/catalog-report", nil)
	require.Equal(t, http.StatusOK, code)
	report := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, false, report["aiEnabled"])
}

func TestCatalogAnalytics_ReportsRecentlyCachedProducts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := memory.New()
	_, err := seed.Load(context.Background(), st)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(mr.Addr(), "")
	t.Cleanup(func() { client.Close() })
	cache := redis.NewProductCache(client, time.Hour)

	cfg := &global.Config{Env: "test", CORSOrigins: "http://localhost:3000"}
	api := &testAPI{t: t, engine: NewEngine(cfg, NewHandler(st, cache, ai.NewReporter("", "", ""))), store: st}

	_, env := api.do(http.MethodGet, "/api/analytics/catalog", nil)
	assert.Empty(t, decode[ai.CatalogStats](t, env.Data).RecentProductIDs)

	pixel := api.productID("google-pixel-8-pro")
	sony := api.productID("sony-wh-1000xm5-headphones")
	code, _ := api.do(http.MethodGet, "/api/products/"+pixel, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodGet, "/api/products/slug/sony-wh-1000xm5-headphones", nil)
	require.Equal(t, http.StatusOK, code)

	code, env = api.do(http.MethodGet, "/api/analytics/catalog", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{sony, pixel}, decode[ai.CatalogStats](t, env.Data).RecentProductIDs)
}
