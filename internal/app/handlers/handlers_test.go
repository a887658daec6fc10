package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/pix-shop/internal/app/handlers"
	"github.com/linemk/pix-shop/internal/cart"
	"github.com/linemk/pix-shop/internal/domain/models"
	"github.com/linemk/pix-shop/internal/service"
	"github.com/linemk/pix-shop/internal/storage"
	"github.com/stretchr/testify/assert"
)

// fakeAuthService is a stub for AuthHandler tests
type fakeAuthService struct {
	token string
	err   error
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return f.token, f.err
}

type fakeCatalogService struct {
	products map[int64]*models.Product
	err      error
}

func (f *fakeCatalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Product
	for _, p := range f.products {
		if p.Available {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalogService) ListAllProducts(ctx context.Context) ([]*models.Product, error) {
	var out []*models.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, f.err
}

func (f *fakeCatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, storage.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeCatalogService) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	p.ID = int64(len(f.products) + 1)
	p.CreatedAt = time.Now()
	f.products[p.ID] = p
	return p, f.err
}

func (f *fakeCatalogService) UpdateProduct(ctx context.Context, p *models.Product) error {
	return f.err
}

func (f *fakeCatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return f.err
}

type fakeCheckoutService struct {
	result *service.CheckoutResult
	err    error

	gotName  string
	gotPhone string
}

func (f *fakeCheckoutService) Finalize(ctx context.Context, c *cart.Cart, customerName, customerPhone string) (*service.CheckoutResult, error) {
	f.gotName = customerName
	f.gotPhone = customerPhone
	return f.result, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestAuthHandler_Success(t *testing.T) {
	fakeSvc := &fakeAuthService{token: "test-token", err: nil}
	handler := handlers.AuthHandler(testLogger(), fakeSvc)

	reqBody := `{"email": "admin@example.com", "password": "password123"}`
	req := httptest.NewRequest("POST", "/api/admin/auth", bytes.NewBufferString(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Token string `json:"token"`
	}
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, "test-token", resp.Token)
}

func TestAuthHandler_InvalidJSON(t *testing.T) {
	handler := handlers.AuthHandler(testLogger(), &fakeAuthService{})

	reqBody := `{"email": "admin@example.com", "password":`
	req := httptest.NewRequest("POST", "/api/admin/auth", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthHandler_ValidationError(t *testing.T) {
	handler := handlers.AuthHandler(testLogger(), &fakeAuthService{})

	reqBody := `{"email": "admin@example.com", "password": "short"}`
	req := httptest.NewRequest("POST", "/api/admin/auth", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthHandler_InvalidCredentials(t *testing.T) {
	handler := handlers.AuthHandler(testLogger(), &fakeAuthService{err: service.ErrInvalidCredentials})

	reqBody := `{"email": "admin@example.com", "password": "password123"}`
	req := httptest.NewRequest("POST", "/api/admin/auth", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestListProductsHandler_Success(t *testing.T) {
	catalog := &fakeCatalogService{products: map[int64]*models.Product{
		1: {ID: 1, Name: "Brigadeiro box", Price: 2500, Available: true},
		2: {ID: 2, Name: "Old item", Price: 100, Available: false},
	}}
	handler := handlers.ListProductsHandler(testLogger(), catalog)

	req := httptest.NewRequest("GET", "/api/products", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var views []struct {
		Name         string `json:"name"`
		PriceDisplay string `json:"price"`
	}
	err := json.NewDecoder(rr.Body).Decode(&views)
	assert.NoError(t, err)
	assert.Len(t, views, 1, "unavailable products are hidden")
	assert.Equal(t, "R$ 25.00", views[0].PriceDisplay)
}

func newCartRouter(store *cart.Store, catalog service.CatalogService, checkout service.CheckoutService) chi.Router {
	r := chi.NewRouter()
	log := testLogger()
	r.Post("/api/cart", handlers.CreateCartHandler(log, store))
	r.Get("/api/cart/{sessionID}", handlers.GetCartHandler(log, store))
	r.Post("/api/cart/{sessionID}/items", handlers.AddItemHandler(log, store, catalog))
	r.Put("/api/cart/{sessionID}/items/{productID}", handlers.UpdateItemHandler(log, store))
	r.Delete("/api/cart/{sessionID}/items/{productID}", handlers.RemoveItemHandler(log, store))
	r.Post("/api/cart/{sessionID}/checkout", handlers.CheckoutHandler(log, store, checkout))
	return r
}

func TestCartHandlers_AddUpdateRemove(t *testing.T) {
	store := cart.NewStore(time.Hour)
	catalog := &fakeCatalogService{products: map[int64]*models.Product{
		1: {ID: 1, Name: "A", Price: 1000, Available: true},
	}}
	router := newCartRouter(store, catalog, &fakeCheckoutService{})

	// create a session
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/api/cart", nil))
	assert.Equal(t, http.StatusCreated, rr.Code)
	var created struct {
		SessionID string `json:"session_id"`
	}
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.NotEmpty(t, created.SessionID)

	// add 2x product 1
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/api/cart/"+created.SessionID+"/items",
		bytes.NewBufferString(`{"product_id": 1, "quantity": 2}`)))
	assert.Equal(t, http.StatusOK, rr.Code)

	var view struct {
		Total        int64  `json:"total_centavos"`
		TotalDisplay string `json:"total"`
	}
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&view))
	assert.Equal(t, int64(2000), view.Total)
	assert.Equal(t, "R$ 20.00", view.TotalDisplay)

	// set quantity to 0 removes the line
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("PUT", "/api/cart/"+created.SessionID+"/items/1",
		bytes.NewBufferString(`{"quantity": 0}`)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&view))
	assert.Equal(t, int64(0), view.Total)

	// removing again reports not found
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("DELETE", "/api/cart/"+created.SessionID+"/items/1", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAddItemHandler_UnknownProduct(t *testing.T) {
	store := cart.NewStore(time.Hour)
	catalog := &fakeCatalogService{products: map[int64]*models.Product{}}
	router := newCartRouter(store, catalog, &fakeCheckoutService{})

	id, _ := store.Create()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/api/cart/"+id+"/items",
		bytes.NewBufferString(`{"product_id": 9, "quantity": 1}`)))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAddItemHandler_UnavailableProduct(t *testing.T) {
	store := cart.NewStore(time.Hour)
	catalog := &fakeCatalogService{products: map[int64]*models.Product{
		1: {ID: 1, Name: "A", Price: 1000, Available: false},
	}}
	router := newCartRouter(store, catalog, &fakeCheckoutService{})

	id, _ := store.Create()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/api/cart/"+id+"/items",
		bytes.NewBufferString(`{"product_id": 1, "quantity": 1}`)))
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestCheckoutHandler_Success(t *testing.T) {
	store := cart.NewStore(time.Hour)
	checkout := &fakeCheckoutService{result: &service.CheckoutResult{
		SaleID:       7,
		TotalDisplay: "R$ 25.50",
		QRCode:       "data:image/png;base64,abc",
		WhatsAppLink: "https://wa.me/5511934476935?text=x",
	}}
	router := newCartRouter(store, &fakeCatalogService{}, checkout)

	id, _ := store.Create()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/api/cart/"+id+"/checkout",
		bytes.NewBufferString(`{"customer_name": "Maria"}`)))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Maria", checkout.gotName)

	var result service.CheckoutResult
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
	assert.Equal(t, int64(7), result.SaleID)
	assert.Equal(t, "R$ 25.50", result.TotalDisplay)
}

func TestCheckoutHandler_EmptyBody(t *testing.T) {
	store := cart.NewStore(time.Hour)
	checkout := &fakeCheckoutService{result: &service.CheckoutResult{SaleID: 1}}
	router := newCartRouter(store, &fakeCatalogService{}, checkout)

	id, _ := store.Create()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/api/cart/"+id+"/checkout", nil))
	assert.Equal(t, http.StatusCreated, rr.Code, "contact fields are optional")
}

func TestCheckoutHandler_PIXKeyMissing(t *testing.T) {
	store := cart.NewStore(time.Hour)
	checkout := &fakeCheckoutService{err: service.ErrPIXKeyNotConfigured}
	router := newCartRouter(store, &fakeCatalogService{}, checkout)

	id, _ := store.Create()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/api/cart/"+id+"/checkout", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestCheckoutHandler_InFlight(t *testing.T) {
	store := cart.NewStore(time.Hour)
	checkout := &fakeCheckoutService{err: service.ErrCheckoutInProgress}
	router := newCartRouter(store, &fakeCatalogService{}, checkout)

	id, _ := store.Create()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/api/cart/"+id+"/checkout", nil))
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestCheckoutHandler_UnknownSession(t *testing.T) {
	store := cart.NewStore(time.Hour)
	router := newCartRouter(store, &fakeCatalogService{}, &fakeCheckoutService{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/api/cart/no-such-session/checkout", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
