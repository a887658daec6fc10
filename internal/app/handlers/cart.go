package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/pix-shop/internal/cart"
	"github.com/linemk/pix-shop/internal/domain/models"
	"github.com/linemk/pix-shop/internal/lib/money"
	"github.com/linemk/pix-shop/internal/service"
	"github.com/linemk/pix-shop/internal/storage"
)

// CartView is the cart as shown to the customer
type CartView struct {
	Items        []models.CartItem `json:"items"`
	Total        int64             `json:"total_centavos"`
	TotalDisplay string            `json:"total"`
}

func newCartView(c *cart.Cart) CartView {
	return CartView{
		Items:        c.Items(),
		Total:        c.TotalPrice(),
		TotalDisplay: money.FormatBRL(c.TotalPrice()),
	}
}

// CreateCartHandler handles POST /api/cart — starts a browsing session
func CreateCartHandler(log *slog.Logger, store *cart.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCartHandler"
		logger := log.With(slog.String("op", op))

		id, _ := store.Create()
		logger.Info("cart created", slog.String("sessionID", id))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(map[string]string{"session_id": id}); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			return
		}
	}
}

// GetCartHandler handles GET /api/cart/{sessionID}
func GetCartHandler(log *slog.Logger, store *cart.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCartHandler"
		logger := log.With(slog.String("op", op))

		c, err := store.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "cart not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newCartView(c)); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}
}

// AddItemRequest adds a product to the cart
type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// AddItemHandler handles POST /api/cart/{sessionID}/items
func AddItemHandler(log *slog.Logger, store *cart.Store, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddItemHandler"
		logger := log.With(slog.String("op", op))

		c, err := store.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "cart not found", http.StatusNotFound)
			return
		}

		var req AddItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		product, err := catalog.GetProduct(r.Context(), req.ProductID)
		if err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to get product", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if !product.Available {
			http.Error(w, "product is not available", http.StatusConflict)
			return
		}

		c.Add(*product, req.Quantity)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newCartView(c)); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			return
		}
	}
}

// UpdateItemRequest sets the quantity of a cart line
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItemHandler handles PUT /api/cart/{sessionID}/items/{productID};
// a quantity <= 0 removes the line
func UpdateItemHandler(log *slog.Logger, store *cart.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateItemHandler"
		logger := log.With(slog.String("op", op))

		c, err := store.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "cart not found", http.StatusNotFound)
			return
		}

		productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		var req UpdateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if !c.SetQuantity(productID, req.Quantity) {
			http.Error(w, "item not in cart", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newCartView(c)); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			return
		}
	}
}

// RemoveItemHandler handles DELETE /api/cart/{sessionID}/items/{productID}
func RemoveItemHandler(log *slog.Logger, store *cart.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RemoveItemHandler"
		logger := log.With(slog.String("op", op))

		c, err := store.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "cart not found", http.StatusNotFound)
			return
		}

		productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		if !c.Remove(productID) {
			http.Error(w, "item not in cart", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newCartView(c)); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			return
		}
	}
}
