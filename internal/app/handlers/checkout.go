package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/pix-shop/internal/cart"
	"github.com/linemk/pix-shop/internal/service"
)

// CheckoutRequest carries the optional customer contact fields
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name" validate:"max=120"`
	CustomerPhone string `json:"customer_phone" validate:"max=32"`
}

// CheckoutHandler handles POST /api/cart/{sessionID}/checkout
func CheckoutHandler(log *slog.Logger, store *cart.Store, checkout service.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckoutHandler"
		logger := log.With(slog.String("op", op))

		c, err := store.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "cart not found", http.StatusNotFound)
			return
		}

		// body is optional, both fields may be omitted
		var req CheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		result, err := checkout.Finalize(r.Context(), c, req.CustomerName, req.CustomerPhone)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrPIXKeyNotConfigured):
				http.Error(w, "pix key is not configured", http.StatusServiceUnavailable)
			case errors.Is(err, service.ErrEmptyCart):
				http.Error(w, "cart is empty", http.StatusBadRequest)
			case errors.Is(err, service.ErrCheckoutInProgress):
				http.Error(w, "checkout already in progress", http.StatusConflict)
			default:
				logger.Error("checkout failed", slog.Any("error", err))
				http.Error(w, "failed to create order, please try again", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			return
		}
	}
}
