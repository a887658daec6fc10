package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/pix-shop/internal/domain/models"
	"github.com/linemk/pix-shop/internal/lib/money"
	"github.com/linemk/pix-shop/internal/service"
	"github.com/linemk/pix-shop/internal/storage"
)

// SaleView adds the rendered total to the sale record
type SaleView struct {
	*models.Sale
	TotalDisplay string `json:"total"`
}

// ListSalesHandler handles GET /api/admin/sales
func ListSalesHandler(log *slog.Logger, sales service.SalesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListSalesHandler"
		logger := log.With(slog.String("op", op))

		list, err := sales.ListSales(r.Context())
		if err != nil {
			logger.Error("failed to list sales", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		views := make([]SaleView, 0, len(list))
		for _, s := range list {
			views = append(views, SaleView{Sale: s, TotalDisplay: money.FormatBRL(s.TotalAmount)})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(views); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}
}

// SettleSaleRequest moves a pending sale to a terminal status
type SettleSaleRequest struct {
	Status string `json:"status" validate:"required,oneof=paid cancelled"`
}

// SettleSaleHandler handles POST /api/admin/sales/{id}/settle
func SettleSaleHandler(log *slog.Logger, sales service.SalesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SettleSaleHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid sale id", http.StatusBadRequest)
			return
		}

		var req SettleSaleRequest
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

		if err := sales.Settle(r.Context(), id, req.Status); err != nil {
			switch {
			case errors.Is(err, storage.ErrSaleNotFound):
				http.Error(w, "sale not found", http.StatusNotFound)
			case errors.Is(err, service.ErrSaleNotPending):
				http.Error(w, "sale is not pending", http.StatusConflict)
			default:
				logger.Error("failed to settle sale", slog.Any("error", err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
