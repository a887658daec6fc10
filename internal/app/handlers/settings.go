package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/linemk/pix-shop/internal/domain/models"
	"github.com/linemk/pix-shop/internal/service"
)

// GetSettingsHandler handles GET /api/settings and GET /api/admin/settings.
// The PIX key is public by nature: it is the payload of the payment QR.
func GetSettingsHandler(log *slog.Logger, settings service.SettingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetSettingsHandler"
		logger := log.With(slog.String("op", op))

		s, err := settings.GetSettings(r.Context())
		if err != nil {
			logger.Error("failed to get settings", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}
}

// UpdateSettingsRequest is the admin settings payload
type UpdateSettingsRequest struct {
	StoreName      string `json:"store_name" validate:"max=200"`
	PIXKey         string `json:"pix_key" validate:"max=200"`
	WhatsAppNumber string `json:"whatsapp_number" validate:"max=32"`
	PrimaryColor   string `json:"primary_color" validate:"omitempty,hexcolor"`
}

// UpdateSettingsHandler handles PUT /api/admin/settings
func UpdateSettingsHandler(log *slog.Logger, settings service.SettingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateSettingsHandler"
		logger := log.With(slog.String("op", op))

		var req UpdateSettingsRequest
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

		s := &models.SiteSettings{
			StoreName:      req.StoreName,
			PIXKey:         req.PIXKey,
			WhatsAppNumber: req.WhatsAppNumber,
			PrimaryColor:   req.PrimaryColor,
		}
		if err := settings.UpdateSettings(r.Context(), s); err != nil {
			logger.Error("failed to update settings", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
