package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/pix-shop/internal/domain/models"
	"github.com/linemk/pix-shop/internal/storage"
)

// SettingsService exposes the store configuration: public read for the
// storefront, update for the admin panel.
type SettingsService interface {
	GetSettings(ctx context.Context) (*models.SiteSettings, error)
	UpdateSettings(ctx context.Context, s *models.SiteSettings) error
}

type settingsService struct {
	log          *slog.Logger
	settingsRepo storage.SettingsStorage
}

func NewSettingsService(log *slog.Logger, settingsRepo storage.SettingsStorage) SettingsService {
	return &settingsService{log: log, settingsRepo: settingsRepo}
}

func (s *settingsService) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	const op = "service.SettingsService.GetSettings"
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		s.log.Error("failed to get settings", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, settings *models.SiteSettings) error {
	const op = "service.SettingsService.UpdateSettings"
	logger := s.log.With(slog.String("op", op))

	if err := s.settingsRepo.UpdateSettings(ctx, settings); err != nil {
		logger.Error("failed to update settings", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("site settings updated")
	return nil
}
