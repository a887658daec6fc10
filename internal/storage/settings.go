package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/linemk/pix-shop/internal/domain/models"
)

var ErrSettingsNotFound = errors.New("site settings not found")

// SettingsStorage reads and writes the single site_settings row.
type SettingsStorage interface {
	GetSettings(ctx context.Context) (*models.SiteSettings, error)
	UpdateSettings(ctx context.Context, s *models.SiteSettings) error
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsStorage {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	s := &models.SiteSettings{}
	row := r.db.QueryRowContext(ctx,
		"SELECT store_name, pix_key, whatsapp_number, primary_color FROM site_settings WHERE id = 1")
	if err := row.Scan(&s.StoreName, &s.PIXKey, &s.WhatsAppNumber, &s.PrimaryColor); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *settingsRepository) UpdateSettings(ctx context.Context, s *models.SiteSettings) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE site_settings SET store_name = $1, pix_key = $2, whatsapp_number = $3, primary_color = $4 WHERE id = 1",
		s.StoreName, s.PIXKey, s.WhatsAppNumber, s.PrimaryColor)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSettingsNotFound
	}
	return nil
}
