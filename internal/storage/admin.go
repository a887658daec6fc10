package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/linemk/pix-shop/internal/domain/models"
)

var ErrAdminNotFound = errors.New("admin user not found")

// AdminStorage looks up administrators. Admins are seeded by migration;
// there is no self-registration.
type AdminStorage interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

type adminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) AdminStorage {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	admin := &models.AdminUser{}
	row := r.db.QueryRowContext(ctx, "SELECT id, email, pass_hash FROM admin_users WHERE email = $1", email)
	if err := row.Scan(&admin.ID, &admin.Email, &admin.PassHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}
