package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	security "github.com/linemk/pix-shop/internal/jwt-new"
	"github.com/linemk/pix-shop/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	log       *slog.Logger
	adminRepo storage.AdminStorage
	tokenTTL  time.Duration
}

func NewAuthService(log *slog.Logger, adminRepo storage.AdminStorage, tokenTTL time.Duration) AuthService {
	return &authService{
		log:       log,
		adminRepo: adminRepo,
		tokenTTL:  tokenTTL,
	}
}

// Login authenticates a store administrator. Unknown emails and wrong
// passwords both surface as ErrInvalidCredentials; there is no
// self-registration, admins are seeded by migration.
func (a *authService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "service.AuthService.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	logger.Info("checking admin user")

	admin, err := a.adminRepo.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrAdminNotFound) {
			logger.Warn("admin not found")
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		logger.Error("failed to get admin", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to get admin: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(admin.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := security.NewToken(ctx, admin, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("admin logged in successfully", slog.Int64("adminID", admin.ID))
	return token, nil
}
