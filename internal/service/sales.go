package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/pix-shop/internal/domain/models"
	"github.com/linemk/pix-shop/internal/storage"
)

var ErrSaleNotPending = errors.New("sale is not pending")

// SalesService is the admin view over sales: listing and settling.
type SalesService interface {
	ListSales(ctx context.Context) ([]*models.Sale, error)
	// Settle moves a pending sale to paid or cancelled.
	Settle(ctx context.Context, saleID int64, status string) error
}

type salesService struct {
	log      *slog.Logger
	db       *sql.DB
	saleRepo storage.SaleStorage
}

func NewSalesService(log *slog.Logger, db *sql.DB, saleRepo storage.SaleStorage) SalesService {
	return &salesService{
		log:      log,
		db:       db,
		saleRepo: saleRepo,
	}
}

func (s *salesService) ListSales(ctx context.Context) ([]*models.Sale, error) {
	const op = "service.SalesService.ListSales"
	sales, err := s.saleRepo.ListSales(ctx)
	if err != nil {
		s.log.Error("failed to list sales", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sales, nil
}

// Settle updates the status of a pending sale inside a transaction.
// The row is locked so two admins cannot settle the same sale twice.
func (s *salesService) Settle(ctx context.Context, saleID int64, status string) error {
	const op = "service.SalesService.Settle"
	logger := s.log.With(slog.String("op", op), slog.Int64("saleID", saleID), slog.String("status", status))

	if status != models.SaleStatusPaid && status != models.SaleStatusCancelled {
		return fmt.Errorf("%s: invalid target status %q", op, status)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	sale, err := s.saleRepo.LockSaleByIDTx(ctx, tx, saleID)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to get sale", slog.Any("error", err))
		return fmt.Errorf("%s: failed to get sale: %w", op, err)
	}

	if sale.Status != models.SaleStatusPending {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Warn("sale is not pending", slog.String("current", sale.Status))
		return fmt.Errorf("%s: %w", op, ErrSaleNotPending)
	}

	if err := s.saleRepo.UpdateSaleStatusTx(ctx, tx, saleID, status); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to update sale status", slog.Any("error", err))
		return fmt.Errorf("%s: failed to update sale status: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("sale settled")
	return nil
}
