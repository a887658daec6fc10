package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/linemk/pix-shop/internal/domain/models"
)

var ErrSaleNotFound = errors.New("sale not found")

// SaleStorage describes order persistence. A sale row is written once
// at checkout; only its status changes afterwards, via the admin flow.
type SaleStorage interface {
	// CreateSale inserts a new sale and fills ID/CreatedAt on the model.
	CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	// ListSales returns all sales, newest first.
	ListSales(ctx context.Context) ([]*models.Sale, error)
	// LockSaleByIDTx loads a sale inside a transaction with a row lock.
	LockSaleByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Sale, error)
	// UpdateSaleStatusTx changes the status inside the same transaction.
	UpdateSaleStatusTx(ctx context.Context, tx *sql.Tx, id int64, status string) error
}

type saleRepository struct {
	db *sql.DB
}

func NewSaleRepository(db *sql.DB) SaleStorage {
	return &saleRepository{db: db}
}

const saleColumns = "id, product_id, product_name, quantity, unit_price, total_amount, customer_name, customer_phone, status, created_at"

func (r *saleRepository) CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	query := `INSERT INTO sales (product_id, product_name, quantity, unit_price, total_amount, customer_name, customer_phone, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW()) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		sale.ProductID,
		sale.ProductName,
		sale.Quantity,
		sale.UnitPrice,
		sale.TotalAmount,
		sale.CustomerName,
		sale.CustomerPhone,
		sale.Status,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}
	return sale, nil
}

func (r *saleRepository) ListSales(ctx context.Context) ([]*models.Sale, error) {
	query := fmt.Sprintf("SELECT %s FROM sales ORDER BY created_at DESC", saleColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		sale := &models.Sale{}
		if err := scanSale(rows, sale); err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *saleRepository) LockSaleByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Sale, error) {
	sale := &models.Sale{}
	query := fmt.Sprintf("SELECT %s FROM sales WHERE id = $1 FOR UPDATE NOWAIT", saleColumns)
	if err := scanSale(tx.QueryRowContext(ctx, query, id), sale); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "55P03" { // lock
				return nil, fmt.Errorf("sale is locked, please try again: %w", err)
			}
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return sale, nil
}

func (r *saleRepository) UpdateSaleStatusTx(ctx context.Context, tx *sql.Tx, id int64, status string) error {
	res, err := tx.ExecContext(ctx, "UPDATE sales SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSaleNotFound
	}
	return nil
}

func scanSale(row interface{ Scan(...any) error }, sale *models.Sale) error {
	return row.Scan(
		&sale.ID,
		&sale.ProductID,
		&sale.ProductName,
		&sale.Quantity,
		&sale.UnitPrice,
		&sale.TotalAmount,
		&sale.CustomerName,
		&sale.CustomerPhone,
		&sale.Status,
		&sale.CreatedAt,
	)
}
