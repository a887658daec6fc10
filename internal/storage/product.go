package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/pix-shop/internal/domain/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductStorage describes catalog persistence.
type ProductStorage interface {
	// ListAvailable returns products shown on the storefront.
	ListAvailable(ctx context.Context) ([]*models.Product, error)
	// ListAll returns every product, for the admin panel.
	ListAll(ctx context.Context) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

const productColumns = "id, name, description, price, image_url, available, created_at"

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Available, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) ListAvailable(ctx context.Context) ([]*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE available = true ORDER BY created_at DESC", productColumns)
	return r.list(ctx, query)
}

func (r *productRepository) ListAll(ctx context.Context) ([]*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products ORDER BY created_at DESC", productColumns)
	return r.list(ctx, query)
}

func (r *productRepository) list(ctx context.Context, query string) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	query := `INSERT INTO products (name, description, price, image_url, available, created_at)
	          VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.Price, p.ImageURL, p.Available).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, p *models.Product) error {
	query := `UPDATE products SET name = $1, description = $2, price = $3, image_url = $4, available = $5 WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Price, p.ImageURL, p.Available, p.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
