package storage_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/linemk/pix-shop/internal/domain/models"
	"github.com/linemk/pix-shop/internal/storage"
	"github.com/stretchr/testify/assert"
)

func productColumns() []string {
	return []string{"id", "name", "description", "price", "image_url", "available", "created_at"}
}

func saleColumns() []string {
	return []string{"id", "product_id", "product_name", "quantity", "unit_price", "total_amount", "customer_name", "customer_phone", "status", "created_at"}
}

func TestGetProductByID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(productColumns()).
		AddRow(int64(1), "Brigadeiro box", "12 units", int64(2500), "https://img.example/brigadeiro.jpg", true, time.Now())

	mock.ExpectQuery("SELECT .+ FROM products WHERE id = \\$1").
		WithArgs(int64(1)).WillReturnRows(rows)

	p, err := repo.GetProductByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Brigadeiro box", p.Name)
	assert.Equal(t, int64(2500), p.Price)
	assert.True(t, p.Available)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(db)

	mock.ExpectQuery("SELECT .+ FROM products WHERE id = \\$1").
		WithArgs(int64(2)).WillReturnRows(sqlmock.NewRows(productColumns()))

	p, err := repo.GetProductByID(context.Background(), 2)
	assert.ErrorIs(t, err, storage.ErrProductNotFound)
	assert.Nil(t, p)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAvailable_FiltersAndOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(db)

	rows := sqlmock.NewRows(productColumns()).
		AddRow(int64(2), "B", "", int64(550), "", true, time.Now()).
		AddRow(int64(1), "A", "", int64(1000), "", true, time.Now().Add(-time.Hour))

	mock.ExpectQuery("SELECT .+ FROM products WHERE available = true ORDER BY created_at DESC").
		WillReturnRows(rows)

	products, err := repo.ListAvailable(context.Background())
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "B", products[0].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSale_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewSaleRepository(db)
	name := "Maria"

	sale := &models.Sale{
		ProductName:  "2x A, 1x B",
		Quantity:     3,
		TotalAmount:  2550,
		CustomerName: &name,
		Status:       models.SaleStatusPending,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sales")).
		WithArgs(nil, "2x A, 1x B", 3, int64(0), int64(2550), "Maria", nil, models.SaleStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), time.Now()))

	created, err := repo.CreateSale(context.Background(), sale)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSale_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewSaleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sales")).
		WillReturnError(errors.New("db error"))

	created, err := repo.CreateSale(context.Background(), &models.Sale{Status: models.SaleStatusPending})
	assert.Error(t, err)
	assert.Nil(t, created)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSales_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewSaleRepository(db)

	rows := sqlmock.NewRows(saleColumns()).
		AddRow(int64(2), nil, "1x B", 1, int64(0), int64(550), nil, nil, models.SaleStatusPending, time.Now()).
		AddRow(int64(1), nil, "2x A", 2, int64(0), int64(2000), nil, nil, models.SaleStatusPaid, time.Now().Add(-time.Hour))

	mock.ExpectQuery("SELECT .+ FROM sales ORDER BY created_at DESC").WillReturnRows(rows)

	sales, err := repo.ListSales(context.Background())
	assert.NoError(t, err)
	assert.Len(t, sales, 2)
	assert.Equal(t, int64(2), sales[0].ID)
	assert.Nil(t, sales[0].ProductID)
	assert.Equal(t, models.SaleStatusPaid, sales[1].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSettings_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewSettingsRepository(db)

	rows := sqlmock.NewRows([]string{"store_name", "pix_key", "whatsapp_number", "primary_color"}).
		AddRow("Doces da Ju", "juliette@example.com", "5511934476935", "#e91e63")

	mock.ExpectQuery("SELECT store_name, pix_key, whatsapp_number, primary_color FROM site_settings WHERE id = 1").
		WillReturnRows(rows)

	settings, err := repo.GetSettings(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "juliette@example.com", settings.PIXKey)
	assert.Equal(t, "5511934476935", settings.WhatsAppNumber)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSettings_MissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewSettingsRepository(db)

	mock.ExpectExec("UPDATE site_settings SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateSettings(context.Background(), &models.SiteSettings{})
	assert.ErrorIs(t, err, storage.ErrSettingsNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAdminByEmail_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewAdminRepository(db)

	rows := sqlmock.NewRows([]string{"id", "email", "pass_hash"}).
		AddRow(int64(1), "admin@example.com", []byte("hashed-password"))

	mock.ExpectQuery("SELECT id, email, pass_hash FROM admin_users WHERE email = \\$1").
		WithArgs("admin@example.com").WillReturnRows(rows)

	admin, err := repo.GetAdminByEmail(context.Background(), "admin@example.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), admin.ID)
	assert.Equal(t, []byte("hashed-password"), admin.PassHash)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAdminByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewAdminRepository(db)

	mock.ExpectQuery("SELECT id, email, pass_hash FROM admin_users WHERE email = \\$1").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "pass_hash"}))

	admin, err := repo.GetAdminByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, storage.ErrAdminNotFound)
	assert.Nil(t, admin)

	assert.NoError(t, mock.ExpectationsWereMet())
}
