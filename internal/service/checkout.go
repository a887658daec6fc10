package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/linemk/pix-shop/internal/cart"
	"github.com/linemk/pix-shop/internal/domain/models"
	"github.com/linemk/pix-shop/internal/lib/money"
	"github.com/linemk/pix-shop/internal/notify"
	"github.com/linemk/pix-shop/internal/qr"
	"github.com/linemk/pix-shop/internal/storage"
)

var (
	// ErrPIXKeyNotConfigured is the pre-flight configuration failure:
	// no sale is created and the cart is untouched.
	ErrPIXKeyNotConfigured = errors.New("pix key is not configured")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrCheckoutInProgress  = errors.New("checkout already in progress")
)

// FinalizedOrder is the frozen copy of the cart taken when checkout
// begins, so the payment screen stays stable after the live cart is
// cleared.
type FinalizedOrder struct {
	Items []models.CartItem `json:"items"`
	Total int64             `json:"total_centavos"`
}

// CheckoutResult is everything the payment-pending screen needs.
// QRCode is empty when encoding failed after the sale was created; in
// that case Warning carries the user-facing message and the sale is
// kept as-is.
type CheckoutResult struct {
	SaleID       int64          `json:"sale_id"`
	Order        FinalizedOrder `json:"order"`
	TotalDisplay string         `json:"total"`
	PIXKey       string         `json:"pix_key"`
	QRCode       string         `json:"qr_code,omitempty"`
	WhatsAppLink string         `json:"whatsapp_link"`
	Warning      string         `json:"warning,omitempty"`
}

type CheckoutService interface {
	Finalize(ctx context.Context, c *cart.Cart, customerName, customerPhone string) (*CheckoutResult, error)
}

type checkoutService struct {
	log          *slog.Logger
	settingsRepo storage.SettingsStorage
	saleRepo     storage.SaleStorage
	encoder      qr.Encoder
	notifier     notify.Notifier
	qrSize       int
}

func NewCheckoutService(log *slog.Logger, settingsRepo storage.SettingsStorage, saleRepo storage.SaleStorage, encoder qr.Encoder, notifier notify.Notifier, qrSize int) CheckoutService {
	return &checkoutService{
		log:          log,
		settingsRepo: settingsRepo,
		saleRepo:     saleRepo,
		encoder:      encoder,
		notifier:     notifier,
		qrSize:       qrSize,
	}
}

// Finalize runs the checkout flow: pre-flight PIX key check, snapshot,
// single sale insert, QR encoding, WhatsApp handoff link.
// The cart is cleared only after the insert succeeded; a persisted sale
// is never retracted, even when QR encoding fails afterwards.
func (s *checkoutService) Finalize(ctx context.Context, c *cart.Cart, customerName, customerPhone string) (*CheckoutResult, error) {
	const op = "service.CheckoutService.Finalize"
	logger := s.log.With(slog.String("op", op))

	if !c.BeginCheckout() {
		logger.Warn("re-entrant checkout rejected")
		return nil, ErrCheckoutInProgress
	}
	defer c.EndCheckout()

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		logger.Error("failed to load site settings", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to load site settings: %w", op, err)
	}
	if settings.PIXKey == "" {
		logger.Warn("checkout attempted without a configured pix key")
		s.notifier.Error("The PIX key has not been configured by the administrator.")
		return nil, ErrPIXKeyNotConfigured
	}

	// snapshot before anything else; displayed figures come from here
	order := FinalizedOrder{Items: c.Items(), Total: c.TotalPrice()}
	if len(order.Items) == 0 {
		return nil, ErrEmptyCart
	}

	description := describeItems(order.Items)
	totalQuantity := 0
	for _, it := range order.Items {
		totalQuantity += it.Quantity
	}

	// product_id stays NULL and unit_price 0 on multi-item rows, the
	// sales schema predates multi-item carts
	sale := &models.Sale{
		ProductID:     nil,
		ProductName:   description,
		Quantity:      totalQuantity,
		UnitPrice:     0,
		TotalAmount:   order.Total,
		CustomerName:  optional(customerName),
		CustomerPhone: optional(customerPhone),
		Status:        models.SaleStatusPending,
	}

	sale, err = s.saleRepo.CreateSale(ctx, sale)
	if err != nil {
		// single attempt, no retry; cart stays intact for the user
		logger.Error("failed to create sale", slog.Any("error", err))
		s.notifier.Error("There was an error creating your order. Please try again.")
		return nil, fmt.Errorf("%s: failed to create sale: %w", op, err)
	}
	logger.Info("sale created", slog.Int64("saleID", sale.ID), slog.Int64("total", order.Total))

	result := &CheckoutResult{
		SaleID:       sale.ID,
		Order:        order,
		TotalDisplay: money.FormatBRL(order.Total),
		PIXKey:       settings.PIXKey,
		WhatsAppLink: buildWhatsAppLink(settings.WhatsAppNumber, order),
	}

	qrCode, err := s.encoder.Encode(settings.PIXKey, s.qrSize)
	if err != nil {
		// the sale already exists server-side and is not rolled back
		logger.Error("failed to encode pix qr code", slog.Int64("saleID", sale.ID), slog.Any("error", err))
		result.Warning = "Order created, but there was an error generating the QR code."
		s.notifier.Error(result.Warning)
	} else {
		result.QRCode = qrCode
		s.notifier.Success("Order created! Now complete the payment.")
	}

	// cleared only after persistence succeeded
	c.Clear()

	return result, nil
}

// describeItems joins lines as "2x A, 1x B".
func describeItems(items []models.CartItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, it.Product.Name))
	}
	return strings.Join(parts, ", ")
}

// buildWhatsAppLink builds the outbound contact deep link with the
// frozen snapshot embedded in the pre-filled message.
func buildWhatsAppLink(number string, order FinalizedOrder) string {
	message := fmt.Sprintf(
		"Hello! I am interested in the order with the following items: %s (Total: %s). Payment receipt to follow.",
		describeItems(order.Items),
		money.FormatBRL(order.Total),
	)
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
