package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/pix-shop/internal/app"
	"github.com/linemk/pix-shop/internal/app/handlers"
	"github.com/linemk/pix-shop/internal/cart"
	"github.com/linemk/pix-shop/internal/config"
	"github.com/linemk/pix-shop/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/pix-shop/internal/lib/logger"
	"github.com/linemk/pix-shop/internal/lib/logger/handlers/urllog"
	"github.com/linemk/pix-shop/internal/notify"
	"github.com/linemk/pix-shop/internal/qr"
	"github.com/linemk/pix-shop/internal/service"
	"github.com/linemk/pix-shop/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	cfg := config.MustLoad()

	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	// repositories per entity
	productRepo := storage.NewProductRepository(application.DB)
	saleRepo := storage.NewSaleRepository(application.DB)
	settingsRepo := storage.NewSettingsRepository(application.DB)
	adminRepo := storage.NewAdminRepository(application.DB)

	cartStore := cart.NewStore(cfg.Checkout.CartTTL)
	notifier := notify.NewSlogNotifier(log)
	encoder := qr.NewEncoder()

	authService := service.NewAuthService(application.Logger, adminRepo, time.Duration(application.Config.JWT.TokenTTL)*time.Minute)
	catalogService := service.NewCatalogService(application.Logger, productRepo)
	checkoutService := service.NewCheckoutService(application.Logger, settingsRepo, saleRepo, encoder, notifier, cfg.Checkout.QRSize)
	salesService := service.NewSalesService(application.Logger, application.DB, saleRepo)
	settingsService := service.NewSettingsService(application.Logger, settingsRepo)

	// public storefront endpoints
	router.Get("/api/products", handlers.ListProductsHandler(application.Logger, catalogService))
	router.Get("/api/settings", handlers.GetSettingsHandler(application.Logger, settingsService))
	router.Post("/api/cart", handlers.CreateCartHandler(application.Logger, cartStore))
	router.Get("/api/cart/{sessionID}", handlers.GetCartHandler(application.Logger, cartStore))
	router.Post("/api/cart/{sessionID}/items", handlers.AddItemHandler(application.Logger, cartStore, catalogService))
	router.Put("/api/cart/{sessionID}/items/{productID}", handlers.UpdateItemHandler(application.Logger, cartStore))
	router.Delete("/api/cart/{sessionID}/items/{productID}", handlers.RemoveItemHandler(application.Logger, cartStore))
	router.Post("/api/cart/{sessionID}/checkout", handlers.CheckoutHandler(application.Logger, cartStore, checkoutService))

	// admin login
	router.Post("/api/admin/auth", handlers.AuthHandler(application.Logger, authService))

	// admin panel, JWT-guarded
	router.Group(func(r chi.Router) {
		jwtMW := jwtmiddleware.NewJWTMiddleware()
		r.Use(jwtMW)
		r.Get("/api/admin/sales", handlers.ListSalesHandler(application.Logger, salesService))
		r.Post("/api/admin/sales/{id}/settle", handlers.SettleSaleHandler(application.Logger, salesService))
		r.Get("/api/admin/products", handlers.AdminListProductsHandler(application.Logger, catalogService))
		r.Post("/api/admin/products", handlers.CreateProductHandler(application.Logger, catalogService))
		r.Put("/api/admin/products/{id}", handlers.UpdateProductHandler(application.Logger, catalogService))
		r.Delete("/api/admin/products/{id}", handlers.DeleteProductHandler(application.Logger, catalogService))
		r.Get("/api/admin/settings", handlers.GetSettingsHandler(application.Logger, settingsService))
		r.Put("/api/admin/settings", handlers.UpdateSettingsHandler(application.Logger, settingsService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
