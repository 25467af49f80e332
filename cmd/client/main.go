package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/mux"

	authapp "github.com/solestride/shoe-shop/internal/auth/app"
	authpg "github.com/solestride/shoe-shop/internal/auth/infra/postgres"
	authrest "github.com/solestride/shoe-shop/internal/auth/rest"

	cartapp "github.com/solestride/shoe-shop/internal/cart/app"
	cartadapter "github.com/solestride/shoe-shop/internal/cart/infra/adapter"
	cartpg "github.com/solestride/shoe-shop/internal/cart/infra/postgres"
	cartrest "github.com/solestride/shoe-shop/internal/cart/rest"

	catalogapp "github.com/solestride/shoe-shop/internal/catalog/app"
	catalogpg "github.com/solestride/shoe-shop/internal/catalog/infra/postgres"
	catalogrest "github.com/solestride/shoe-shop/internal/catalog/rest"

	checkoutapp "github.com/solestride/shoe-shop/internal/checkout/app"
	checkoutadapter "github.com/solestride/shoe-shop/internal/checkout/infra/adapter"
	checkoutrest "github.com/solestride/shoe-shop/internal/checkout/rest"

	orderapp "github.com/solestride/shoe-shop/internal/order/app"
	orderpg "github.com/solestride/shoe-shop/internal/order/infra/postgres"

	"github.com/solestride/shoe-shop/pkg/config"
	"github.com/solestride/shoe-shop/pkg/logger"
	"github.com/solestride/shoe-shop/pkg/postgres"
	"github.com/solestride/shoe-shop/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "client-api", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db := mustDB(log, cfg.Postgres)
	defer db.Close()

	// Catalog
	catalogSvc := catalogapp.NewService(catalogpg.NewProductRepo(db))

	// Auth
	authSvc := authapp.NewService(
		authpg.NewUserRepo(db),
		cfg.JWTSecret,
		time.Duration(cfg.TokenTTLMinutes)*time.Minute,
	)

	// Cart
	cartSvc := cartapp.NewService(
		cartpg.NewCartRepo(db),
		cartadapter.NewCatalogServiceReader(catalogSvc),
	)

	// Order + checkout (adapters)
	orderSvc := orderapp.NewService(orderpg.NewOrderRepo(db))
	catalogReader := checkoutadapter.NewCatalogServiceReader(catalogSvc)
	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartServiceReader(cartSvc),
		catalogReader,
		catalogReader,
		checkoutadapter.NewOrderServiceWriter(orderSvc),
		cfg.ShippingFlat,
		cfg.TaxRate,
		10,
	)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	authHandler := authrest.NewHandler(authSvc, log)
	authHandler.RegisterPublic(r)
	catalogrest.NewHandler(catalogSvc, log).RegisterPublic(r)

	protected := r.NewRoute().Subrouter()
	protected.Use(authrest.RequireAuth(authSvc))
	authHandler.RegisterProtected(protected)
	cartrest.NewHandler(cartSvc, log).Register(protected)
	checkoutrest.NewHandler(checkoutSvc, log).Register(protected)

	addr := fmt.Sprintf(":%d", cfg.ClientHTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

func mustDB(log *slog.Logger, cfg config.PostgresConfig) *sql.DB {
	db, err := postgres.Open(postgres.Config{
		Host:    cfg.Host,
		Port:    cfg.Port,
		User:    cfg.User,
		Pass:    cfg.Pass,
		DB:      cfg.DB,
		SSLMode: cfg.SSLMode,
	})
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := postgres.Migrate(db); err != nil {
		log.Error("db migrate failed", slog.Any("err", err))
		os.Exit(1)
	}
	return db
}
