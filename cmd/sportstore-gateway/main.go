package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/dfquintero/sportstore-gateway/internal/api/handlers"
	"github.com/dfquintero/sportstore-gateway/internal/api/middleware"
	"github.com/dfquintero/sportstore-gateway/internal/cache"
	"github.com/dfquintero/sportstore-gateway/internal/cart"
	"github.com/dfquintero/sportstore-gateway/internal/catalog"
	"github.com/dfquintero/sportstore-gateway/internal/checkout"
	"github.com/dfquintero/sportstore-gateway/internal/config"
	"github.com/dfquintero/sportstore-gateway/internal/health"
	"github.com/dfquintero/sportstore-gateway/internal/metrics"
	"github.com/dfquintero/sportstore-gateway/internal/upstream"
	"github.com/dfquintero/sportstore-gateway/pkg/sendgrid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.String("error", err.Error()))
	}

	cfg := config.MustLoad()

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		slog.Error("failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cartStore, db, err := newCartStore(cfg, redisClient)
	if err != nil {
		slog.Error("failed to set up cart store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("error closing database connection", slog.String("error", err.Error()))
			}
		}()
	}

	upstreamClient := upstream.NewClient(&cfg.Upstream)
	catalogCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	catalogService := catalog.NewService(upstreamClient, catalogCache, &cfg.Cache)
	cartService := cart.NewService(cartStore, catalogService)

	var notifier checkout.Notifier
	if cfg.SendGrid.APIKey != "" {
		notifier = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	checkoutService := checkout.NewService(cartService, notifier)

	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	userHandler := handlers.NewUserHandler(upstreamClient)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("failed to set up health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/slug/{slug}", productHandler.GetProductBySlug())
	routerMux.HandleFunc("GET /api/v1/categories", productHandler.ListCategories())
	routerMux.HandleFunc("POST /api/v1/admin/products", authMiddleware.RequireAdmin(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/admin/products/{id}", authMiddleware.RequireAdmin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/admin/products/{id}", authMiddleware.RequireAdmin(productHandler.DeleteProduct()))
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productId}/{sku}", cartHandler.RemoveItem())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /api/v1/checkout", checkoutHandler.Checkout())
	routerMux.HandleFunc("POST /api/v1/auth/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/auth/profile", userHandler.Profile())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)

	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("server starting",
		slog.String("address", cfg.Addr),
		slog.String("env", cfg.Env),
		slog.String("cart_store", cfg.Cart.Store))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("server shut down gracefully")
	}
}

// newCartStore builds the configured snapshot store. The *sql.DB return is
// non-nil only for the postgres store so main can close it on exit.
func newCartStore(cfg *config.Config, redisClient *redis.Client) (cart.Store, *sql.DB, error) {
	switch cfg.Cart.Store {
	case "postgres":
		db, err := otelsql.Open("postgres", cfg.Database.GetDSN())
		if err != nil {
			return nil, nil, err
		}

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

		if err := db.Ping(); err != nil {
			return nil, nil, err
		}

		return cart.NewPostgresStore(db), db, nil
	case "memory":
		return cart.NewMemoryStore(), nil, nil
	default:
		return cart.NewRedisStore(redisClient, cfg.Cart.KeyPrefix, cfg.Cart.TTL), nil, nil
	}
}
