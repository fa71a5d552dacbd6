package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-service/config"
	"storefront-service/controllers"
	"storefront-service/errors"
	"storefront-service/logger"
	"storefront-service/middleware"
	"storefront-service/repository"
	"storefront-service/routes"
	"storefront-service/services"
)

func main() {
	cfg := config.Load()

	log := logger.Initialize(cfg.Env)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Store init failed", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	catalog := repository.NewFileCatalog(cfg.ProductsPath)

	// --- Dependency injection ---
	cs := routes.Controllers{
		Products: controllers.NewProductController(services.NewCatalogService(catalog)),
		Auth:     controllers.NewAuthController(services.NewAccountService(store, log)),
		Cart:     controllers.NewCartController(services.NewCartService(store, catalog, log), cfg.AllowCartOverwrite),
	}
	if cfg.DebugEndpoints {
		log.Warn("Debug endpoints enabled, /api/debug/db exposes stored passwords")
		cs.Debug = controllers.NewDebugController(store)
	}

	// --- HTTP router ---
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware(ctx, cfg.RateLimitPerMinute, cfg.RateLimitBurst))
	r.Use(errors.ErrorMiddleware(log))

	routes.Register(r, cs)

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("Storefront service started",
			zap.String("port", cfg.Port),
			zap.String("backend", cfg.StoreBackend),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	<-ctx.Done()

	log.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := store.Close(); err != nil {
		log.Error("Store close error", zap.Error(err))
	}

	log.Info("Storefront service stopped gracefully")
}
