// Package main starts the TastyBites dev server: a reference backend that
// serves the full REST surface the client consumes, for local development
// and end-to-end testing.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tastybites/tastybites-client/internal/config"
	"github.com/tastybites/tastybites-client/internal/db"
	"github.com/tastybites/tastybites-client/internal/logger"
	"github.com/tastybites/tastybites-client/internal/server/handler/http"
	"github.com/tastybites/tastybites-client/internal/server/repository"
	"github.com/tastybites/tastybites-client/internal/server/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// .env is optional; flags and real env vars win either way.
	_ = godotenv.Load()
	options := config.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		panic(err)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT secret is required (flag -s or JWT_SECRET)")
	}

	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Expired one-time codes are purged in the background.
	db.StartOTPCleaner(context.Background(), postgresDB, 15*time.Minute, zapLogger)

	userRepo := repository.NewPostgresUserRepository(postgresDB)
	catalogRepo := repository.NewPostgresCatalogRepository(postgresDB)
	shopRepo := repository.NewPostgresShopRepository(postgresDB)
	notifyRepo := repository.NewPostgresNotifyRepository(postgresDB)

	notifyService := service.NewNotifyService(notifyRepo)
	authService := service.NewAuthService(userRepo, shopRepo, options.JWTSecret, zapLogger)
	catalogService := service.NewCatalogService(catalogRepo)
	shopService := service.NewShopService(shopRepo, notifyService)

	authHandler := &http.AuthHandler{AuthService: authService}
	catalogHandler := &http.CatalogHandler{CatalogService: catalogService}
	shopHandler := &http.ShopHandler{ShopService: shopService}
	notifyHandler := &http.NotifyHandler{NotifyService: notifyService}
	adminHandler := &http.AdminHandler{Users: authService}

	router := http.NewRouter(authHandler, catalogHandler, shopHandler, notifyHandler, adminHandler, options.JWTSecret, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting dev server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
