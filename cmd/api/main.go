package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/medetbek/servicepos-api/internal/application/service"
	"github.com/medetbek/servicepos-api/internal/config"
	"github.com/medetbek/servicepos-api/internal/infrastructure/cache"
	"github.com/medetbek/servicepos-api/internal/infrastructure/database"
	"github.com/medetbek/servicepos-api/internal/infrastructure/repository"
	"github.com/medetbek/servicepos-api/internal/presentation/http/handler"
	"github.com/medetbek/servicepos-api/internal/presentation/http/routes"
	"github.com/medetbek/servicepos-api/pkg/logger"
	"github.com/medetbek/servicepos-api/pkg/utils"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.App.Env, cfg.App.Debug)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Warn().Err(err).Msg("Failed to seed default data")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Balance cache: Redis when configured, in-process noop otherwise
	var balanceCache cache.BalanceCache = cache.NoopBalanceCache{}
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisBalanceCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, falling back to noop balance cache")
		} else {
			balanceCache = redisCache
			defer redisCache.Close()
		}
	}

	// Initialize repositories
	cashierRepo := repository.NewCashierRepository(db)
	registerRepo := repository.NewRegisterRepository(db)
	methodRepo := repository.NewPaymentMethodRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	serviceTypeRepo := repository.NewServiceTypeRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(cashierRepo, jwtManager)
	registerService := service.NewRegisterService(registerRepo, shiftRepo)
	methodService := service.NewPaymentMethodService(methodRepo, registerRepo)
	ledgerService := service.NewLedgerService(transactionRepo, methodRepo, balanceCache)
	shiftService := service.NewShiftService(shiftRepo, transactionRepo)
	orderService := service.NewOrderService(orderRepo, shiftRepo, serviceTypeRepo, methodRepo)
	catalogService := service.NewCatalogService(serviceTypeRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Register:      handler.NewRegisterHandler(registerService),
		PaymentMethod: handler.NewPaymentMethodHandler(methodService, ledgerService),
		Shift:         handler.NewShiftHandler(shiftService),
		Order:         handler.NewOrderHandler(orderService),
		Catalog:       handler.NewCatalogHandler(catalogService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Info().
		Str("service", cfg.App.Name).
		Str("port", port).
		Str("env", cfg.App.Env).
		Msg("Starting server")

	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
