package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medetbek/servicepos-api/internal/config"
	domainRepo "github.com/medetbek/servicepos-api/internal/domain/repository"
	"github.com/medetbek/servicepos-api/internal/presentation/http/handler"
	"github.com/medetbek/servicepos-api/internal/presentation/http/middleware"
	"github.com/medetbek/servicepos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth          *handler.AuthHandler
	Register      *handler.RegisterHandler
	PaymentMethod *handler.PaymentMethodHandler
	Shift         *handler.ShiftHandler
	Order         *handler.OrderHandler
	Catalog       *handler.CatalogHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-cashier rate limiter
		rateLimiter := middleware.NewCashierRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idemCfg := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

	registerShopRoutes(protected, h, idemCfg)
	registerRegisterRoutes(protected, h)
	registerPaymentMethodRoutes(protected, h)
	registerShiftRoutes(protected, h)
	registerOrderRoutes(protected, h, idemCfg)
}

func registerShopRoutes(protected *gin.RouterGroup, h *Handlers, idemCfg middleware.IdempotencyConfig) {
	shops := protected.Group("/shops/:shop_id")
	{
		shops.POST("/registers", middleware.RequireRole("admin", "manager"), h.Register.Create)
		shops.GET("/registers", h.Register.List)

		// Shift open is a money boundary: a retried submit must not create
		// two shifts, so the idempotency key is mandatory.
		shops.POST("/registers/:id/shifts", middleware.IdempotencyRequired(idemCfg), h.Shift.Open)

		shops.GET("/shifts/unclosed", h.Shift.CheckUnclosed)

		shops.GET("/service-types", h.Catalog.List)
		shops.POST("/service-types", middleware.RequireRole("admin", "manager"), h.Catalog.Create)
	}
}

func registerRegisterRoutes(protected *gin.RouterGroup, h *Handlers) {
	registers := protected.Group("/registers")
	{
		registers.GET("/:id", h.Register.Get)
		registers.PATCH("/:id/status", middleware.RequireRole("admin", "manager"), h.Register.UpdateStatus)

		registers.GET("/:id/payment-methods", h.PaymentMethod.List)
		registers.POST("/:id/payment-methods", middleware.RequireRole("admin", "manager"), h.PaymentMethod.Bind)
		registers.PATCH("/:id/payment-methods", middleware.RequireRole("admin", "manager"), h.PaymentMethod.UpdateActiveSet)
	}
}

func registerPaymentMethodRoutes(protected *gin.RouterGroup, h *Handlers) {
	methods := protected.Group("/payment-methods")
	{
		methods.POST("/:id/deposit", h.PaymentMethod.Deposit)
		methods.POST("/:id/withdraw", h.PaymentMethod.Withdraw)
		methods.POST("/:id/purchase", middleware.RequireRole("admin", "manager"), h.PaymentMethod.Purchase)
		methods.POST("/:id/adjustment", middleware.RequireRole("admin", "manager"), h.PaymentMethod.Adjustment)
		methods.PATCH("/:id/status", middleware.RequireRole("admin", "manager"), h.PaymentMethod.UpdateStatus)
		methods.GET("/:id/balance", h.PaymentMethod.Balance)
		methods.GET("/:id/transactions", h.PaymentMethod.Transactions)
	}
}

func registerShiftRoutes(protected *gin.RouterGroup, h *Handlers) {
	shifts := protected.Group("/shifts")
	{
		shifts.GET("/:id", h.Shift.Get)
		shifts.POST("/:id/close", h.Shift.Close)
		shifts.POST("/:id/pause", h.Shift.Pause)
		shifts.POST("/:id/resume", h.Shift.Resume)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, idemCfg middleware.IdempotencyConfig) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", middleware.IdempotencyRequired(idemCfg), h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PATCH("/:id/price", h.Order.UpdatePrice)
		orders.PATCH("/:id/staff", h.Order.AttachStaff)
		orders.POST("/:id/complete", middleware.IdempotencyRequired(idemCfg), h.Order.Complete)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}
}
