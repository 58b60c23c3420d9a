// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storeboard/internal/domain/auth"
	"storeboard/internal/domain/expense"
	"storeboard/internal/domain/inventory"
	"storeboard/internal/infrastructure/http/v1/handlers"
	"storeboard/internal/infrastructure/http/v1/middleware"
	"storeboard/pkg/logger"
)

// RouterConfig holds the wired services the API serves.
type RouterConfig struct {
	// Pool is the database pool, used by readiness checks. Nil in
	// demo mode.
	Pool *pgxpool.Pool

	// Logger for request logging.
	Logger *logger.Logger

	// JWTValidator for token validation. Nil disables authentication
	// entirely (demo mode).
	JWTValidator middleware.JWTValidator

	// AuthService for the login endpoint.
	AuthService *auth.Service

	// Ledger owns inventory state.
	Ledger *inventory.Ledger

	// ExpenseService provides expense tracking.
	ExpenseService *expense.Service

	// RevenueSource pulls platform revenue for the dashboard. Nil
	// disables the integration endpoints' data.
	RevenueSource handlers.RevenueSource
}

// Roles allowed to mutate inventory and expenses. Employees read.
var mutatingRoles = []string{string(auth.RoleAdmin), string(auth.RoleManager)}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters).
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	api := router.Group("/api/v1")

	if cfg.AuthService != nil {
		authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
		api.POST("/auth/login", authHandler.Login)
	}

	protected := api.Group("")
	var mutating gin.IRoutes = protected
	if cfg.JWTValidator != nil {
		protected.Use(middleware.Auth(cfg.JWTValidator))
		mutating = protected.Group("", middleware.RequireRole(mutatingRoles...))
	}

	registerInventoryRoutes(protected, mutating, base, cfg)
	registerFinanceRoutes(protected, base, cfg)
	registerExpenseRoutes(protected, mutating, base, cfg)

	return router
}

func registerInventoryRoutes(reads *gin.RouterGroup, writes gin.IRoutes, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewInventoryHandler(base, cfg.Ledger)

	reads.GET("/inventory", h.List)
	reads.GET("/inventory/movements", h.Movements)
	reads.GET("/inventory/alerts", h.Alerts)
	reads.GET("/inventory/:id", h.Get)
	reads.GET("/inventory/:id/movements", h.ItemMovements)

	writes.POST("/inventory", h.Create)
	writes.PUT("/inventory/:id", h.Update)
	writes.DELETE("/inventory/:id", h.Delete)
	writes.POST("/inventory/:id/add-stock", h.AddStock)
	writes.POST("/inventory/:id/remove-stock", h.RemoveStock)
}

func registerFinanceRoutes(reads *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewFinanceHandler(base, cfg.ExpenseService, cfg.RevenueSource)

	reads.POST("/finance/metrics", h.Metrics)
	reads.GET("/finance/dashboard", h.Dashboard)
	reads.GET("/finance/revenue/daily", h.DailyRevenue)
}

func registerExpenseRoutes(reads *gin.RouterGroup, writes gin.IRoutes, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewExpenseHandler(base, cfg.ExpenseService)

	reads.GET("/expenses", h.List)
	reads.GET("/expenses/categories", h.ListCategories)

	writes.POST("/expenses", h.Create)
	writes.PUT("/expenses/:id", h.Update)
	writes.DELETE("/expenses/:id", h.Delete)
	writes.POST("/expenses/categories", h.CreateCategory)
	writes.PUT("/expenses/categories/:id", h.UpdateCategory)
	writes.DELETE("/expenses/categories/:id", h.DeleteCategory)
}
