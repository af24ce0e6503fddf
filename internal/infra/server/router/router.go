// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers mounted by the router.
type Controllers struct {
	Health       *controller.HealthController
	Product      *controller.ProductController
	Transaction  *controller.TransactionController
	Statement    *controller.StatementController
	Bill         *controller.BillController
	ExchangeRate *controller.ExchangeRateController
	Category     *controller.CategoryController
	Institution  *controller.InstitutionController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine         *gin.Engine
	controllers    Controllers
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
}

// NewRouter creates a new router instance. rateLimiter may be nil.
func NewRouter(controllers Controllers, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter) *Router {
	return &Router{
		controllers:    controllers,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
}

// limited wraps a mutating handler with the rate limiter when one is configured.
func (r *Router) limited(handler gin.HandlerFunc) []gin.HandlerFunc {
	if r.rateLimiter == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{r.rateLimiter.Middleware(), handler}
}

// setupAPIRoutes configures the main API routes. Every route requires authentication.
func (r *Router) setupAPIRoutes() {
	c := r.controllers

	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())

	// Product routes
	products := v1.Group("/products")
	{
		products.GET("", c.Product.List)
		products.POST("", r.limited(c.Product.Create)...)
		products.GET("/:id", c.Product.Get)
		products.PATCH("/:id", r.limited(c.Product.Update)...)
		products.DELETE("/:id", r.limited(c.Product.Delete)...)

		// Statement routes nested under the card
		products.GET("/:id/statements", c.Statement.List)
		products.GET("/:id/statements/current", c.Statement.Current)
		products.POST("/:id/statements/close", r.limited(c.Statement.Close)...)
	}

	// Transaction routes
	transactions := v1.Group("/transactions")
	{
		transactions.GET("", c.Transaction.List)
		transactions.POST("", r.limited(c.Transaction.Create)...)
		transactions.POST("/income", r.limited(c.Transaction.RecordIncome)...)
		transactions.POST("/expense", r.limited(c.Transaction.RecordExpense)...)
		transactions.POST("/transfer", r.limited(c.Transaction.RecordTransfer)...)
		transactions.PATCH("/:id", r.limited(c.Transaction.Update)...)
		transactions.DELETE("/:id", r.limited(c.Transaction.Delete)...)
	}

	statements := v1.Group("/statements")
	{
		statements.GET("/:id", c.Statement.Get)
		statements.POST("/:id/adjustments", r.limited(c.Statement.AddAdjustment)...)
		statements.DELETE("/:id/adjustments/:adjustmentId", r.limited(c.Statement.RemoveAdjustment)...)
		statements.POST("/:id/pay", r.limited(c.Statement.Pay)...)
	}

	// Recurring bill routes
	services := v1.Group("/services")
	{
		services.GET("", c.Bill.ListServices)
		services.POST("", r.limited(c.Bill.CreateService)...)
		services.PATCH("/:id", r.limited(c.Bill.UpdateService)...)
		services.DELETE("/:id", r.limited(c.Bill.DeleteService)...)
		services.POST("/:id/rules", r.limited(c.Bill.CreateRule)...)
		services.DELETE("/:id/rules/:ruleId", r.limited(c.Bill.DeleteRule)...)
	}

	bills := v1.Group("/bills")
	{
		bills.GET("", c.Bill.List)
		bills.GET("/overdue", c.Bill.Overdue)
		bills.POST("/generate", r.limited(c.Bill.Generate)...)
		bills.PATCH("/:id", r.limited(c.Bill.Update)...)
		bills.POST("/:id/pay", r.limited(c.Bill.Pay)...)
		bills.POST("/:id/link", r.limited(c.Bill.Link)...)
	}

	rates := v1.Group("/exchange-rates")
	{
		rates.GET("", c.ExchangeRate.List)
		rates.GET("/latest", c.ExchangeRate.Latest)
		rates.POST("", r.limited(c.ExchangeRate.Set)...)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", c.Category.List)
		categories.POST("", r.limited(c.Category.Create)...)
	}

	v1.GET("/institutions", c.Institution.List)
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
