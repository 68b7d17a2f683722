// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/entrypoint/controller"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	userController        *controller.UserController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	invoiceController     *controller.InvoiceController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	invoiceController *controller.InvoiceController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		userController:        userController,
		categoryController:    categoryController,
		transactionController: transactionController,
		invoiceController:     invoiceController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.authController.Register)
		auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
	}

	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	protected.GET("/users", r.userController.List)

	categories := protected.Group("/categories")
	{
		categories.GET("", r.categoryController.List)
		categories.GET("/top", r.categoryController.ListTop)
		categories.POST("", r.categoryController.Create)
		categories.GET("/:id", r.categoryController.Get)
		categories.PATCH("/:id", r.categoryController.Update)
		categories.DELETE("/:id", r.categoryController.Delete)
		categories.GET("/:id/subcategories", r.categoryController.ListSubcategories)
		categories.POST("/:id/subcategories", r.categoryController.CreateSubcategories)
	}

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", r.transactionController.List)
		transactions.POST("", r.transactionController.Create)
		transactions.GET("/:id", r.transactionController.Get)
		transactions.PATCH("/:id", r.transactionController.Update)
		transactions.DELETE("/:id", r.transactionController.Delete)
	}

	invoices := protected.Group("/invoices")
	{
		invoices.GET("", r.invoiceController.List)
		invoices.GET("/open", r.invoiceController.ListOpen)
		invoices.POST("", r.invoiceController.Create)
		invoices.POST("/sync", r.invoiceController.Sync)
		invoices.GET("/:id", r.invoiceController.Get)
		invoices.PATCH("/:id", r.invoiceController.Update)
		invoices.DELETE("/:id", r.invoiceController.Delete)
	}
}
