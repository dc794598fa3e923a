package routes

import (
	"time"

	"github.com/dquispe/pos-backoffice/internal/config"
	domainRepo "github.com/dquispe/pos-backoffice/internal/domain/repository"
	"github.com/dquispe/pos-backoffice/internal/presentation/http/handler"
	"github.com/dquispe/pos-backoffice/internal/presentation/http/middleware"
	"github.com/dquispe/pos-backoffice/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Catalog   *handler.CatalogHandler
	Cart      *handler.CartHandler
	Order     *handler.OrderHandler
	Dashboard *handler.DashboardHandler
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
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
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

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/profile", h.Auth.Me)

	// Dashboard (staff only)
	protected.GET("/dashboard", middleware.RequireStaff(), h.Dashboard.Stats)

	// Catalog: reads are open to any authenticated user, writes are staff only
	groups := protected.Group("/groups")
	{
		groups.GET("", h.Catalog.ListGroups)
		groups.GET("/:id/lines", h.Catalog.LinesByGroup)
		groups.POST("", middleware.RequireStaff(), h.Catalog.CreateGroup)
		groups.PUT("/:id", middleware.RequireStaff(), h.Catalog.UpdateGroup)
		groups.DELETE("/:id", middleware.RequireStaff(), h.Catalog.DeleteGroup)
	}

	lines := protected.Group("/lines")
	{
		lines.GET("", h.Catalog.ListLines)
		lines.POST("", middleware.RequireStaff(), h.Catalog.CreateLine)
		lines.PUT("/:id", middleware.RequireStaff(), h.Catalog.UpdateLine)
	}

	articles := protected.Group("/articles")
	{
		articles.GET("", h.Catalog.ListArticles)
		articles.GET("/:id", h.Catalog.GetArticle)
		articles.POST("", middleware.RequireStaff(), h.Catalog.CreateArticle)
		articles.PUT("/:id", middleware.RequireStaff(), h.Catalog.UpdateArticle)
		articles.DELETE("/:id", middleware.RequireStaff(), h.Catalog.DeleteArticle)
	}

	// Cart
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.AddItem)
		cart.DELETE("/items/:article_id", h.Cart.RemoveItem)
		cart.DELETE("", h.Cart.Clear)
	}

	// Checkout replays cached responses when the same Idempotency-Key
	// is seen twice, so a retried request cannot create a second order.
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})
	protected.POST("/checkout", idempotency, h.Order.Checkout)

	// Orders
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.GET("/:id/receipt", h.Order.Receipt)
		orders.GET("/:id/pdf", h.Order.ReceiptPDF)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.PATCH("/:id/status", middleware.RequireStaff(), h.Order.UpdateStatus)
		orders.POST("/:id/recompute-total", middleware.RequireStaff(), h.Order.RecomputeTotal)
	}
}
