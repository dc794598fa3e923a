package main

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dquispe/pos-backoffice/internal/application/service"
	"github.com/dquispe/pos-backoffice/internal/config"
	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	domainRepo "github.com/dquispe/pos-backoffice/internal/domain/repository"
	"github.com/dquispe/pos-backoffice/internal/infrastructure/cache"
	"github.com/dquispe/pos-backoffice/internal/infrastructure/database"
	"github.com/dquispe/pos-backoffice/internal/infrastructure/repository"
	"github.com/dquispe/pos-backoffice/internal/presentation/http/handler"
	"github.com/dquispe/pos-backoffice/internal/presentation/http/routes"
	"github.com/dquispe/pos-backoffice/pkg/email"
	"github.com/dquispe/pos-backoffice/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Cart store: Redis when configured, in-process otherwise
	var cartStore domainRepo.CartStore
	if cfg.Redis.Addr != "" {
		rdb, err := database.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		cartStore = cache.NewRedisCartStore(rdb)
	} else {
		log.Println("REDIS_ADDR not set, using in-process cart store")
		cartStore = cache.NewMemoryCartStore()
	}

	// Order number generator
	node, err := snowflake.NewNode(1)
	if err != nil {
		log.Fatalf("Failed to create ID generator: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewArticleGroupRepository(db)
	lineRepo := repository.NewArticleLineRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	salespersonRepo := repository.NewSalespersonRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Sweep expired idempotency keys hourly so replay records don't
	// accumulate past their TTL
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			if err := idempotencyRepo.DeleteExpired(context.Background(), time.Now()); err != nil {
				log.Printf("Failed to delete expired idempotency keys: %v", err)
			}
			<-ticker.C
		}
	}()

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	catalogService := service.NewCatalogService(groupRepo, lineRepo, articleRepo)
	cartService := service.NewCartService(cartStore, articleRepo)
	checkoutService := service.NewCheckoutService(
		orderRepo,
		articleRepo,
		customerRepo,
		salespersonRepo,
		userRepo,
		cartStore,
		emailService,
		node,
		cfg.Store.Name,
	)
	dashboardService := service.NewDashboardService(articleRepo, customerRepo, orderRepo)
	receiptService := service.NewReceiptService(orderRepo, entity.ReceiptHeader{
		StoreName: cfg.Store.Name,
		Address:   cfg.Store.Address,
		Phone:     cfg.Store.Phone,
		TaxID:     cfg.Store.TaxID,
	})

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Cart:      handler.NewCartHandler(cartService),
		Order:     handler.NewOrderHandler(checkoutService, receiptService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	log.Printf("Starting %s on port %s", cfg.App.Name, cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
