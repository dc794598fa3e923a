package database

import (
	"fmt"
	"log"

	"github.com/dquispe/pos-backoffice/internal/config"
	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Users
		&entity.User{},

		// Catalog entities
		&entity.ArticleGroup{},
		&entity.ArticleLine{},
		&entity.Article{},
		&entity.PriceList{},

		// Customer entities
		&entity.IdentificationType{},
		&entity.SalesChannel{},
		&entity.Customer{},
		&entity.Salesperson{},

		// Order entities
		&entity.Order{},
		&entity.OrderItem{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the lookup tables and an optional admin user
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var idType entity.IdentificationType
	if err := db.Where("name = ?", "DNI").First(&idType).Error; err != nil {
		idType = entity.IdentificationType{Name: "DNI", Active: true}
		if err := db.Create(&idType).Error; err != nil {
			log.Printf("Warning: failed to seed identification type: %v", err)
		}
	}

	var channel entity.SalesChannel
	if err := db.Where("name = ?", "Walk-in").First(&channel).Error; err != nil {
		channel = entity.SalesChannel{Name: "Walk-in", Active: true}
		if err := db.Create(&channel).Error; err != nil {
			log.Printf("Warning: failed to seed sales channel: %v", err)
		}
	}

	var sp entity.Salesperson
	if err := db.Where("email = ?", "sales@localhost").First(&sp).Error; err != nil {
		sp = entity.Salesperson{Name: "Default Salesperson", Email: "sales@localhost", Active: true}
		if err := db.Create(&sp).Error; err != nil {
			log.Printf("Warning: failed to seed salesperson: %v", err)
		}
	}

	// Create a staff admin user when configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existing entity.User
		if err := db.Where("email = ?", adminEmail).First(&existing).Error; err != nil {
			hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Administrator"
				}
				admin := entity.User{
					FullName: adminName,
					Email:    adminEmail,
					Password: string(hashed),
					IsStaff:  true,
					Active:   true,
				}
				if err := db.Create(&admin).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
