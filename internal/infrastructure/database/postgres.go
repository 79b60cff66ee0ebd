package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/config"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info().Msg("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")

	err := db.AutoMigrate(
		// Identity entities
		&entity.Shop{},
		&entity.Cashier{},

		// Register entities
		&entity.CashRegister{},
		&entity.PaymentMethod{},
		&entity.RegisterPaymentMethod{},

		// Ledger entities
		&entity.Transaction{},

		// Shift and order entities
		&entity.Shift{},
		&entity.ServiceType{},
		&entity.ServiceOrder{},
		&entity.ServiceOrderStaff{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with a default shop, its registers,
// the system payment methods and an admin cashier from the environment.
func SeedDefaultData(db *gorm.DB) error {
	log.Info().Msg("Seeding default data...")

	var shop entity.Shop
	if err := db.Where("name = ?", "Main Shop").First(&shop).Error; err != nil {
		shop = entity.Shop{Name: "Main Shop"}
		if err := db.Create(&shop).Error; err != nil {
			return fmt.Errorf("failed to create default shop: %w", err)
		}
	}

	var register entity.CashRegister
	if err := db.Where("shop_id = ? AND name = ?", shop.ID, "Register 1").First(&register).Error; err != nil {
		register = entity.CashRegister{
			ShopID: shop.ID,
			Name:   "Register 1",
			Type:   enum.RegisterTypeStationary,
			Status: enum.RegisterStatusActive,
		}
		if err := db.Create(&register).Error; err != nil {
			return fmt.Errorf("failed to create default register: %w", err)
		}
	}

	// Shared system methods for the shop, bound to the default register.
	systemMethods := []struct {
		source enum.PaymentSource
		name   string
		code   string
	}{
		{enum.PaymentSourceCash, "Cash", "cash"},
		{enum.PaymentSourceCard, "Card", "card"},
		{enum.PaymentSourceQR, "QR", "qr"},
	}

	for _, sm := range systemMethods {
		var method entity.PaymentMethod
		err := db.Where("shop_id = ? AND source = ? AND scope = ?", shop.ID, sm.source, enum.PaymentScopeShared).
			First(&method).Error
		if err != nil {
			method = entity.PaymentMethod{
				ShopID: shop.ID,
				Source: sm.source,
				Name:   sm.name,
				Code:   sm.code,
				Scope:  enum.PaymentScopeShared,
				Status: enum.MethodStatusActive,
			}
			if err := db.Create(&method).Error; err != nil {
				log.Warn().Err(err).Str("method", sm.name).Msg("failed to seed payment method")
				continue
			}
		}

		var binding entity.RegisterPaymentMethod
		if err := db.Where("register_id = ? AND payment_method_id = ?", register.ID, method.ID).
			First(&binding).Error; err != nil {
			binding = entity.RegisterPaymentMethod{
				RegisterID:      register.ID,
				PaymentMethodID: method.ID,
				IsActive:        true,
			}
			if err := db.Create(&binding).Error; err != nil {
				log.Warn().Err(err).Str("method", sm.name).Msg("failed to seed method binding")
			}
		}
	}

	// A couple of catalog entries so the order engine has prices to copy.
	serviceTypes := []entity.ServiceType{
		{ShopID: shop.ID, Name: "Exterior wash", Price: decimal.NewFromInt(1000), Active: true},
		{ShopID: shop.ID, Name: "Full detailing", Price: decimal.NewFromInt(5000), Active: true},
	}
	for i := range serviceTypes {
		var existing entity.ServiceType
		if err := db.Where("shop_id = ? AND name = ?", shop.ID, serviceTypes[i].Name).
			First(&existing).Error; err != nil {
			if err := db.Create(&serviceTypes[i]).Error; err != nil {
				log.Warn().Err(err).Str("service_type", serviceTypes[i].Name).Msg("failed to seed service type")
			}
		}
	}

	// Create admin cashier if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")

	if adminEmail != "" && adminPassword != "" {
		var existing entity.Cashier
		if err := db.Where("email = ?", adminEmail).First(&existing).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Warn().Err(err).Msg("failed to hash admin password")
			} else {
				admin := entity.Cashier{
					ID:        uuid.New(),
					ShopID:    shop.ID,
					FirstName: "Admin",
					Email:     adminEmail,
					Password:  string(hashedPassword),
					Role:      "admin",
				}
				if err := db.Create(&admin).Error; err != nil {
					log.Warn().Err(err).Msg("failed to create admin cashier")
				} else {
					log.Info().Str("email", adminEmail).Msg("Admin cashier created")
				}
			}
		}
	}

	log.Info().Msg("Default data seeding completed")
	return nil
}
