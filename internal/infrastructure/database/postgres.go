package database

import (
	"fmt"
	"log"

	"github.com/sangkips/cafebill-api/internal/config"
	"github.com/sangkips/cafebill-api/internal/domain/entity"
	"github.com/sangkips/cafebill-api/pkg/utils"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

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
		// User-related entities
		&entity.User{},
		&entity.Role{},
		&entity.OTPCode{},

		// Menu entities
		&entity.Category{},
		&entity.Item{},

		// Billing entities
		&entity.Bill{},
		&entity.BillItem{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds roles, the configured admin user and the
// starter menu. Safe to run repeatedly.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	roles := []entity.Role{
		{Name: "admin", Description: "Full access to billing, menu and reports"},
		{Name: "staff", Description: "Create and settle bills"},
		{Name: "customer", Description: "Phone login, own bills only"},
	}
	for i := range roles {
		var existing entity.Role
		if err := db.Where("name = ?", roles[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&roles[i]).Error; err != nil {
				log.Printf("Warning: failed to create role %s: %v", roles[i].Name, err)
			}
		}
	}

	seedAdminUser(db)
	seedMenu(db)

	log.Println("Default data seeding completed")
	return nil
}

func seedAdminUser(db *gorm.DB) {
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminPhone := viper.GetString("ADMIN_PHONE")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail == "" || adminPassword == "" || adminPhone == "" {
		return
	}

	var existing entity.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Printf("Admin user already exists: %s", adminEmail)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: failed to hash admin password: %v", err)
		return
	}

	var adminRole entity.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		log.Printf("Warning: admin role missing: %v", err)
		return
	}

	if adminName == "" {
		adminName = "Admin"
	}
	admin := entity.User{
		Name:     adminName,
		Phone:    utils.NormalizePhone(adminPhone),
		Email:    &adminEmail,
		Password: string(hashedPassword),
		Roles:    []entity.Role{adminRole},
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Warning: failed to create admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s", adminEmail)
}

// seedMenu loads the starter café menu if the catalog is empty.
// Prices are in paise.
func seedMenu(db *gorm.DB) {
	var count int64
	db.Model(&entity.Category{}).Count(&count)
	if count > 0 {
		return
	}

	menu := map[string][]struct {
		Name  string
		Paise int64
	}{
		"Signature Coffees": {
			{"Cappuccino", 7000},
			{"Cafe Latte", 8000},
			{"Cafe Mocha", 10000},
			{"Vanilla Cappuccino", 12000},
			{"Hazelnut Latte", 12000},
		},
		"Garlic Bread": {
			{"Classic Garlic Bread", 11000},
			{"Cheese Garlic Bread", 15000},
		},
		"Pasta": {
			{"Arrabbiata Pasta", 12000},
			{"Alfredo Pasta", 14000},
			{"Mix Sauce Pasta", 17500},
		},
		"Maggi": {
			{"Classic Maggi", 7900},
			{"Vegetable Maggi", 9900},
			{"Butter Maggi", 11000},
			{"Cheese Maggi", 12000},
			{"Tandoori Maggi", 12000},
		},
		"Burgers": {
			{"Aloo Tikki Burger", 6900},
			{"Veg Crispy Burger", 7900},
			{"Paneer Burger", 9900},
		},
	}

	for categoryName, items := range menu {
		category := entity.Category{
			Name:     categoryName,
			Slug:     utils.Slugify(categoryName),
			IsActive: true,
		}
		if err := db.Create(&category).Error; err != nil {
			log.Printf("Warning: failed to seed category %s: %v", categoryName, err)
			continue
		}
		for _, it := range items {
			item := entity.Item{
				CategoryID: category.ID,
				Name:       it.Name,
				Slug:       utils.Slugify(it.Name),
				PricePaise: it.Paise,
				IsActive:   true,
			}
			if err := db.Create(&item).Error; err != nil {
				log.Printf("Warning: failed to seed item %s: %v", it.Name, err)
			}
		}
	}
	log.Println("Starter menu seeded")
}
