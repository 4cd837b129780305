package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafebill-api/internal/application/service"
	"github.com/sangkips/cafebill-api/internal/config"
	"github.com/sangkips/cafebill-api/internal/infrastructure/database"
	"github.com/sangkips/cafebill-api/internal/infrastructure/repository"
	"github.com/sangkips/cafebill-api/internal/presentation/http/handler"
	"github.com/sangkips/cafebill-api/internal/presentation/http/routes"
	"github.com/sangkips/cafebill-api/pkg/printer"
	"github.com/sangkips/cafebill-api/pkg/sms"
	"github.com/sangkips/cafebill-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	itemRepo := repository.NewItemRepository(db)
	billRepo := repository.NewBillRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize the SMS sender; fall back to logging codes when no
	// gateway is configured
	var smsSender sms.Sender
	if cfg.SMS.GatewayURL != "" {
		smsSender = sms.NewGatewaySender(sms.Config{
			GatewayURL:   cfg.SMS.GatewayURL,
			TokenURL:     cfg.SMS.TokenURL,
			ClientID:     cfg.SMS.ClientID,
			ClientSecret: cfg.SMS.ClientSecret,
			SenderID:     cfg.SMS.SenderID,
		})
	} else {
		smsSender = sms.NewNullSender()
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.DevicePath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, otpRepo, smsSender, jwtManager, cfg.OTP)
	categoryService := service.NewCategoryService(categoryRepo)
	itemService := service.NewItemService(itemRepo, categoryRepo)
	billService := service.NewBillService(billRepo, itemRepo, userRepo)
	userService := service.NewUserService(userRepo)
	reportService := service.NewReportService(reportRepo)
	printerService := service.NewPrinterService(billRepo, thermalPrinter, cfg.Cafe)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Category: handler.NewCategoryHandler(categoryService),
		Item:     handler.NewItemHandler(itemService),
		Bill:     handler.NewBillHandler(billService, userService),
		User:     handler.NewUserHandler(userService),
		Report:   handler.NewReportHandler(reportService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := gin.New()
	router.Use(gin.Recovery())
	routes.Setup(router, cfg, jwtManager, idempotencyRepo, handlers)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
