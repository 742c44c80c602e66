package main

import (
	"log"

	"github.com/facturis/facturis-api/internal/application/service"
	"github.com/facturis/facturis-api/internal/config"
	"github.com/facturis/facturis-api/internal/infrastructure/database"
	"github.com/facturis/facturis-api/internal/infrastructure/repository"
	"github.com/facturis/facturis-api/internal/presentation/http/handler"
	"github.com/facturis/facturis-api/internal/presentation/http/routes"
	"github.com/facturis/facturis-api/pkg/utils"
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
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	counterRepo := repository.NewInvoiceCounterRepository(db)
	statsRepo := repository.NewInvoiceStatsRepository(db)

	// Initialize services
	valuator := service.NewValuator(cfg.Currency)
	authService := service.NewAuthService(userRepo, jwtManager)
	clientService := service.NewClientService(clientRepo)
	productService := service.NewProductService(productRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, counterRepo, clientRepo, valuator)
	statsService := service.NewStatsService(statsRepo)
	importService := service.NewImportService(invoiceService, productRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Invoice: handler.NewInvoiceHandler(invoiceService, statsService, importService),
		Client:  handler.NewClientHandler(clientService),
		Product: handler.NewProductHandler(productService, importService),
	}

	// Setup router and start server
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	addr := ":" + cfg.App.Port
	log.Printf("%s listening on %s", cfg.App.Name, addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
