package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spendwise/internal/config"
	"github.com/spendwise/internal/handler"
	"github.com/spendwise/internal/middleware"
	"github.com/spendwise/internal/models"
	"github.com/spendwise/internal/repository"
	"github.com/spendwise/internal/service"
	"github.com/spendwise/internal/session"
	"github.com/spendwise/web"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Build info (injected at build time via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := middleware.InitLogger("logs"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	gin.SetMode(cfg.Server.Mode)

	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb := initRedis(cfg)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	if err := autoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)

	// Initialize session manager
	sessions := session.NewManager(cfg.Session, session.NewRedisStore(rdb))

	// Initialize services
	authService := service.NewAuthService(userRepo, sessions)
	categoryService := service.NewCategoryService(categoryRepo)
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo)
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo, expenseRepo)
	reportService := service.NewReportService(expenseRepo, budgetRepo)

	// Seed the default categories, create-if-absent
	if err := categoryService.EnsureDefaults(); err != nil {
		log.Fatalf("Failed to seed default categories: %v", err)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessions)
	dashboardHandler := handler.NewDashboardHandler(reportService, sessions)
	expenseHandler := handler.NewExpenseHandler(expenseService, categoryService, sessions)
	categoryHandler := handler.NewCategoryHandler(categoryService, sessions)
	budgetHandler := handler.NewBudgetHandler(budgetService, sessions)
	analyticsHandler := handler.NewAnalyticsHandler(reportService, sessions)

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLoggerMiddleware())
	router.Use(middleware.LoadSession(sessions))
	router.SetHTMLTemplate(web.Templates())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"version":    Version,
			"commit":     Commit,
			"build_time": BuildTime,
			"time":       time.Now().Unix(),
		})
	})

	// Page routes; each handler states its own auth requirement
	requireAuth := middleware.RequireAuth()
	authHandler.RegisterRoutes(router, requireAuth)
	dashboardHandler.RegisterRoutes(router, requireAuth)
	expenseHandler.RegisterRoutes(router, requireAuth)
	categoryHandler.RegisterRoutes(router, requireAuth)
	budgetHandler.RegisterRoutes(router, requireAuth)
	analyticsHandler.RegisterRoutes(router, requireAuth)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 10 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := rdb.Close(); err != nil {
		log.Printf("Error closing Redis connection: %v", err)
	}

	log.Println("Server exited properly")
}

func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.Server.Mode == "release" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormLogger,
		// Unique violations must surface as gorm.ErrDuplicatedKey so a
		// check-then-insert race reports the same validation error the
		// pre-check would have.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Expense{},
		&models.Budget{},
	)
}
