package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"qcars.backend/internal/config"
	"qcars.backend/internal/infrastructure/models"
	"qcars.backend/internal/infrastructure/repositories"
	"qcars.backend/internal/interfaces/http/handlers"
	"qcars.backend/internal/interfaces/http/middleware"
	"qcars.backend/internal/usecases"
	"qcars.backend/pkg/jwt"
	"qcars.backend/pkg/logger"
	"qcars.backend/pkg/mq"
	"qcars.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
			// Map driver unique-violation errors to gorm.ErrDuplicatedKey so
			// the repositories can surface them as domain conflicts.
			TranslateError: true,
		})
	}
	newSessionStore = redis.NewSessionStore
	newPublisher    = mq.NewPublisher
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
		if err := db.AutoMigrate(
			&models.User{},
			&models.PasswordReset{},
			&models.CarPost{},
			&models.FileObject{},
			&models.AppSetting{},
		); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)
	postRepo := repositories.NewCarPostRepository(db)
	fileRepo := repositories.NewFileRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db, cfg.Marketplace.PaymentsRequiredDefault)
	uow := repositories.NewUnitOfWork(db)

	// Initialize Session Store
	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Event publisher is optional; the platform runs fine without a broker.
	var publisher *mq.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = newPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Printf("⚠️ RabbitMQ not available: %v (status events will not be published)", err)
		} else {
			defer publisher.Close()
			logger.Info(context.Background(), "RabbitMQ publisher initialized", zap.String("exchange", cfg.RabbitMQ.Exchange))
		}
	}

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, resetRepo, settingsRepo, uow, jwtService)
	accountUsecase := usecases.NewAccountUsecase(userRepo, settingsRepo, postRepo, publisher)
	postUsecase := usecases.NewPostUsecase(postRepo, fileRepo, accountUsecase)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase, sessionStore, cfg.JWT.RefreshExpiry)
	postHandler := handlers.NewPostHandler(postUsecase, authUsecase)
	adminHandler := handlers.NewAdminHandler(accountUsecase, authUsecase)
	fileHandler := handlers.NewFileHandler(postUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService, sessionStore)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		postHandler:    postHandler,
		adminHandler:   adminHandler,
		fileHandler:    fileHandler,
		authMiddleware: authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
	}()

	// Start server
	log.Printf("🚀 QCARS Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
