package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"invite-auth/internal/config"
	"invite-auth/internal/handler"
	"invite-auth/internal/service"
	"invite-auth/shared/database"
	sharedLogger "invite-auth/shared/logger"
	sharedMiddleware "invite-auth/shared/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := sharedLogger.New(sharedLogger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	zap.L().Info("Logger initialized successfully", zap.String("logLevel", cfg.LogLevel))

	pgPool, err := setupPostgres(cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()

	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DatabaseURL(), logger.Named("Migrations")); err != nil {
			zap.L().Fatal("Failed to apply database migrations", zap.Error(err))
		}
	}

	// --- Dependency Injection ---
	userRepo := database.NewPgUserRepository(logger)
	inviteRepo := database.NewPgInviteCodeRepository(logger)
	txHelper := database.NewTransactionHelper(pgPool, logger)

	tokens, err := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL, nil)
	if err != nil {
		zap.L().Fatal("Failed to create token manager", zap.Error(err))
	}
	hasher := service.NewPasswordHasher(cfg.PasswordPepper, cfg.BcryptCost)
	invites := service.NewInviteService(pgPool, inviteRepo, nil, logger)
	authSvc := service.NewAuthService(pgPool, txHelper, userRepo, invites, hasher, tokens, nil, logger)
	authHandler := handler.NewAuthHandler(authSvc)

	bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = service.NewBootstrapper(pgPool, userRepo, invites, hasher, logger).Run(bootstrapCtx, service.BootstrapConfig{
		InviteCode:    cfg.BootstrapInviteCode,
		InviteMaxUses: cfg.BootstrapInviteMaxUses,
		AdminUsername: cfg.BootstrapAdminUsername,
		AdminPassword: cfg.BootstrapAdminPassword,
	})
	bootstrapCancel()
	if err != nil {
		zap.L().Error("Bootstrap finished with errors, continuing", zap.Error(err))
	}

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(sharedMiddleware.GinZapLogger(logger))
	router.Use(handler.Recovery())
	router.Use(cors.New(corsConfig(cfg)))

	p := ginprometheus.NewPrometheus("gin")

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	authHandler.RegisterRoutes(router)

	// Must run after route registration.
	p.Use(router)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if cfg.AllowAllOrigins() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.GetAllowedOrigins()
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsCfg.ExposeHeaders = []string{sharedMiddleware.RequestIDHeader}
	corsCfg.MaxAge = 12 * time.Hour
	return corsCfg
}

// setupPostgres initializes the PostgreSQL connection pool with retry logic.
func setupPostgres(cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("unable to parse postgres config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	poolConfig.MaxConnIdleTime = cfg.DBIdleTimeout

	var lastErr error
	maxRetries := 50
	retryDelay := 3 * time.Second

	zap.L().Info("Attempting to connect to PostgreSQL", zap.Int("max_retries", maxRetries), zap.Duration("retry_delay", retryDelay))

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		connectCtx, connectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
		connectCancel()
		if err == nil {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
			err = pool.Ping(pingCtx)
			pingCancel()
			if err == nil {
				zap.L().Info("Successfully connected and pinged PostgreSQL", zap.Int("attempt", attempt))
				return pool, nil
			}
			pool.Close()
		}

		lastErr = err
		zap.L().Warn("Postgres connection failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", maxRetries, lastErr)
}
