package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	httpapi "github.com/zoneboy/zilcycler/internal/api/http"
	"github.com/zoneboy/zilcycler/internal/config"
	"github.com/zoneboy/zilcycler/internal/logger"
	"github.com/zoneboy/zilcycler/internal/repository/postgres"
	redisrepo "github.com/zoneboy/zilcycler/internal/repository/redis"
	"github.com/zoneboy/zilcycler/internal/scheduler"
	"github.com/zoneboy/zilcycler/internal/security"
	"github.com/zoneboy/zilcycler/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Zilcycler account service...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Redis backs the rate-limit counters. A failed ping is logged but not
	// fatal; the limiter degrades per the fail-open policy.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable at startup, rate limiting degraded", "error", err, "addr", cfg.Redis.Addr)
	} else {
		logger.Info("Redis connection established", "addr", cfg.Redis.Addr)
	}
	cancel()

	// Repositories
	store := postgres.NewStore(db)
	rateLimitRepo := redisrepo.NewRateLimitRepository(redisClient, "zilcycler")

	// Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.SessionExpiry())
	fieldCipher := security.NewFieldCipher(cfg.Security.EncryptionSecret, cfg.Security.EncryptionSalt, cfg.Security.StrictDecrypt)

	// Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	limiter := service.NewRateLimiter(rateLimitRepo, cfg.RateLimit.MaxRequests, cfg.RateLimitWindow(), cfg.Security.RateLimitFailClosed)
	authSvc := service.NewAuthService(
		store.AccountRepository,
		store.OTPRepository,
		store.SettingsRepository,
		tokenManager,
		fieldCipher,
		emailSvc,
		cfg.SignupOTPExpiry(),
		cfg.ResetOTPExpiry(),
	)
	accountSvc := service.NewAccountService(store.AccountRepository, fieldCipher)
	pickupSvc := service.NewPickupService(store.PickupRepository, store.LedgerRepository)
	redemptionSvc := service.NewRedemptionService(store.RedemptionRepository, store.LedgerRepository)
	ledgerSvc := service.NewLedgerService(store.LedgerRepository)
	settingsSvc := service.NewSettingsService(store.SettingsRepository)

	// HTTP surface
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager, store.AccountRepository)
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:       httpapi.NewAuthHandler(authSvc, limiter),
		Accounts:   httpapi.NewAccountHandler(accountSvc),
		Pickups:    httpapi.NewPickupHandler(pickupSvc),
		Redemption: httpapi.NewRedemptionHandler(redemptionSvc),
		Ledger:     httpapi.NewLedgerHandler(ledgerSvc),
		Settings:   httpapi.NewSettingsHandler(settingsSvc),
	}, authMiddleware)

	// Background jobs
	sched := scheduler.NewScheduler(store.OTPRepository, cfg)
	sched.Start()
	defer sched.Stop()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
