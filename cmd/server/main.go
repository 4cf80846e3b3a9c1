package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/chainledger/chainledger/internal/adapter/http"
	"github.com/chainledger/chainledger/internal/adapter/http/handler"
	"github.com/chainledger/chainledger/internal/adapter/http/middleware"
	postgresRepo "github.com/chainledger/chainledger/internal/adapter/repository/postgres"
	redisRepo "github.com/chainledger/chainledger/internal/adapter/repository/redis"
	"github.com/chainledger/chainledger/internal/infrastructure/auth"
	"github.com/chainledger/chainledger/internal/infrastructure/config"
	"github.com/chainledger/chainledger/internal/infrastructure/logger"
	"github.com/chainledger/chainledger/internal/infrastructure/metrics"
	"github.com/chainledger/chainledger/internal/infrastructure/postgres"
	"github.com/chainledger/chainledger/internal/infrastructure/redis"
	"github.com/chainledger/chainledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "chainledger",
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("migrations applied")

	// Connect to Redis. The ledger works without it: no balance cache,
	// no idempotency replay.
	var cache usecase.Cache
	var idempotencyStore usecase.IdempotencyStore
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache and idempotency")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		if cfg.BalanceCacheEnable {
			cache = redisRepo.NewCache(redisClient)
		}
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Initialize metrics
	m := metrics.New()

	// Initialize use cases
	ledgerUC := usecase.NewLedgerUseCase(txManager, entryRepo, cache, idGen, m)
	balanceUC := usecase.NewBalanceUseCase(entryRepo, cache, m)
	verifyUC := usecase.NewVerifyUseCase(entryRepo, m)
	entryUC := usecase.NewEntryUseCase(entryRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo, m)

	// Initialize handlers
	ledgerHandler := handler.NewLedgerHandler(ledgerUC, auditUC, retrier)
	entryHandler := handler.NewEntryHandler(entryUC, balanceUC)
	verifyHandler := handler.NewVerifyHandler(verifyUC, auditUC)
	auditHandler := handler.NewAuditHandler(auditUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Authentication is optional; without a secret the API is open.
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		log.Info().Msg("authentication enabled")
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		LedgerHandler:    ledgerHandler,
		EntryHandler:     entryHandler,
		VerifyHandler:    verifyHandler,
		AuditHandler:     auditHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		JWTManager:       jwtManager,
		Logger:           log,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
