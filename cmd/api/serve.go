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

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/kislikjeka/bookkeeper/internal/infra/postgres"
	infraRedis "github.com/kislikjeka/bookkeeper/internal/infra/redis"
	"github.com/kislikjeka/bookkeeper/internal/ledger"
	"github.com/kislikjeka/bookkeeper/internal/platform/account"
	"github.com/kislikjeka/bookkeeper/internal/platform/party"
	"github.com/kislikjeka/bookkeeper/internal/platform/user"
	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi"
	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi/handler"
	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi/middleware"
	"github.com/kislikjeka/bookkeeper/pkg/config"
	"github.com/kislikjeka/bookkeeper/pkg/logger"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting bookkeeper API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"version", version,
	)
	handler.Version = version

	db, err := postgres.NewPool(ctx, postgres.Config{
		URL:      cfg.DatabaseURL,
		MaxConns: int32(cfg.DBMaxConns),
	})
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Database connection established")

	// The account cache is optional: documents still post when Redis is down,
	// they just read the chart of accounts from Postgres.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, account cache will miss until it recovers", "error", err)
	} else {
		log.Info("Redis connection established")
	}
	accountCache := infraRedis.NewAccountCacheWithTTL(redisClient, cfg.AccountCacheTTL, log)

	userRepo := postgres.NewUserRepository(db.Pool)
	accountRepo := postgres.NewAccountRepository(db.Pool)
	partyRepo := postgres.NewPartyRepository(db.Pool)
	ledgerRepo := postgres.NewLedgerRepository(db.Pool)

	userSvc := user.NewService(userRepo, log)
	accountSvc := account.NewService(accountRepo, accountCache, log)
	partySvc := party.NewService(partyRepo)
	ledgerSvc := ledger.NewService(ledgerRepo, accountSvc, partySvc, log)
	jwtSvc := middleware.NewJWTService(cfg.JWTSecret)

	r := httpapi.NewRouter(httpapi.Config{
		Logger:          log,
		AllowedOrigins:  cfg.AllowedOrigins,
		TrustProxy:      cfg.TrustProxy,
		AuthHandler:     handler.NewAuthHandler(userSvc, jwtSvc, cfg.IsProduction()),
		AccountHandler:  handler.NewAccountHandler(accountSvc),
		PartyHandler:    handler.NewPartyHandler(partySvc),
		DocumentHandler: handler.NewDocumentHandler(ledgerSvc, accountSvc),
		HealthHandler: handler.NewHealthHandler(
			db,
			handler.PingerFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }),
			func() any { return db.PoolStats() },
		),
		JWTMiddleware: middleware.JWTMiddleware(jwtSvc),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
