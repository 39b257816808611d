package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/kislikjeka/bookkeeper/internal/infra/postgres"
	infraRedis "github.com/kislikjeka/bookkeeper/internal/infra/redis"
	"github.com/kislikjeka/bookkeeper/migrations"
	"github.com/kislikjeka/bookkeeper/pkg/config"
	"github.com/kislikjeka/bookkeeper/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			log := logger.New(cfg.Env, os.Stdout)

			db, err := postgres.NewPool(cmd.Context(), postgres.Config{URL: cfg.DatabaseURL, MaxConns: 2})
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := postgres.Migrate(cmd.Context(), db.Pool, migrations.FS)
			for _, v := range applied {
				log.Info("Migration applied", "version", v)
			}
			if err != nil {
				return err
			}

			log.Info("Schema up to date", "applied", len(applied))

			redisClient := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisURL,
				Password: cfg.RedisPassword,
			})
			defer redisClient.Close()
			flushAccountCache(cmd.Context(), infraRedis.NewAccountCache(redisClient, log), applied, log)

			return nil
		},
	}
}

type cacheClearer interface {
	Clear(ctx context.Context) error
}

// flushAccountCache drops every cached account list once the schema has
// changed. A failure is logged; the lists expire on their own TTL.
func flushAccountCache(ctx context.Context, cache cacheClearer, applied []string, log *logger.Logger) {
	if len(applied) == 0 {
		return
	}
	if err := cache.Clear(ctx); err != nil {
		log.Warn("Failed to clear account cache", "error", err)
		return
	}
	log.Info("Account cache cleared")
}
