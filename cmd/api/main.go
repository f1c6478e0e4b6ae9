// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

/*
The api command runs the Marché Pagne account service.

Startup sequence: configuration, Postgres pool, schema migrations, Redis
client, then the HTTP server. Any failure before the server binds is fatal;
after that the process drains gracefully on SIGINT/SIGTERM.
*/
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/marchepagne/compte/internal/api"
	"github.com/marchepagne/compte/internal/platform/config"
	"github.com/marchepagne/compte/internal/platform/migration"
	"github.com/marchepagne/compte/internal/platform/postgres"
	platformredis "github.com/marchepagne/compte/internal/platform/redis"
	"github.com/marchepagne/compte/internal/platform/sec"
	"github.com/marchepagne/compte/internal/platform/view"
	"github.com/marchepagne/compte/internal/users/auth"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := newLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("service terminated", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
		return err
	}

	redisClient, err := platformredis.NewClient(ctx, cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	tokens, err := sec.NewTokenService(cfg.JWTSecret, "compte")
	if err != nil {
		return err
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}

	users := auth.NewUserRepository(pool)
	sessionStore := auth.NewSessionStore(redisClient)
	sessions := auth.NewSessionManager(sessionStore, cfg.SessionSecret, cfg.IsProduction())

	router := api.NewRouter(api.Dependencies{
		Logger:     logger,
		Config:     cfg,
		Renderer:   renderer,
		Users:      users,
		Sessions:   sessions,
		Service:    auth.NewService(users, tokens),
		Verifier:   auth.NewVerifier(users),
		Reconciler: auth.NewReconciler(cfg.AppBaseURL),
		Health:     api.NewHealthHandler(pingDatabase(pool), pingCache(redisClient)),
	})

	server := api.NewServer(":"+cfg.ServerPort, router)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			slog.String("addr", server.Addr),
			slog.String("environment", cfg.Environment),
		)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		// In-flight requests did not finish in time; drop them.
		_ = server.Close()
		return err
	}

	logger.Info("shutdown complete")
	return nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func pingDatabase(pool *pgxpool.Pool) api.Pinger {
	return func(ctx context.Context) error {
		return postgres.Ping(ctx, pool)
	}
}

func pingCache(client *goredis.Client) api.Pinger {
	return func(ctx context.Context) error {
		return platformredis.Ping(ctx, client)
	}
}
