package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iudanet/stockkeeper/internal/config"
	"github.com/iudanet/stockkeeper/internal/server/events"
	"github.com/iudanet/stockkeeper/internal/server/middleware"
	"github.com/iudanet/stockkeeper/internal/server/session"
	"github.com/iudanet/stockkeeper/internal/server/storage/sqlstore"
)

// Run открывает хранилище, поднимает HTTP сервер и блокируется до отмены ctx,
// после чего выполняет graceful shutdown.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, version string) error {
	store, err := sqlstore.New(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()
	logger.Info("storage ready", slog.String("driver", cfg.Database.Driver))

	limiter, closeLimiter := newAuthLimiter(ctx, cfg, logger)
	defer closeLimiter()

	var publisher events.Publisher = events.Nop{}
	if cfg.AMQP.URL != "" {
		amqpPublisher := events.NewAMQPPublisher(logger, cfg.AMQP.URL, cfg.AMQP.Exchange)
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		logger.Info("item events enabled", slog.String("exchange", cfg.AMQP.Exchange))
	}

	sessions := session.NewManager(session.Config{
		Secret:     []byte(cfg.Session.Secret),
		TTL:        cfg.Session.TTL,
		Production: cfg.IsProduction(),
	})

	handler := NewRouter(Deps{
		Logger:       logger,
		Accounts:     store,
		Items:        store,
		Pinger:       store,
		Sessions:     sessions,
		Publisher:    publisher,
		AuthLimiter:  limiter,
		RateWindow:   cfg.RateLimit.Window,
		ClientOrigin: cfg.Server.ClientOrigin,
		BcryptCost:   cfg.Session.BcryptCost,
		TrustProxy:   cfg.RateLimit.TrustProxy,
		Version:      version,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", slog.String("addr", cfg.Server.Addr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

// newAuthLimiter выбирает Redis limiter, если REDIS_ADDR задан и доступен,
// иначе in-memory.
func newAuthLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (middleware.Limiter, func()) {
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()

		if err == nil {
			logger.Info("rate limiter uses redis", slog.String("addr", cfg.Redis.Addr))
			limiter := middleware.NewRedisLimiter(client, "stockkeeper:rl", cfg.RateLimit.Requests, cfg.RateLimit.Window)
			return limiter, func() { _ = client.Close() }
		}

		logger.Warn("redis unavailable, falling back to in-memory rate limiter",
			slog.String("addr", cfg.Redis.Addr),
			slog.Any("error", err))
		_ = client.Close()
	}

	limiter := middleware.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	return limiter, limiter.Stop
}
