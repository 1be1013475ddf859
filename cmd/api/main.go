package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alc-pricing/internal/api"
	"alc-pricing/internal/config"
	"alc-pricing/internal/hydrogen"
	"alc-pricing/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	env := config.LoadEnv()
	cfg, err := config.LoadOrDefault(env.ConfigPath)
	if err != nil {
		slog.Error("failed to load config", "path", env.ConfigPath, "error", err)
		os.Exit(1)
	}
	cfg.ApplyEnv(env)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	slog.Info("config loaded", "path", env.ConfigPath, "backend", cfg.Sync.Backend, "targets", len(cfg.Sync.Targets))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := pricing.NewSession(cfg)
	if err != nil {
		slog.Error("failed to build pricing session", "error", err)
		os.Exit(1)
	}

	bus, closeBus, err := buildBus(ctx, cfg.Sync)
	if err != nil {
		slog.Error("failed to build signal bus", "backend", cfg.Sync.Backend, "error", err)
		os.Exit(1)
	}
	defer closeBus()

	receiver, err := hydrogen.NewPriceReceiver(cfg.Sync.ReceiverSize)
	if err != nil {
		slog.Error("failed to build receiver", "error", err)
		os.Exit(1)
	}
	bus.Subscribe(hydrogen.AllSites, receiver.Handle)

	hs := hydrogen.NewHydrogenSync(bus, cfg.Sync.MaxQueue)
	broadcaster := hydrogen.NewPriceBroadcaster(hs, cfg.Sync.CascadeThreshold)
	broadcaster.Register(cfg.Sync.Targets...)

	if env.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Deps{
		Config:         cfg,
		Session:        session,
		Broadcaster:    broadcaster,
		Sync:           hs,
		Receiver:       receiver,
		AllowedOrigins: env.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", env.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("starting API server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

// buildBus returns the configured bus and a cleanup func.
func buildBus(ctx context.Context, sc config.SyncConfig) (hydrogen.Bus, func(), error) {
	if sc.Backend != config.BackendRedis {
		return hydrogen.NewMemoryBus(), func() {}, nil
	}

	opt, err := redis.ParseURL(sc.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opt.DialTimeout == 0 {
		opt.DialTimeout = 5 * time.Second
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("connected to redis", "addr", opt.Addr, "channel", sc.Channel)

	bus := hydrogen.NewRedisBus(client, sc.Channel)
	go func() {
		if err := bus.Listen(ctx, nil); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("redis listener stopped", "error", err)
		}
	}()
	return bus, func() { _ = client.Close() }, nil
}
