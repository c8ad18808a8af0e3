package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/viper"

	"github.com/dicepad/dicepad/internal/api"
	"github.com/dicepad/dicepad/internal/factory"
	redisstorage "github.com/dicepad/dicepad/internal/storage/redis"
)

func main() {
	// Configuration comes from the environment with DICEPAD_ prefixed keys
	v := viper.New()
	v.SetEnvPrefix("DICEPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("host", "")
	v.SetDefault("port", 8080)
	v.SetDefault("storage-type", factory.StorageTypeMemory)
	v.SetDefault("redis-url", "")
	v.SetDefault("log-level", "info")

	// Set up logging with JSON output
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Build factory config
	cfg := factory.Config{
		Logger:      logger,
		StorageType: v.GetString("storage-type"),
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := v.GetString("redis-url")
		if redisURL == "" {
			logger.Error("DICEPAD_REDIS_URL required when DICEPAD_STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start the websocket hub; it stops when the context is cancelled
	go app.Hub.Run(ctx)

	// Create router and server
	router := api.NewRouter(api.RouterConfig{
		Logger:   logger,
		Registry: app.Registry,
		Hub:      app.Hub,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = v.GetString("host")
	serverConfig.Port = v.GetInt("port")
	server := api.NewServer(router, serverConfig, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
