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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/StellaShiina/inventory-ui/auth"
	"github.com/StellaShiina/inventory-ui/config"
	"github.com/StellaShiina/inventory-ui/db"
	"github.com/StellaShiina/inventory-ui/handlers"
	"github.com/StellaShiina/inventory-ui/logging"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	// Prioritize /etc/inventory-ui/.env, then fall back to the working directory
	envFile := config.LoadEnv()
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if envFile != "" {
		logger.Info("loaded environment file", zap.String("path", envFile))
	} else {
		logger.Info("no .env found; using environment and defaults")
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("JWT_SECRET is not set; using the built-in development secret")
	}

	auth.Configure(cfg)
	if err := db.Init(cfg); err != nil {
		logger.Fatal("failed to init database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handlers.Router(logger),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("inventory server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
