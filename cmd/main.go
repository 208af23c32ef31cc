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

	"player_bonus_service/internal/actionlog"
	"player_bonus_service/internal/api/rest"
	"player_bonus_service/internal/auth"
	"player_bonus_service/internal/bonus"
	"player_bonus_service/internal/config"
	"player_bonus_service/internal/database"
	"player_bonus_service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if cfg.DBDriver == config.DriverPostgres {
		if err := database.EnsureDatabase(ctx, cfg.DBConnStr, logger); err != nil {
			return err
		}
	}

	db, err := database.Open(cfg, logger)
	if err != nil {
		return err
	}
	if cfg.DBAutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}
	if cfg.DBSeed {
		if err := database.Seed(ctx, db, logger); err != nil {
			return err
		}
	}

	issuer, err := auth.NewTokenIssuer(auth.Options{
		Key:       cfg.JWTKey,
		Issuer:    cfg.JWTIssuer,
		Audience:  cfg.JWTAudience,
		TTL:       cfg.JWTTTL,
		ClockSkew: cfg.JWTClockSkew,
	})
	if err != nil {
		return err
	}

	service := bonus.NewBonusService(bonus.NewStore(db), actionlog.NewRecorder(), logger)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.TraceID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.Metrics(),
		middleware.RateLimit(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	)
	rest.RegisterRoutes(r,
		rest.NewBonusHandler(service, logger),
		rest.NewAuthHandler(issuer, logger),
		issuer,
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
