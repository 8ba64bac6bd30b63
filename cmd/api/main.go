package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/winston1234564757/Smartfix-sub000/internal/app"
	"github.com/winston1234564757/Smartfix-sub000/internal/clock"
	"github.com/winston1234564757/Smartfix-sub000/internal/config"
	"github.com/winston1234564757/Smartfix-sub000/internal/logger"
	"github.com/winston1234564757/Smartfix-sub000/internal/storage/postgres"
	transporthttp "github.com/winston1234564757/Smartfix-sub000/internal/transport/http"
	"github.com/winston1234564757/Smartfix-sub000/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		panic(err)
	}
	log := zap.L()

	if cfg.DatabaseURI == "" {
		log.Fatal("database connection string is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("jwt secret is required")
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := migrations.Apply(startupCtx, cfg.DatabaseURI); err != nil {
		log.Fatal("apply migrations", zap.Error(err))
	}

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURI)
	if err != nil {
		log.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatal("db ping", zap.Error(err))
	}

	clk := clock.NewSystem()
	checkoutSvc := app.NewCheckoutService(postgres.NewOrderRepository(pool), clk)
	inventorySvc := app.NewInventoryService(postgres.NewUnitRepository(pool), clk)
	intakeSvc := app.NewIntakeService(postgres.NewIntakeRepository(pool), clk)
	authSvc := app.NewAuthService(postgres.NewAdminRepository(pool), clk, []byte(cfg.JWTSecret))

	if err := authSvc.Bootstrap(startupCtx, cfg.AdminLogin, cfg.AdminPassword); err != nil {
		log.Fatal("bootstrap admin", zap.Error(err))
	}

	handler := transporthttp.NewRouter(transporthttp.Services{
		Checkout:  checkoutSvc,
		Inventory: inventorySvc,
		Intake:    intakeSvc,
		Auth:      authSvc,
	}, []byte(cfg.JWTSecret), parseCSV(cfg.CORSOrigins))

	server := &http.Server{
		Addr:    cfg.NetAddr,
		Handler: handler,
	}

	log.Info("api listening", zap.String("addr", cfg.NetAddr))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		log.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}

func parseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
