package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/config"
	v1 "github.com/dmehra2102/prod-golang-projects/psiklinik/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/repository/memory"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/service"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/pkg/tracer"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.App.Version == "0.0.0" {
				cfg.App.Version = version
			}
			return runServer(cmd.Context(), cfg)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New(cfg.Log, cfg.App)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// Dashboards expect money as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	tp, err := tracer.Init(ctx, cfg.Tracing, cfg.App.Version)
	if err != nil {
		return fmt.Errorf("initialising tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	jwtm := auth.NewJWTManager(cfg.JWT)
	authSvc := service.NewAuthService(a.repos.Users, jwtm, cfg.Auth.BcryptCost, a.deps)
	if cfg.Seed.DemoUsers {
		var accounts []service.Account
		for _, u := range memory.DemoUsers() {
			accounts = append(accounts, service.Account{User: u.User, Password: u.Password})
		}
		if err := authSvc.Provision(accounts...); err != nil {
			return fmt.Errorf("provisioning demo users: %w", err)
		}
		log.Warn("demo accounts provisioned", zap.Int("count", len(accounts)))
	}

	// Deferred in this order so the sweeper is cancelled, then waited for,
	// before a.close stops the audit pipeline it writes to.
	var workers sync.WaitGroup
	defer workers.Wait()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Sweep.Enabled {
		sw := service.NewSweeper(a.services.Inventory, a.services.Finance, a.repos.Counts, cfg.Sweep.Interval, a.deps)
		workers.Go(func() { sw.Run(ctx) })
	}

	router := v1.NewRouter(v1.RouterConfig{
		Config:   cfg,
		Services: a.services,
		Auth:     authSvc,
		JWT:      jwtm,
		Metrics:  a.metrics,
		Log:      log,
		Counts:   a.repos.Counts,
		Today:    a.deps.Today,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Environment),
			zap.String("version", cfg.App.Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
