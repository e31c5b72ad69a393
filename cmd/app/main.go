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
	_ "time/tzdata"

	_ "github.com/osse101/CaseDrop_Go/docs"
	"github.com/osse101/CaseDrop_Go/internal/bootstrap"
	"github.com/osse101/CaseDrop_Go/internal/caseopen"
	"github.com/osse101/CaseDrop_Go/internal/config"
	"github.com/osse101/CaseDrop_Go/internal/cooldown"
	"github.com/osse101/CaseDrop_Go/internal/handler"
	"github.com/osse101/CaseDrop_Go/internal/lootbox"
	"github.com/osse101/CaseDrop_Go/internal/server"
)

const shutdownTimeout = 15 * time.Second

// @title CaseDrop API
// @version 1.0
// @description Case issuance and opening service.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	bootstrap.SetupLogger(cfg, os.Stdout)
	handler.InitValidator()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		return err
	}

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		storage.Close()
		return err
	}
	if err := bootstrap.RegisterEventHandlers(events.Bus); err != nil {
		storage.Close()
		return err
	}

	clock, err := cooldown.NewConfig(cfg.CaseReferenceTZ, cfg.CaseDailyCutoffHour)
	if err != nil {
		storage.Close()
		return fmt.Errorf("%s: %w", bootstrap.ErrMsgFailedParseCutoff, err)
	}

	caseService := caseopen.NewService(storage.Cases, storage.Catalog, lootbox.NewService(), events.Dispatcher, caseopen.Config{
		LockTimeout: cfg.CaseLockTimeout,
		OpenXP:      cfg.CaseOpenXP,
		Cooldown:    clock,
	})

	srv := server.NewServer(server.Options{
		Port:              cfg.Port,
		APIKey:            cfg.APIKey,
		TrustedProxies:    cfg.TrustedProxies,
		RateLimit:         cfg.RateLimit,
		RateWindow:        cfg.RateWindow,
		OpenRetryAttempts: cfg.OpenRetryAttempts,
		OpenRetryDelay:    cfg.OpenRetryDelay,
	}, caseService, storage.Pinger)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:  srv,
		Events:  events,
		Storage: storage,
	})

	return runErr
}
