package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcdaley/dough-app/internal/currentuser"
	"github.com/mcdaley/dough-app/internal/httpapi"
	"github.com/mcdaley/dough-app/internal/ledger"
	"github.com/mcdaley/dough-app/internal/storage/memory"
	pgstore "github.com/mcdaley/dough-app/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLoggerFromEnv()
	slog.SetDefault(logger)

	// The service has no real authentication yet: every request acts on
	// behalf of one fixed user, resolved through an injected capability.
	user := currentuser.UserFromEnv(os.Getenv("DOUGH_USER_ID"))
	users := currentuser.NewFixed(user)

	var store httpapi.Store
	var closeFn func()

	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		pg, err := pgstore.Open(ctx, dsn)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		closeFn = func() { pg.Close() }
		if devSeedEnabled() {
			acc, err := pg.SeedDev(ctx, user)
			if err != nil {
				logger.Error("dev seed failed", "err", err)
			} else {
				logger.Info("DEV seed (postgres)", "user_id", user.ID.String(), "account_id", acc.ID.String())
			}
		}
		store = pg
		logger.Info("storage backend: postgres")
	} else {
		mem := memory.New()
		mem.SeedUser(user)
		acc := ledger.Account{
			ID:                 uuid.New(),
			UserID:             user.ID,
			Name:               "Everyday Checking",
			FinancialInstitute: "Dough Bank",
			Type:               ledger.AccountTypeChecking,
			InitialBalance:     decimal.Zero,
			InitialDate:        time.Now().UTC(),
		}
		mem.SeedAccount(acc)
		logger.Info("DEV seed (memory)", "user_id", user.ID.String(), "account_id", acc.ID.String())
		store = mem
		logger.Info("storage backend: memory")
	}

	srv := &http.Server{
		Addr:              ":" + port(),
		Handler:           httpapi.New(store, users, logger).Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dough service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

func port() string {
	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		return p
	}
	return "5000"
}

func devSeedEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("DEV_SEED")))
	return v == "1" || v == "true" || v == "yes"
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch s {
	case "DEBUG", "debug":
		return slog.LevelDebug
	case "WARN", "WARNING", "warn", "warning":
		return slog.LevelWarn
	case "ERROR", "ERR", "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLoggerFromEnv() *slog.Logger {
	level := parseLogLevel(os.Getenv("LOG_LEVEL"))
	format := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
