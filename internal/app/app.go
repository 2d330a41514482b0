package app

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

	"problem-hunt-api/internal/auth"
	"problem-hunt-api/internal/config"
	"problem-hunt-api/internal/database"
	"problem-hunt-api/internal/handler"
	"problem-hunt-api/internal/middleware"
	"problem-hunt-api/internal/router"
	"problem-hunt-api/internal/service"
	"problem-hunt-api/internal/store"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var (
		docStore store.Store
		cleanup  []func()
		pinger   handler.Pinger
	)

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		slog.Info("connecting to PostgreSQL")
		db, err := database.Connect(context.Background(), database.Config{
			URL:      cfg.DatabaseURL,
			MaxConns: cfg.DBMaxConns,
			MinConns: cfg.DBMinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}
		docStore = store.NewPostgres(db.Pool)
		pinger = db
		cleanup = append(cleanup, db.Close)
	case config.StoreDriverMemory:
		slog.Warn("using in-memory store; data will not survive a restart")
		docStore = store.NewMemory()
	}

	verifier, err := auth.NewVerifier(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}
	authMiddleware := middleware.NewAuthMiddleware(verifier)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Health:      handler.NewHealthHandler(pinger),
		Problem:     handler.NewProblemHandler(service.NewProblemService(docStore)),
		Proposal:    handler.NewProposalHandler(service.NewProposalService(docStore)),
		Tip:         handler.NewTipHandler(service.NewTipService(docStore)),
		Wallet:      handler.NewWalletHandler(service.NewWalletService(docStore)),
		Post:        handler.NewPostHandler(service.NewPostService(docStore)),
		Leaderboard: handler.NewLeaderboardHandler(service.NewLeaderboardService(docStore)),
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server, cleanupFuncs: cleanup}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// shutdown drains in-flight requests before releasing the store; the
// pool must outlive the handlers that use it.
func (a *App) shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	return err
}
