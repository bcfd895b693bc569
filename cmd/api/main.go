package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/campusnotes/campusnotes-api/internal/access"
	"github.com/campusnotes/campusnotes-api/internal/config"
	"github.com/campusnotes/campusnotes-api/internal/crypto"
	"github.com/campusnotes/campusnotes-api/internal/handler"
	"github.com/campusnotes/campusnotes-api/internal/metrics"
	"github.com/campusnotes/campusnotes-api/internal/model"
	"github.com/campusnotes/campusnotes-api/internal/repository"
	"github.com/campusnotes/campusnotes-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	if err := run(cfg); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var h slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("closing database", "error", err)
		}
		slog.Info("database connection closed")
	}()

	if cfg.AutoMigrate {
		if err := repository.Migrate(ctx, db); err != nil {
			return err
		}
		slog.Info("schema applied")
	}

	users := repository.NewUserRepository(db)
	tokens := crypto.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	hasher := crypto.NewHasher(crypto.DefaultHashParams())

	router := handler.NewRouter(handler.Deps{
		Auth: service.NewAuthService(users, hasher, tokens),
		Notes: service.NewResourceService[model.Note]("notes",
			repository.NewRepository(db, repository.NoteSchema), users, model.NoteQuery),
		Assignments: service.NewResourceService[model.Assignment]("assignments",
			repository.NewRepository(db, repository.AssignmentSchema), users, model.AssignmentQuery),
		OldQuestions: service.NewResourceService[model.OldQuestion]("old_questions",
			repository.NewRepository(db, repository.OldQuestionSchema), users, model.OldQuestionQuery),
		Blogs: service.NewResourceService[model.Blog]("blogs",
			repository.NewRepository(db, repository.BlogSchema), users, model.BlogQuery),
		Tokens:  tokens,
		Policy:  access.NewPolicy(access.WithProfileOwnership(cfg.EnforceOwnership)),
		Metrics: metrics.New(prometheus.NewRegistry()),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
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

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("server stopped")
	return nil
}
