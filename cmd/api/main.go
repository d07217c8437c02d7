// Command api serves the notes REST API.
//
// @title                       Notes API
// @version                     1.0
// @description                 Personal notes manager: account registration, JWT login and owner-scoped note CRUD.
// @host                        localhost:5000
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/notesapp/notes-manager/internal/api"
	"github.com/notesapp/notes-manager/internal/api/handler"
	"github.com/notesapp/notes-manager/internal/core/ports"
	"github.com/notesapp/notes-manager/internal/core/service"
	"github.com/notesapp/notes-manager/internal/infrastructure/config"
	"github.com/notesapp/notes-manager/internal/infrastructure/db/memory"
	mongodb "github.com/notesapp/notes-manager/internal/infrastructure/db/mongo"
	redisdb "github.com/notesapp/notes-manager/internal/infrastructure/db/redis"
	"github.com/notesapp/notes-manager/pkg/logger"
)

const (
	serviceName     = "notes-api"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("shutdown complete")
}

// stores bundles the repositories and the probes/closers of whatever backs them.
type stores struct {
	users  ports.UserRepository
	notes  ports.NoteRepository
	cache  ports.UserCache
	checks map[string]handler.Check
	close  []func(context.Context) error
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, c := range st.close {
			if err := c(closeCtx); err != nil {
				log.Warn().Err(err).Msg("close store")
			}
		}
	}()

	authService := service.NewAuthService(st.users, st.cache, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth"))
	noteService := service.NewNoteService(st.notes, logger.Component("notes"))

	deps := api.Dependencies{
		AuthService:   authService,
		NoteService:   noteService,
		HealthChecks:  st.checks,
		Logger:        logger.Component("http"),
		CORSOrigins:   cfg.CORSOrigins,
		StaticDir:     cfg.StaticDir,
		EnableSwagger: cfg.Swagger,
	}
	if cfg.Metrics {
		deps.MetricsRegisterer = prometheus.DefaultRegisterer
		deps.MetricsGatherer = prometheus.DefaultGatherer
	}
	e := api.NewRouter(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("storage", cfg.Storage).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	st := &stores{checks: map[string]handler.Check{}}

	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		st.users = memory.NewUserRepository()
		st.notes = memory.NewNoteRepository()
	default:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return nil, err
		}
		users := mongodb.NewUserRepository(db)
		notes := mongodb.NewNoteRepository(db)
		if err := mongodb.EnsureIndexes(ctx, users, notes); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		st.users, st.notes = users, notes
		st.checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		st.close = append(st.close, client.Disconnect)
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	}

	if cfg.Redis.Enabled {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			// The cache is optional; authentication falls back to the store.
			log.Warn().Err(err).Msg("redis unavailable, user cache disabled")
		} else {
			st.cache = redisdb.NewUserCache(rdb, cfg.Redis.UserTTL)
			st.checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			st.close = append(st.close, func(context.Context) error { return rdb.Close() })
		}
	}

	return st, nil
}
