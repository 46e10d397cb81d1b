// Package server wires configuration, storage, cache and object storage
// into the presentation service and runs the gRPC and HTTP transports
// until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophslides/internal/logging"
	"github.com/dmitrijs2005/gophslides/internal/server/cache"
	"github.com/dmitrijs2005/gophslides/internal/server/config"
	"github.com/dmitrijs2005/gophslides/internal/server/httpapi"
	"github.com/dmitrijs2005/gophslides/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophslides/internal/server/services"
	"github.com/dmitrijs2005/gophslides/internal/server/storage"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/gophslides/internal/server/grpc"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sqlx.DB
	redis         *redis.Client
	presentations *services.PresentationService
}

// NewApp connects to PostgreSQL, applies migrations and builds the service.
// Redis and S3 are wired only when configured.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	db, err := sqlx.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db.DB); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	var opts []services.Option

	if c.CacheEnabled() {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr, DB: c.RedisDB})
		opts = append(opts, services.WithCache(cache.NewRedisCache(app.redis, c.CacheTTL, logger)))
		logger.Info(ctx, "presentation cache enabled", "addr", c.RedisAddr, "ttl", c.CacheTTL)
	}

	if c.ExportEnabled() {
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			User:         c.S3RootUser,
			Password:     c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			app.close()
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		opts = append(opts, services.WithObjectStore(store))
		logger.Info(ctx, "snapshot export enabled", "bucket", c.S3Bucket)
	}

	app.presentations = services.NewPresentationService(db, rm, c, logger, opts...)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.presentations)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.presentations)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves both transports until ctx is cancelled, a signal arrives or
// either transport fails, then releases the connections.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close()
	app.logger.Info(context.Background(), "App stopped")
}

func (app *App) close() {
	if app.redis != nil {
		_ = app.redis.Close()
	}
	if app.db != nil {
		_ = app.db.Close()
	}
}
