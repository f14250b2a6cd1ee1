// Package server initializes and runs the profilesync server: it opens the
// record store, picks the asset store backend, wires the profile service
// and serves it over gRPC next to the HTTP asset gateway.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/profilesync/internal/logging"
	"github.com/dmitrijs2005/profilesync/internal/server/assets"
	"github.com/dmitrijs2005/profilesync/internal/server/config"
	"github.com/dmitrijs2005/profilesync/internal/server/gateway"
	"github.com/dmitrijs2005/profilesync/internal/server/inflight"
	"github.com/dmitrijs2005/profilesync/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/profilesync/internal/server/services"
	"github.com/dmitrijs2005/profilesync/internal/server/upload"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/profilesync/internal/server/grpc"
)

// seams for tests
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	refs     assets.RefBuilder
	store    assets.Store
	guard    inflight.Guard
	profiles *services.ProfileService
	closers  []func() error
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app := &App{config: c, logger: logger, db: db, closers: []func() error{db.Close}}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		app.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app.refs = assets.RefBuilder{BaseURL: c.PublicBaseURL}
	app.store, err = newAssetStore(ctx, c, app.refs)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("asset store init error: %w", err)
	}

	app.guard = inflight.NewMemoryGuard()
	if c.RedisAddr != "" {
		guard, client, err := inflight.NewRedisGuard(ctx, c.RedisAddr, inflight.DefaultTTL, logger)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		app.guard = guard
		app.closers = append(app.closers, client.Close)
	}

	coordinator := upload.NewCoordinator(app.store, c.UploadChunkSize, logger)
	app.profiles = services.NewProfileService(db, rm, app.store, coordinator, c, nil, logger)

	return app, nil
}

func newAssetStore(ctx context.Context, c *config.Config, refs assets.RefBuilder) (assets.Store, error) {
	switch c.AssetBackend {
	case config.AssetBackendS3:
		return assets.NewS3Store(ctx, assets.S3Config{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			BaseEndpoint: c.S3BaseEndpoint,
		}, refs)
	case config.AssetBackendMinio:
		host, secure, err := assets.ParseEndpoint(c.S3BaseEndpoint)
		if err != nil {
			return nil, err
		}
		return assets.NewMinioStore(assets.MinioConfig{
			Endpoint:  host,
			AccessKey: c.S3RootUser,
			SecretKey: c.S3RootPassword,
			Bucket:    c.S3Bucket,
			Region:    c.S3Region,
			UseSSL:    secure,
		}, refs)
	case config.AssetBackendMemory:
		return assets.NewMemoryStore(refs), nil
	default:
		return nil, fmt.Errorf("unknown asset backend %q", c.AssetBackend)
	}
}

// Close releases the database and Redis connections.
func (app *App) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Warn(context.Background(), "close failed", logging.Err(err))
		}
	}
	app.closers = nil
}

// Run serves the gRPC API and the asset gateway until ctx is cancelled or
// the process receives a termination signal. If either server fails, the
// other one is stopped too.
func (app *App) Run(ctx context.Context) error {
	defer app.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "asset_backend", app.config.AssetBackend, "profile_policy", app.config.ProfilePolicy)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.profiles, app.guard, app.config.SecretKey)
		return s.Run(gctx)
	})

	g.Go(func() error {
		gw := gateway.NewGateway(app.config.EndpointAddrHTTP, app.logger, app.refs, app.store, app.profiles)
		return gw.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		app.logger.Error(ctx, "server stopped with error", logging.Err(err))
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
