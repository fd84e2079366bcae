// Package server initializes and runs the polyglot server: it selects the
// storage backend, wires services, and runs the REST API and the gRPC
// health endpoint until a termination signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/server/auth"
	"github.com/dmitrijs2005/polyglot/internal/server/config"
	"github.com/dmitrijs2005/polyglot/internal/server/provider"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/polyglot/internal/server/rest"
	"github.com/dmitrijs2005/polyglot/internal/server/services"
	"github.com/dmitrijs2005/polyglot/internal/server/storage"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/polyglot/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	health      *gs.HealthServer
	router      *gin.Engine
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(os.Stdout, c.LogLevel)

	signer, err := auth.NewSigner(c.SecretKey)
	if err != nil {
		return nil, err
	}

	rm, err := newRepositoryManager(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	translator, voice, err := newCollaborators(ctx, c, logger)
	if err != nil {
		_ = rm.Close()
		return nil, err
	}

	ss := services.NewSessionService(rm, signer, c.SessionTTL, logger)
	us := services.NewUserService(rm, ss, logger)
	ts := services.NewTranslationService(rm, translator, voice, logger)

	health := gs.NewHealthServer(rm, logger)

	gin.SetMode(gin.ReleaseMode)
	router := rest.NewRouter(rest.NewHandler(us, ts, health, logger), ss, logger)

	return &App{config: c, logger: logger, repomanager: rm, health: health, router: router}, nil
}

// newRepositoryManager picks the storage backend once. The postgres backend
// is migrated up front; an unreachable database at startup is fatal.
func newRepositoryManager(ctx context.Context, c *config.Config, logger logging.Logger) (repomanager.RepositoryManager, error) {
	switch c.Backend {
	case config.BackendPostgres:
		conn := dbx.NewConnManager(repomanager.PostgresDriver, c.DatabaseDSN, c.DBConnectTimeout)
		rm := repomanager.NewPostgresRepositoryManager(conn)
		if err := rm.RunMigrations(ctx); err != nil {
			_ = rm.Close()
			return nil, fmt.Errorf("db init error: %w", err)
		}
		logger.Info(ctx, "using postgres backend")
		return rm, nil
	default:
		logger.Warn(ctx, "using in-memory backend, data is lost on restart")
		return repomanager.NewInMemoryRepositoryManager(), nil
	}
}

func newCollaborators(ctx context.Context, c *config.Config, logger logging.Logger) (services.Translator, services.VoiceStorage, error) {
	var translator services.Translator = provider.EchoProvider{}
	if c.ProviderURL != "" {
		translator = provider.NewHTTPProvider(c.ProviderURL, c.ProviderAPIKey, c.ProviderTimeout)
	} else {
		logger.Warn(ctx, "no provider URL configured, translations are echoed")
	}

	var voice services.VoiceStorage = storage.Disabled{}
	if c.S3Bucket != "" {
		s3, err := storage.NewS3Storage(ctx, storage.Options{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
			Bucket:       c.S3Bucket,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("object storage init error: %w", err)
		}
		voice = s3
	}

	return translator, voice, nil
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

// runServer runs one listener and cancels the whole app if it fails.
func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or a listener fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	// publish the initial status before anyone probes
	_ = app.health.HealthCheck(ctx)

	httpServer := rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.router, app.logger)
	grpcServer := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.health)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, httpServer.Run)
	}()
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, grpcServer.Run)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "closing backend", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
