// Package server wires the LoveLetters backend together: it opens the store,
// builds the services and runs the HTTP API and the gRPC health endpoint until
// a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/logging"
	"github.com/dmitrijs2005/loveletters/internal/server/auth"
	"github.com/dmitrijs2005/loveletters/internal/server/config"
	"github.com/dmitrijs2005/loveletters/internal/server/httpapi"
	"github.com/dmitrijs2005/loveletters/internal/server/metrics"
	"github.com/dmitrijs2005/loveletters/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/loveletters/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	gs "github.com/dmitrijs2005/loveletters/internal/server/grpc"
)

const healthCheckInterval = 15 * time.Second

type App struct {
	config         *config.Config
	logger         logging.Logger
	repomanager    repomanager.RepositoryManager
	userService    *services.UserService
	messageService *services.MessageService
	registry       *prometheus.Registry
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	hasher, err := auth.NewPasswordHasher(c.PasswordHasher)
	if err != nil {
		return nil, err
	}

	m, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	tokens := auth.NewTokenService(c.SecretKey, c.AccessTokenValidityDuration)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterMetrics(registry)

	return &App{
		config:         c,
		logger:         logger,
		repomanager:    m,
		userService:    services.NewUserService(m, hasher, tokens, logger),
		messageService: services.NewMessageService(m, logger),
		registry:       registry,
	}, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	router := httpapi.NewRouter(app.userService, app.messageService, app.logger, app.config.CORSOrigins,
		promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, router, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.repomanager, healthCheckInterval, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a signal arrives or a server fails, then closes the store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(context.Background(), "store close failed", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
