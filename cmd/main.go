package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/C0nnectify/edulens/internal/adapters/http/api"
	"github.com/C0nnectify/edulens/internal/adapters/http/swagger"
	"github.com/C0nnectify/edulens/internal/adapters/repository"
	app "github.com/C0nnectify/edulens/internal/app"
	"github.com/C0nnectify/edulens/internal/config"
	"github.com/C0nnectify/edulens/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 30 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	mongoConnectTimeout    = 10 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		os.Stderr.WriteString("failed to initialize store: " + err.Error() + "\n")
		return
	}
	defer cleanup()

	svc := app.New(
		app.WithLogger(log),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeCacheSize(cfg.DedupeCacheSize),
		app.WithFuzzyCeiling(cfg.FuzzyCeiling),
		app.WithFuzzySimilarity(float64(cfg.FuzzySimilarity)/100),
		app.WithSplitConfig(cfg.ValFraction, cfg.TestFraction, cfg.SplitSeed),
		app.WithStore(store),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	go startServiceMetricsUpdater(ctx, svc)

	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// buildStore constructs the configured record store. The returned cleanup
// closes the Mongo client when that backend is selected.
func buildStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	if cfg.StoreBackend != config.StoreMongo {
		return repository.NewMemStore(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	store, err := repository.NewMongoStore(ctx, client.Database(cfg.MongoDatabase), cfg.MongoCollection)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	cleanup := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}
	return store, cleanup, nil
}

// startServiceMetricsUpdater periodically refreshes the service gauges.
// Stats itself pushes the values to the metrics registry.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.Stats(ctx)
		}
	}
}
