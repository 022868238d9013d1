package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/fincalc/internal/cache"
	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/internal/config"
	"github.com/iwvelando/fincalc/internal/logging"
	"github.com/iwvelando/fincalc/internal/server"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/format"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 30 * time.Second

// loadAppConfig reads the application config for calculator default
// overrides and the display locale. A missing file leaves the built-in
// defaults in place.
func loadAppConfig(logger *zap.Logger, path string) (*calculator.Registry, *format.Formatter, error) {
	conf := config.Default()
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		if conf, err = config.LoadConfiguration(path); err != nil {
			return nil, nil, err
		}
	}
	formatter, err := conf.Formatter()
	if err != nil {
		return nil, nil, err
	}
	registry, warnings := conf.ApplyDefaults(calculator.Default())
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning, zap.String("op", "main.loadAppConfig"))
	}
	return registry, formatter, nil
}

func newHTTPServer(cfg *server.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, logger *zap.Logger, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", zap.String("op", "main.serve"), zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", zap.String("op", "main.serve"))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	appConfigLocation := flag.String("app-config", constants.DefaultConfigFile, "path to calculator configuration file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": %q}\n", *configLocation, err.Error())
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	registry, formatter, err := loadAppConfig(logger, *appConfigLocation)
	if err != nil {
		logger.Fatal("failed to load calculator configuration",
			zap.String("op", "main"),
			zap.String("path", *appConfigLocation),
			zap.Error(err),
		)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 5*time.Second)
	responseCache, err := cache.New(startCtx, cfg.Cache, logger)
	cancelStart()
	if err != nil {
		logger.Fatal("failed to initialize cache",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if memory, ok := responseCache.(*cache.Memory); ok {
		memory.StartCleanup(time.Minute)
	}
	defer func() {
		_ = responseCache.Close()
	}()

	handler := server.NewHandler(logger, server.Options{
		MaxUploadSize:     cfg.UploadSizeBytes(),
		Version:           version,
		Registry:          registry,
		Cache:             responseCache,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Formatter:         formatter,
	})
	defer handler.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, logger, newHTTPServer(cfg, handler)); err != nil {
		logger.Fatal("server stopped with error",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	logger.Info("server stopped gracefully", zap.String("op", "main"))
}
