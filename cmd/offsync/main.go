package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vmikh/offsync/internal/cache"
	"github.com/vmikh/offsync/internal/client/api"
	"github.com/vmikh/offsync/internal/client/cli"
	"github.com/vmikh/offsync/internal/client/iocli"
	"github.com/vmikh/offsync/internal/client/storage/boltdb"
	"github.com/vmikh/offsync/internal/config"
	"github.com/vmikh/offsync/internal/crosstab"
	"github.com/vmikh/offsync/internal/engine"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to YAML configuration file")
	serverURL := flag.String("server", "", "Server URL (overrides config)")
	dbPath := flag.String("db", "", "Path to local database (overrides config)")
	userID := flag.String("user", "", "User identifier sent to the server")
	metricsAddr := flag.String("metrics", "", "Address to expose cache metrics on (daemon only)")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := loadConfig(*configPath, *serverURL, *dbPath, *userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Завершаемся по Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Edge-кэш встает транспортом между API клиентом и сетью
	cacheTransport, err := cache.New(cfg.Cache, nil, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build edge cache: %v\n", err)
		os.Exit(1)
	}

	apiClient := api.NewClient(cfg.ServerURL, cfg.UserID, cacheTransport)
	bus := crosstab.NewBus()
	defer bus.Close()

	eng := engine.New(cfg, boltStorage, boltStorage, apiClient, cacheTransport, bus, logger)
	app := cli.New(iocli.NewStdio(), eng)

	// Выполняем команду
	switch command {
	case "run":
		if *metricsAddr != "" {
			go serveMetrics(logger, *metricsAddr, cacheTransport)
		}
		if cfg.Crosstab.BridgeAddr != "" {
			bridge := crosstab.NewBridge(bus, cfg.Crosstab.BridgeAddr, logger)
			go func() {
				if err := bridge.Run(ctx); err != nil && ctx.Err() == nil {
					logger.Error("crosstab bridge stopped", "error", err)
				}
			}()
		}
		if len(cfg.Cache.Precache) > 0 {
			cacheTransport.Warm(ctx, cfg.ServerURL, cfg.Cache.Precache)
		}
		if err := app.RunDaemon(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "sync":
		if err := app.RunSync(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "status":
		if err := app.RunStatus(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "clear":
		if err := app.RunClear(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		cli.PrintUsage()
		os.Exit(1)
	}
}

// serveMetrics отдает счетчики edge-кэша в формате Prometheus
func serveMetrics(logger *slog.Logger, addr string, transport *cache.Transport) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(transport.MetricsRegistry(), promhttp.HandlerOpts{}))

	logger.Info("Cache metrics exposed", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("metrics server stopped", "error", err)
	}
}

// loadConfig читает конфигурацию и применяет флаги поверх нее
func loadConfig(path, serverURL, dbPath, userID string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if userID != "" {
		cfg.UserID = userID
	}

	return cfg, nil
}

func printVersion() {
	fmt.Printf("offsync client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
