package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"taipamap/internal/api"
	"taipamap/pkg/assets"
	"taipamap/pkg/config"
	"taipamap/pkg/icon"
	"taipamap/pkg/loader"
	"taipamap/pkg/logging"
	"taipamap/pkg/probe"
	"taipamap/pkg/registry"
	"taipamap/pkg/version"
	"taipamap/pkg/viewport"
	"taipamap/pkg/watcher"
)

var (
	configPath = flag.String("config", "configs/taipamap.yaml", "Path to the configuration file")
	initConfig = flag.Bool("init-config", false, "Generate default config file and exit")
)

func main() {
	flag.Parse()

	if *initConfig {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config file generated: %s\n", *configPath)
		return
	}

	if err := run(context.Background(), *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("Taipamap started", "version", version.Version)

	srcCfg, err := config.LoadSources(cfg.Data.Sources)
	if err != nil {
		return fmt.Errorf("failed to load sources config: %w", err)
	}
	reg, err := registry.New(srcCfg, cfg.Map.DirectZoom)
	if err != nil {
		return fmt.Errorf("failed to build source registry: %w", err)
	}
	slog.Info("Source registry built", "sources", len(reg.Sources()), "municipalities", len(reg.Municipalities()))

	// Startup Probes
	tables := make([]string, 0, len(reg.Sources()))
	for _, src := range reg.Sources() {
		tables = append(tables, filepath.Join(cfg.Data.Dir, src.Table))
	}
	results := probe.Run(ctx, []probe.Probe{
		probe.DirExists("Data directory", cfg.Data.Dir, true),
		// Missing individual tables degrade to empty sources; a data
		// tree with no table at all is worth a loud FAIL but not a
		// refusal to start.
		probe.AnyFileExists("Coordinate tables", tables, false),
	})
	if err := probe.AnalyzeResults(results); err != nil {
		return fmt.Errorf("startup checks failed: %w", err)
	}

	// One-time startup caches: category pins and the photo index.
	icons, err := icon.NewResolver(reg.Sources(), reg.Default().Name)
	if err != nil {
		return fmt.Errorf("failed to build icon set: %w", err)
	}
	index := assets.Build(cfg.Data.Dir, reg.Sources())

	store := loader.NewStore(reg.Names())
	ldr := loader.New(cfg.Data.Dir, reg)

	// The server comes up immediately; /api/markers answers ready=false
	// until the join-all barrier resolves.
	go func() {
		start := time.Now()
		store.Publish(ldr.Load(ctx))
		snap := store.Snapshot()
		slog.Info("Initial load complete", "markers", len(snap.Markers()), "duration", time.Since(start))
	}()

	photoH := api.NewPhotoHandler(reg, index)
	if cfg.Data.Watch {
		w, err := watcher.NewService(cfg.Data.Dir)
		if err != nil {
			slog.Warn("Failed to initialize data watcher", "error", err)
		} else {
			slog.Info("Data watcher started", "dir", cfg.Data.Dir)
			go w.Run(ctx, func(c context.Context) {
				photoH.SetIndex(assets.Build(cfg.Data.Dir, reg.Sources()))
				store.Publish(ldr.Load(c))
			})
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	shutdownFunc := func() { quit <- syscall.SIGTERM }

	srv := api.NewServer(cfg.Server.Address,
		api.NewMarkersHandler(&cfg.Map, reg, store),
		api.NewViewportHandler(&cfg.Map, reg, store, viewport.NewController()),
		photoH,
		api.NewIconHandler(icons),
		shutdownFunc,
	)
	srv.Handler = loggingMiddleware(srv.Handler)

	return runServerLifecycle(ctx, srv, quit)
}

func runServerLifecycle(ctx context.Context, srv *http.Server, quit chan os.Signal) error {
	slog.Info("Starting server", "addr", srv.Addr)
	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()
	select {
	case <-quit:
		slog.Info("Shutting down server...")
	case <-ctx.Done():
		slog.Info("Context cancelled, shutting down...")
	case err := <-serverErrors:
		return fmt.Errorf("server failed: %w", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.RequestLogger.Info("Request Processed", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
