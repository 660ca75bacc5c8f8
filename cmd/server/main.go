package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"ghfavorites/internal/config"
	"ghfavorites/internal/favorites"
	"ghfavorites/internal/lookup"
	"ghfavorites/internal/metrics"
	"ghfavorites/internal/server"
	"ghfavorites/internal/session"
	"ghfavorites/internal/snapshot"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	level := slog.LevelInfo
	if cfg.IsDev() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	// Snapshot persistence
	backend, err := snapshot.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s snapshot store: %v", cfg.SnapshotBackend, err)
	}
	defer backend.Close()
	log.Printf("Using %s snapshot store", cfg.SnapshotBackend)

	client := lookup.NewClient(cfg.LookupBaseURL, cfg.LookupTimeout, lookup.WithToken(cfg.LookupToken))

	var sess *session.Session
	opts := []favorites.Option{
		favorites.WithStaleThreshold(cfg.StaleThreshold),
		favorites.WithLogger(slog.Default()),
	}
	var gatherer prometheus.Gatherer
	if cfg.MetricsEnabled {
		recorder := metrics.New(prometheus.DefaultRegisterer, func() int { return sess.Count() })
		opts = append(opts, favorites.WithObserver(recorder))
		gatherer = prometheus.DefaultGatherer
	}

	svc := favorites.NewService(backend, client, opts...)
	if err := svc.Load(ctx); err != nil {
		log.Fatalf("Failed to load favorites: %v", err)
	}
	if seeds := yamlCfg.Seeds(); svc.Len() == 0 && len(seeds) > 0 {
		added := svc.Seed(ctx, seeds)
		log.Printf("Seeded %d of %d favorites", added, len(seeds))
	}
	sess = session.New(svc)

	srv := server.New(cfg, "./views")
	srv.RegisterRoutes(sess, gatherer)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s (stale threshold %v)", cfg.ServerAddr, cfg.StaleThreshold)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
