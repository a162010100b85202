package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/geocoder89/pravaah/internal/cache"
	"github.com/geocoder89/pravaah/internal/collections"
	"github.com/geocoder89/pravaah/internal/config"
	"github.com/geocoder89/pravaah/internal/db"
	httpx "github.com/geocoder89/pravaah/internal/http"
	"github.com/geocoder89/pravaah/internal/observability"
	mongorepo "github.com/geocoder89/pravaah/internal/repo/mongo"
	"github.com/geocoder89/pravaah/internal/repo/memory"
	"github.com/geocoder89/pravaah/internal/repo/postgres"
	"github.com/geocoder89/pravaah/internal/security"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// closers run in reverse order on shutdown
	var closers []func(context.Context) error

	if cfg.OTelEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName: cfg.ServiceName,
			Env:         cfg.Env,
			Endpoint:    cfg.OTelEndpoint,
		})
		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}
		closers = append(closers, shutdownTracer)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	store, closeStore, err := openStore(ctx, cfg, prom)
	if err != nil {
		log.Error("document store init failed", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	closers = append(closers, closeStore)

	var listCache collections.ListCache = cache.New(cfg.ListCacheTTL)
	if cfg.RedisAddr != "" {
		rdb, err := db.NewRedis(ctx, db.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Error("redis init failed", "addr", cfg.RedisAddr, "err", err)
			os.Exit(1)
		}
		listCache = cache.NewRedis(rdb, cfg.ListCacheTTL, log)
		closers = append(closers, func(context.Context) error { return rdb.Close() })
	}

	svc := collections.NewService(store, collections.Options{
		Cache:  listCache,
		Hasher: security.NewHasher(cfg.BcryptCost),
		Logger: log,
		Prom:   prom,
	})

	var draining atomic.Bool
	router := httpx.NewRouter(log, cfg, httpx.Deps{
		Service:  svc,
		Prom:     prom,
		Gatherer: reg,
		Draining: draining.Load,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")
	draining.Store(true)

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](ctx); err != nil {
				log.Error("resource close failed", "err", err)
			}
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

func openStore(ctx context.Context, cfg config.Config, prom *observability.Prom) (collections.Store, func(context.Context) error, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return memory.NewDocumentsRepo(), func(context.Context) error { return nil }, nil

	case config.StoreMongo:
		client, err := db.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		return mongorepo.NewDocumentsRepo(client.Database(cfg.MongoDatabase), prom), client.Disconnect, nil

	default:
		pool, err := db.NewPool(ctx, cfg.DBURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.EnsureDocumentsTable(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewDocumentsRepo(pool, prom), func(context.Context) error { pool.Close(); return nil }, nil
	}
}
