// Command fleetd runs the vehicle-allocation HTTP service.
//
// Usage:
//
//	fleetd -listen :8080 -backend mongo -mongo-uri mongodb://localhost:27017
//
// Backends: memory (default, development), mongo, postgres.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/allocation"
	"github.com/nishorgo/vehicle-allocation/api"
	"github.com/nishorgo/vehicle-allocation/driver"
	"github.com/nishorgo/vehicle-allocation/employee"
	"github.com/nishorgo/vehicle-allocation/middleware"
	"github.com/nishorgo/vehicle-allocation/seed"
	"github.com/nishorgo/vehicle-allocation/store"
	bunstore "github.com/nishorgo/vehicle-allocation/store/bun"
	"github.com/nishorgo/vehicle-allocation/store/memory"
	"github.com/nishorgo/vehicle-allocation/store/mongo"
	"github.com/nishorgo/vehicle-allocation/vehicle"
)

var (
	listenAddr  = flag.String("listen", ":8080", "HTTP listen address")
	backend     = flag.String("backend", "memory", "store backend: memory, mongo, or postgres")
	mongoURI    = flag.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
	database    = flag.String("database", "vehicle_allocation", "MongoDB database name")
	postgresDSN = flag.String("postgres-dsn", "", "Postgres connection string")
)

func main() {
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg := fleet.DefaultConfig()
	cfg.HTTPAddr = *listenAddr
	cfg.Backend = *backend
	cfg.MongoURI = *mongoURI
	cfg.Database = *database
	cfg.PostgresDSN = *postgresDSN

	st, err := newStore(cfg, logger)
	if err != nil {
		logger.Error("failed to create store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app, err := fleet.New(
		fleet.WithConfig(cfg),
		fleet.WithLogger(logger),
		fleet.WithStore(st),
	)
	if err != nil {
		logger.Error("failed to create app", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		logger.Error("failed to start app", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire the subsystem services over the shared store.
	chain := middleware.Chain(
		middleware.Logging(logger),
		middleware.Recover(logger),
		middleware.Timeout(cfg.OperationTimeout),
		middleware.Tracing(),
		middleware.Metrics(),
	)

	allocations := allocation.NewService(st, st,
		allocation.WithLogger(logger),
		allocation.WithMiddleware(chain),
	)
	employees := employee.NewService(st)
	drivers := driver.NewService(st)
	vehicles := vehicle.NewService(st)
	seeder := seed.New(allocations, employees, drivers, vehicles, logger)

	handler := api.New(allocations, employees, drivers, vehicles, seeder, nil).Handler()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("fleetd listening",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("backend", cfg.Backend),
		)
		if serveErr := srv.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("http server error", slog.String("error", serveErr.Error()))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", slog.String("error", err.Error()))
	}
	if err := app.Stop(shutdownCtx); err != nil {
		logger.Error("store shutdown error", slog.String("error", err.Error()))
	}
	logger.Info("goodbye")
}

// newStore builds the configured store backend.
func newStore(cfg fleet.Config, logger *slog.Logger) (store.Store, error) {
	switch cfg.Backend {
	case "memory":
		return memory.New(), nil

	case "mongo":
		mdb := mongodriver.New()
		if err := mdb.Open(context.Background(), cfg.MongoURI, mongodriver.WithDatabase(cfg.Database)); err != nil {
			return nil, fmt.Errorf("open mongo: %w", err)
		}
		db, err := grove.Open(mdb)
		if err != nil {
			return nil, fmt.Errorf("open mongo: %w", err)
		}
		return mongo.New(db, mongo.WithLogger(logger)), nil

	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres backend requires -postgres-dsn")
		}
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN)))
		db := bun.NewDB(sqldb, pgdialect.New())
		return bunstore.New(db, bunstore.WithLogger(logger)), nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
