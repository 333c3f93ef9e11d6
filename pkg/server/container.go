// Package server wires application dependencies together: configuration,
// database, state store, synchronizer, services and handlers.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"stationpro-api/internal/config"
	"stationpro-api/internal/database"
	"stationpro-api/internal/handlers"
	"stationpro-api/internal/insight"
	"stationpro-api/internal/observability/metrics"
	"stationpro-api/internal/services"
	stationsync "stationpro-api/internal/sync"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *logrus.Logger
	StationService services.StationService
	ReportService  services.ReportService
	InsightService services.InsightService
	Broker         *handlers.SSEBroker

	// Internal dependencies
	conn         *database.ConnectionManager
	synchronizer *stationsync.Synchronizer
	unsubscribe  func()
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	metrics.Register()

	conn := database.NewConnectionManager(&database.ConnectionConfig{
		DatabasePath:    cfg.Database.ConnectionString,
		MigrationsPath:  cfg.Database.MigrationsPath,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Hour,
		Logger:          logger,
	})
	if err := conn.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := stationsync.NewSQLiteStore(conn.GetDB(), logger)
	synchronizer := stationsync.NewSynchronizer(store, logger)
	if err := synchronizer.Start(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to start synchronizer: %w", err)
	}
	if cfg.Sync.WatchInterval > 0 {
		synchronizer.Watch(cfg.Sync.WatchInterval)
	}

	// The SSE broker receives every published snapshot, including the one
	// delivered on subscription.
	broker := handlers.NewSSEBroker()
	unsubscribe := synchronizer.Subscribe(broker.Notify)

	generator := insight.NewClient(insight.Config{
		BaseURL: cfg.Insight.BaseURL,
		APIKey:  cfg.Insight.APIKey,
		Model:   cfg.Insight.Model,
		Timeout: cfg.Insight.Timeout,
	}, logger)

	container := &Container{
		Config:         cfg,
		Logger:         logger,
		StationService: services.NewStationService(synchronizer, logger),
		ReportService:  services.NewReportService(synchronizer, logger),
		InsightService: services.NewInsightService(synchronizer, generator, logger),
		Broker:         broker,
		conn:           conn,
		synchronizer:   synchronizer,
		unsubscribe:    unsubscribe,
	}

	return container, nil
}

// Synchronizer exposes the state synchronizer, mainly for tests.
func (c *Container) Synchronizer() *stationsync.Synchronizer {
	return c.synchronizer
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}

	if c.synchronizer != nil {
		c.synchronizer.Close()
	}

	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
