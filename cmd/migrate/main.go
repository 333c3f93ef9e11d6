package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"stationpro-api/internal/database"
	stationsync "stationpro-api/internal/sync"

	"github.com/sirupsen/logrus"
)

func main() {
	var (
		dbPath         = flag.String("db", "./data/station.db", "Station database file path")
		migrationsPath = flag.String("migrations", "./migrations", "Migrations directory path")
		action         = flag.String("action", "up", "Action: up, down, status, validate, seed")
		verbose        = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absDBPath, err := filepath.Abs(*dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute database path")
	}

	absMigrationsPath, err := filepath.Abs(*migrationsPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute migrations path")
	}

	logger.WithFields(logrus.Fields{
		"db_path":         absDBPath,
		"migrations_path": absMigrationsPath,
		"action":          *action,
	}).Info("Starting station migration tool")

	config := &database.ConnectionConfig{
		DatabasePath:   absDBPath,
		MigrationsPath: absMigrationsPath,
		Logger:         logger,
	}

	connectionManager := database.NewConnectionManager(config)

	switch *action {
	case "up":
		if err := runMigrationsUp(connectionManager); err != nil {
			logger.WithError(err).Fatal("Migration up failed")
		}
	case "down":
		if err := runMigrationsDown(connectionManager); err != nil {
			logger.WithError(err).Fatal("Migration down failed")
		}
	case "status":
		if err := showMigrationStatus(connectionManager); err != nil {
			logger.WithError(err).Fatal("Failed to get migration status")
		}
	case "validate":
		if err := validateSchema(connectionManager); err != nil {
			logger.WithError(err).Fatal("Schema validation failed")
		}
	case "seed":
		if err := seedStationDocument(connectionManager, logger); err != nil {
			logger.WithError(err).Fatal("Failed to seed station document")
		}
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: up, down, status, validate, seed")
	}

	logger.Info("Migration tool completed successfully")
}

func runMigrationsUp(cm *database.ConnectionManager) error {
	if err := cm.Connect(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer cm.Close()

	return cm.GetMigrationManager().RunMigrations()
}

func runMigrationsDown(cm *database.ConnectionManager) error {
	if err := cm.Connect(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer cm.Close()

	return cm.GetMigrationManager().RollbackMigration()
}

func showMigrationStatus(cm *database.ConnectionManager) error {
	if err := cm.Connect(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer cm.Close()

	status, err := cm.GetMigrationManager().GetMigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	fmt.Printf("Station database migration status:\n")
	fmt.Printf("  Version: %d\n", status.Version)
	fmt.Printf("  Applied: %t\n", status.Applied)
	fmt.Printf("  Dirty: %t\n", status.Dirty)
	fmt.Printf("  Timestamp: %s\n", status.Timestamp.Format("2006-01-02 15:04:05"))

	return nil
}

func validateSchema(cm *database.ConnectionManager) error {
	if err := cm.Connect(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer cm.Close()

	if err := cm.GetMigrationManager().ValidateSchema(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	fmt.Println("Station schema validation passed")
	return nil
}

// seedStationDocument runs migrations and then loads the station document,
// which writes the default document when the table is empty. Useful for
// provisioning a fresh database before the first server start.
func seedStationDocument(cm *database.ConnectionManager, logger *logrus.Logger) error {
	if err := cm.Connect(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer cm.Close()

	if err := cm.GetMigrationManager().RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations before seeding: %w", err)
	}

	store := stationsync.NewSQLiteStore(cm.GetDB(), logger)
	state, err := store.Load(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load or seed station document: %w", err)
	}

	fmt.Printf("Station document ready:\n")
	fmt.Printf("  Station: %s\n", state.Settings.StationName)
	fmt.Printf("  Tanks: %d\n", len(state.Tanks))
	fmt.Printf("  Pumps: %d\n", len(state.Pumps))
	fmt.Printf("  Products: %d\n", len(state.Products))

	return nil
}
