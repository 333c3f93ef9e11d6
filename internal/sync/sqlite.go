package sync

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"stationpro-api/internal/models"
)

// SQLiteStore persists the station document as a JSON blob in a single-row
// table. The schema is managed by the migrations in ./migrations.
type SQLiteStore struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewSQLiteStore creates a store over an already connected database.
func NewSQLiteStore(db *sql.DB, logger *logrus.Logger) *SQLiteStore {
	if logger == nil {
		logger = logrus.New()
	}
	return &SQLiteStore{db: db, logger: logger}
}

// Load returns the stored document. When no document exists yet, the default
// station data is written and returned, matching the create-if-absent
// subscribe contract.
func (s *SQLiteStore) Load(ctx context.Context) (*models.StationState, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT document FROM station_state WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		state := models.DefaultStationData()
		if saveErr := s.Save(ctx, state); saveErr != nil {
			return nil, fmt.Errorf("failed to seed default station document: %w", saveErr)
		}
		s.logger.Info("Station document initialized with default data")
		return state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load station document: %w", err)
	}

	var state models.StationState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode station document: %w", err)
	}

	return &state, nil
}

// Save overwrites the document wholesale.
func (s *SQLiteStore) Save(ctx context.Context, state *models.StationState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode station document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO station_state (id, document, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		string(raw), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save station document: %w", err)
	}

	return nil
}

// LastModified returns the time of the last successful Save, or the zero time
// when no document exists yet.
func (s *SQLiteStore) LastModified(ctx context.Context) (time.Time, error) {
	var nanos int64
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM station_state WHERE id = 1`).Scan(&nanos)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read document timestamp: %w", err)
	}
	return time.Unix(0, nanos), nil
}

// Close is a no-op; the database connection is owned by the caller.
func (s *SQLiteStore) Close() error {
	return nil
}
