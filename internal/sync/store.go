// Package sync bridges the one shared station document and its local
// observers: it loads and publishes whole snapshots against a document store
// and fans every change out to subscribers.
package sync

import (
	"context"
	"errors"
	"time"

	"stationpro-api/internal/models"
)

// ErrNotFound is returned by store internals when the document is absent.
// Load implementations translate absence into seeding the default document,
// so callers of the store rarely see it.
var ErrNotFound = errors.New("station document not found")

// DocumentStore is the remote state store contract. One document per
// deployment; Save overwrites it wholesale (last-writer-wins, no version
// token, no merge).
type DocumentStore interface {
	// Load returns the current document, creating it from
	// models.DefaultStationData when absent.
	Load(ctx context.Context) (*models.StationState, error)

	// Save overwrites the document wholesale.
	Save(ctx context.Context, state *models.StationState) error

	// LastModified returns the time of the last successful Save, used by
	// the polling watcher to detect external writers.
	LastModified(ctx context.Context) (time.Time, error)

	// Close releases store resources.
	Close() error
}
