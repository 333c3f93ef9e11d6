package sync

import (
	"context"
	stdsync "sync"
	"time"

	"stationpro-api/internal/models"
)

// MemoryStore is an in-memory DocumentStore used in tests and development.
// It supports the same create-if-absent semantics as the SQLite store and
// can be configured to fail saves to exercise the publish failure path.
type MemoryStore struct {
	mu       stdsync.Mutex
	state    *models.StationState
	modified time.Time

	// FailSaves makes every Save return this error when non-nil.
	FailSaves error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith creates a store pre-populated with the given document.
func NewMemoryStoreWith(state *models.StationState) *MemoryStore {
	return &MemoryStore{state: state.Clone(), modified: time.Now()}
}

// Load returns the stored document, seeding the default data when absent.
func (m *MemoryStore) Load(ctx context.Context) (*models.StationState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		m.state = models.DefaultStationData()
		m.modified = time.Now()
	}

	return m.state.Clone(), nil
}

// Save overwrites the document wholesale.
func (m *MemoryStore) Save(ctx context.Context, state *models.StationState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSaves != nil {
		return m.FailSaves
	}

	m.state = state.Clone()
	m.modified = time.Now()
	return nil
}

// LastModified returns the time of the last successful Save.
func (m *MemoryStore) LastModified(ctx context.Context) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modified, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

// Current returns a copy of the stored document without the create-if-absent
// side effect. Test helper.
func (m *MemoryStore) Current() *models.StationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}
