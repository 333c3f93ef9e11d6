package sync

import (
	"context"
	stdsync "sync"
	"time"

	"github.com/sirupsen/logrus"

	"stationpro-api/internal/models"
	"stationpro-api/internal/observability/metrics"
)

// Subscriber receives the full decoded station snapshot on every change,
// including the very first read. Subscribers must treat the snapshot as
// read-only.
type Subscriber func(*models.StationState)

// Transition derives the next snapshot from the current one. Returning an
// error aborts the mutation with no state change; transitions must not
// modify the snapshot they receive.
type Transition func(*models.StationState) (*models.StationState, error)

// Synchronizer owns the last locally known snapshot of the shared document.
// Mutations are applied to it optimistically and published wholesale
// (last-writer-wins); remote changes detected by the watcher replace it
// wholesale. A failed publish is logged and counted but the local optimistic
// effect is kept and the caller is not handed a recoverable error.
type Synchronizer struct {
	store  DocumentStore
	logger *logrus.Logger

	mu        stdsync.Mutex
	current   *models.StationState
	subs      map[int]Subscriber
	nextSubID int
	lastSeen  time.Time

	stopOnce stdsync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewSynchronizer creates a synchronizer over the given store.
func NewSynchronizer(store DocumentStore, logger *logrus.Logger) *Synchronizer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Synchronizer{
		store:  store,
		logger: logger,
		subs:   make(map[int]Subscriber),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start performs the initial load, seeding the default document when the
// store is empty.
func (s *Synchronizer) Start(ctx context.Context) error {
	state, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	modified, err := s.store.LastModified(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read document timestamp on start")
	}

	s.mu.Lock()
	s.current = state
	s.lastSeen = modified
	s.mu.Unlock()

	return nil
}

// Subscribe registers a callback and returns its unsubscribe func. The
// current snapshot is delivered immediately; afterwards the callback fires on
// every local mutation and every remote refresh until unsubscribed.
func (s *Synchronizer) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	snapshot := s.current.Clone()
	s.mu.Unlock()

	if snapshot != nil {
		fn(snapshot)
	}

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Snapshot returns a copy of the last locally known state.
func (s *Synchronizer) Snapshot() *models.StationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Mutate applies the transition to the cached snapshot, fans the result out
// to subscribers and publishes it wholesale. A transition error is returned
// as-is with no state change. A publish failure is logged and counted but
// deliberately not surfaced: the local optimistic effect stands until the
// next successful publish or remote refresh overwrites it.
func (s *Synchronizer) Mutate(ctx context.Context, operation string, fn Transition) error {
	s.mu.Lock()
	next, err := fn(s.current)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.current = next
	snapshot := next.Clone()
	subs := s.subscribers()
	s.mu.Unlock()

	metrics.MutationApplied(operation)
	for _, fn := range subs {
		fn(snapshot)
	}

	// No lock is held across the publish; a remote write landing in this
	// window is overwritten (last-writer-wins).
	if err := s.store.Save(ctx, next); err != nil {
		metrics.PublishFailed()
		s.logger.WithError(err).WithField("operation", operation).Error("Failed to publish station document")
		return nil
	}

	if modified, err := s.store.LastModified(ctx); err == nil {
		s.mu.Lock()
		s.lastSeen = modified
		s.mu.Unlock()
	}

	return nil
}

// Watch polls the store for writes from other processes and replaces the
// local snapshot wholesale when one is detected. It returns immediately; the
// poller runs until Close.
func (s *Synchronizer) Watch(interval time.Duration) {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.refresh()
			}
		}
	}()
}

func (s *Synchronizer) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	modified, err := s.store.LastModified(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to poll document timestamp")
		return
	}

	s.mu.Lock()
	stale := modified.After(s.lastSeen)
	s.mu.Unlock()
	if !stale {
		return
	}

	state, err := s.store.Load(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load remote station document")
		return
	}

	s.ApplyRemote(state, modified)
}

// ApplyRemote replaces the local snapshot wholesale with a remote one and
// fans it out to subscribers.
func (s *Synchronizer) ApplyRemote(state *models.StationState, modified time.Time) {
	s.mu.Lock()
	s.current = state
	if modified.After(s.lastSeen) {
		s.lastSeen = modified
	}
	snapshot := state.Clone()
	subs := s.subscribers()
	s.mu.Unlock()

	metrics.RemoteRefresh()
	for _, fn := range subs {
		fn(snapshot)
	}
}

// subscribers snapshots the callback list. Caller must hold mu.
func (s *Synchronizer) subscribers() []Subscriber {
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}

// Close stops the watcher. No further callbacks fire from it.
func (s *Synchronizer) Close() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}
