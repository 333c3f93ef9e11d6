package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"stationpro-api/internal/models"
)

func newTestSynchronizer(t *testing.T, store DocumentStore) *Synchronizer {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	s := NewSynchronizer(store, logger)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestStartSeedsDefaultDocument(t *testing.T) {
	store := NewMemoryStore()
	s := newTestSynchronizer(t, store)

	state := s.Snapshot()
	if len(state.Tanks) != 2 {
		t.Errorf("Expected 2 default tanks, got %d", len(state.Tanks))
	}
	if state.Settings.StationName != "Station Pro Centre-Ville" {
		t.Errorf("Unexpected default station name: %s", state.Settings.StationName)
	}
}

func TestSubscribeDeliversImmediately(t *testing.T) {
	s := newTestSynchronizer(t, NewMemoryStore())

	var got *models.StationState
	unsubscribe := s.Subscribe(func(state *models.StationState) {
		got = state
	})
	defer unsubscribe()

	if got == nil {
		t.Fatal("Expected immediate delivery on subscribe")
	}
	if len(got.Pumps) != 3 {
		t.Errorf("Expected 3 pumps in delivered snapshot, got %d", len(got.Pumps))
	}
}

func TestMutateFansOutAndPublishes(t *testing.T) {
	store := NewMemoryStore()
	s := newTestSynchronizer(t, store)

	var deliveries int
	unsubscribe := s.Subscribe(func(*models.StationState) { deliveries++ })
	defer unsubscribe()

	err := s.Mutate(context.Background(), "set_fuel_price", func(cur *models.StationState) (*models.StationState, error) {
		next := cur.Clone()
		next.FuelPrices["Essence"] = 800
		return next, nil
	})
	if err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}

	// One delivery on subscribe, one on mutate.
	if deliveries != 2 {
		t.Errorf("Expected 2 deliveries, got %d", deliveries)
	}
	if got := s.Snapshot().FuelPrices["Essence"]; got != 800 {
		t.Errorf("Expected local price 800, got %v", got)
	}
	if got := store.Current().FuelPrices["Essence"]; got != 800 {
		t.Errorf("Expected published price 800, got %v", got)
	}
}

func TestMutateTransitionErrorLeavesStateUntouched(t *testing.T) {
	store := NewMemoryStore()
	s := newTestSynchronizer(t, store)

	wantErr := errors.New("rejected")
	err := s.Mutate(context.Background(), "bad_op", func(*models.StationState) (*models.StationState, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Expected transition error back, got %v", err)
	}

	if got := s.Snapshot().FuelPrices["Essence"]; got != 750 {
		t.Errorf("Expected state untouched, price = %v", got)
	}
}

func TestPublishFailureKeepsLocalState(t *testing.T) {
	store := NewMemoryStore()
	s := newTestSynchronizer(t, store)

	store.FailSaves = errors.New("disk full")
	err := s.Mutate(context.Background(), "set_fuel_price", func(cur *models.StationState) (*models.StationState, error) {
		next := cur.Clone()
		next.FuelPrices["Essence"] = 900
		return next, nil
	})

	// Publish failures are swallowed; the optimistic local state stands.
	if err != nil {
		t.Fatalf("Expected nil error on publish failure, got %v", err)
	}
	if got := s.Snapshot().FuelPrices["Essence"]; got != 900 {
		t.Errorf("Expected optimistic price 900, got %v", got)
	}
	if got := store.Current().FuelPrices["Essence"]; got != 750 {
		t.Errorf("Expected store untouched at 750, got %v", got)
	}
}

func TestApplyRemoteReplacesWholesale(t *testing.T) {
	s := newTestSynchronizer(t, NewMemoryStore())

	var last *models.StationState
	unsubscribe := s.Subscribe(func(state *models.StationState) { last = state })
	defer unsubscribe()

	remote := models.DefaultStationData()
	remote.Settings.StationName = "Station Pro Nord"
	remote.FuelPrices["Essence"] = 790
	s.ApplyRemote(remote, time.Now())

	if got := s.Snapshot().Settings.StationName; got != "Station Pro Nord" {
		t.Errorf("Expected remote name applied, got %s", got)
	}
	if last == nil || last.FuelPrices["Essence"] != 790 {
		t.Error("Expected remote snapshot fanned out to subscribers")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	s := newTestSynchronizer(t, NewMemoryStore())

	var deliveries int
	unsubscribe := s.Subscribe(func(*models.StationState) { deliveries++ })
	unsubscribe()

	s.ApplyRemote(models.DefaultStationData(), time.Now())
	if deliveries != 1 {
		t.Errorf("Expected only the subscribe-time delivery, got %d", deliveries)
	}
}

func TestWatchPicksUpRemoteWrite(t *testing.T) {
	store := NewMemoryStore()
	s := newTestSynchronizer(t, store)
	s.Watch(10 * time.Millisecond)

	updated := make(chan string, 1)
	unsubscribe := s.Subscribe(func(state *models.StationState) {
		select {
		case updated <- state.Settings.StationName:
		default:
		}
	})
	defer unsubscribe()
	<-updated // subscribe-time delivery

	remote := models.DefaultStationData()
	remote.Settings.StationName = "Station Pro Aéroport"
	if err := store.Save(context.Background(), remote); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	select {
	case name := <-updated:
		if name != "Station Pro Aéroport" {
			t.Errorf("Expected remote name, got %s", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watcher did not pick up the remote write")
	}
}
