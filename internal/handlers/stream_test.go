package handlers

import (
	"sync"
	"testing"

	"stationpro-api/internal/models"
)

func TestBrokerDeliversToSubscribers(t *testing.T) {
	broker := NewSSEBroker()
	ch := broker.Subscribe()
	defer broker.Unsubscribe(ch)

	broker.Notify(models.DefaultStationData())

	select {
	case payload := <-ch:
		if len(payload) == 0 {
			t.Error("Expected a non-empty payload")
		}
	default:
		t.Error("Expected a buffered payload after Notify")
	}
}

func TestBrokerStopsDeliveryAfterUnsubscribe(t *testing.T) {
	broker := NewSSEBroker()
	ch := broker.Subscribe()
	broker.Unsubscribe(ch)

	broker.broadcast([]byte("{}"))

	select {
	case payload := <-ch:
		t.Errorf("Expected no delivery after unsubscribe, got %q", payload)
	default:
	}
}

// A broadcast may snapshot the client set just before a client unsubscribes;
// the send to the departed channel must not panic.
func TestBrokerConcurrentBroadcastAndUnsubscribe(t *testing.T) {
	broker := NewSSEBroker()
	done := make(chan struct{})

	var broadcasters sync.WaitGroup
	broadcasters.Add(1)
	go func() {
		defer broadcasters.Done()
		for {
			select {
			case <-done:
				return
			default:
				broker.broadcast([]byte("{}"))
			}
		}
	}()

	var churners sync.WaitGroup
	for i := 0; i < 4; i++ {
		churners.Add(1)
		go func() {
			defer churners.Done()
			for j := 0; j < 500; j++ {
				ch := broker.Subscribe()
				broker.Unsubscribe(ch)
			}
		}()
	}

	churners.Wait()
	close(done)
	broadcasters.Wait()

	broker.mu.Lock()
	remaining := len(broker.clients)
	broker.mu.Unlock()
	if remaining != 0 {
		t.Errorf("Expected no clients after churn, got %d", remaining)
	}
}
