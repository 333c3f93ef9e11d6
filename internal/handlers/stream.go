package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"stationpro-api/internal/models"
)

// SSEBroker fans out station state snapshots to connected clients.
type SSEBroker struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
}

// NewSSEBroker constructs a broker.
func NewSSEBroker() *SSEBroker {
	return &SSEBroker{clients: make(map[chan []byte]struct{})}
}

// Notify serializes the snapshot and broadcasts it. It is safe to register
// directly as a synchronizer subscriber.
func (b *SSEBroker) Notify(state *models.StationState) {
	if b == nil {
		return
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return
	}
	b.broadcast(payload)
}

// Subscribe registers a new client channel.
func (b *SSEBroker) Subscribe() chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a client channel. The channel is never closed: a
// broadcast may still hold a reference from before the removal, and sending
// on a closed channel would panic the sender. Delivery stops once the channel
// leaves the client set.
func (b *SSEBroker) Unsubscribe(ch chan []byte) {
	if ch == nil {
		return
	}
	b.mu.Lock()
	delete(b.clients, ch)
	b.mu.Unlock()
}

func (b *SSEBroker) broadcast(payload []byte) {
	b.mu.Lock()
	clients := make([]chan []byte, 0, len(b.clients))
	for ch := range b.clients {
		clients = append(clients, ch)
	}
	b.mu.Unlock()
	// Slow clients are skipped rather than blocking the broadcast.
	for _, ch := range clients {
		select {
		case ch <- payload:
		default:
		}
	}
}

// @Summary Stream station state
// @Description Server-sent events stream of the full station state, pushed on every change
// @Tags station
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /station/stream [get]
func (b *SSEBroker) Stream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.WriteString("event: ready\ndata: {}\n\n")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case payload := <-ch:
			c.SSEvent("state", json.RawMessage(payload))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
